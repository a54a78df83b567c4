package value

import (
	"fmt"
	"time"
)

// Date is a Y-M-D calendar date with no time-of-day component.
type Date struct {
	Year, Month, Day int
}

// DateTime is a Y-M-D H:M:S value with no timezone.
type DateTime struct {
	Year, Month, Day, Hour, Minute, Second int
}

// ClockTime is an H:M:S time-of-day value.
type ClockTime struct {
	Hour, Minute, Second int
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "01/02/2006", "2006/01/02", "02-01-2006"}

var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006 15:04:05",
	"01/02/2006 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

var timeLayouts = []string{"15:04:05", "15:04"}

// ParseDate tries each layout in §4.1's order and returns the first match.
func ParseDate(raw string) (Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
		}
	}
	return Date{}, fmt.Errorf("failed to parse %q as date", raw)
}

// ParseDateTime tries each layout in §4.1's order and returns the first match.
func ParseDateTime(raw string) (DateTime, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return DateTime{
				Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
				Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
			}, nil
		}
	}
	return DateTime{}, fmt.Errorf("failed to parse %q as datetime", raw)
}

// ParseClockTime tries each layout in §4.1's order and returns the first match.
func ParseClockTime(raw string) (ClockTime, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("failed to parse %q as time", raw)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (dt DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second)
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (d Date) toTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func (dt DateTime) toTime() time.Time {
	return time.Date(dt.Year, time.Month(dt.Month), dt.Day, dt.Hour, dt.Minute, dt.Second, 0, time.UTC)
}

func fromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func dateTimeFromTime(t time.Time) DateTime {
	return DateTime{Year: t.Year(), Month: int(t.Month()), Day: t.Day(), Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// AddDays adds (or, for negative n, subtracts) whole days to a date.
func (d Date) AddDays(n int64) Date {
	return fromTime(d.toTime().AddDate(0, 0, int(n)))
}

// DiffDays returns a - b, in whole days.
func (a Date) DiffDays(b Date) int64 {
	return int64(a.toTime().Sub(b.toTime()).Hours() / 24)
}

// AddSeconds adds (or subtracts) whole seconds to a datetime.
func (dt DateTime) AddSeconds(n int64) DateTime {
	return dateTimeFromTime(dt.toTime().Add(time.Duration(n) * time.Second))
}

// DiffSeconds returns a - b, in whole seconds.
func (a DateTime) DiffSeconds(b DateTime) int64 {
	return int64(a.toTime().Sub(b.toTime()).Seconds())
}

func (dt DateTime) Date() Date {
	return Date{Year: dt.Year, Month: dt.Month, Day: dt.Day}
}

func (dt DateTime) Time() ClockTime {
	return ClockTime{Hour: dt.Hour, Minute: dt.Minute, Second: dt.Second}
}

// AddSeconds adds seconds to a time-of-day, returning an error if the
// result would wrap past midnight in either direction — per §4.3,
// day/second arithmetic on Time must not wrap silently.
func (t ClockTime) AddSeconds(n int64) (ClockTime, error) {
	total := int64(t.Hour)*3600 + int64(t.Minute)*60 + int64(t.Second) + n
	if total < 0 || total >= 86400 {
		return ClockTime{}, fmt.Errorf("time arithmetic overflowed past midnight")
	}
	return ClockTime{Hour: int(total / 3600), Minute: int((total % 3600) / 60), Second: int(total % 60)}, nil
}

// DiffSeconds returns a - b, in whole seconds, both within the same day.
func (a ClockTime) DiffSeconds(b ClockTime) int64 {
	toSeconds := func(t ClockTime) int64 { return int64(t.Hour)*3600 + int64(t.Minute)*60 + int64(t.Second) }
	return toSeconds(a) - toSeconds(b)
}

func (d Date) Compare(o Date) int {
	return d.toTime().Compare(o.toTime())
}

func (dt DateTime) Compare(o DateTime) int {
	return dt.toTime().Compare(o.toTime())
}

func (t ClockTime) Compare(o ClockTime) int {
	toSeconds := func(v ClockTime) int { return v.Hour*3600 + v.Minute*60 + v.Second }
	a, b := toSeconds(t), toSeconds(o)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Format renders using a strftime-style pattern (a small, builtin-
// specific subset: %Y %m %d %H %M %S), the format §6.5's date_format /
// datetime_format builtins accept.
func (d Date) Format(pattern string) string {
	return strftime(pattern, d.Year, d.Month, d.Day, 0, 0, 0)
}

func (dt DateTime) Format(pattern string) string {
	return strftime(pattern, dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second)
}

func strftime(pattern string, year, month, day, hour, minute, second int) string {
	replacer := strftimeReplacer(year, month, day, hour, minute, second)
	var out []byte
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '%' && i+1 < len(pattern) {
			if repl, ok := replacer[pattern[i+1]]; ok {
				out = append(out, repl...)
				i++
				continue
			}
		}
		out = append(out, pattern[i])
	}
	return string(out)
}

func strftimeReplacer(year, month, day, hour, minute, second int) map[byte]string {
	return map[byte]string{
		'Y': fmt.Sprintf("%04d", year),
		'm': fmt.Sprintf("%02d", month),
		'd': fmt.Sprintf("%02d", day),
		'H': fmt.Sprintf("%02d", hour),
		'M': fmt.Sprintf("%02d", minute),
		'S': fmt.Sprintf("%02d", second),
		'%': "%",
	}
}
