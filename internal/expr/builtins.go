package expr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"

	"csveng/internal/value"
)

// DefaultBuiltins returns the §6.5 function table shared by every
// filter and derive expression: date/time arithmetic grounded on
// internal/value/temporal.go, and string transforms grounded on the
// original implementation's string_ops.rs (ported to strcase for the
// casing conversions, since the Go standard library has none).
func DefaultBuiltins() map[string]Function {
	return map[string]Function{
		"date_add":               builtinDateAdd,
		"date_sub":               builtinDateSub,
		"date_diff_days":         builtinDateDiffDays,
		"datetime_add_seconds":   builtinDateTimeAddSeconds,
		"datetime_diff_seconds":  builtinDateTimeDiffSeconds,
		"datetime_to_date":       builtinDateTimeToDate,
		"datetime_to_time":       builtinDateTimeToTime,
		"time_add_seconds":       builtinTimeAddSeconds,
		"time_diff_seconds":      builtinTimeDiffSeconds,
		"date_format":            builtinDateFormat,
		"datetime_format":        builtinDateTimeFormat,
		"lowercase":              builtinLowercase,
		"uppercase":              builtinUppercase,
		"trim":                   builtinTrim,
		"snake_case":             builtinSnakeCase,
		"camel_case":             builtinCamelCase,
		"pascal_case":            builtinPascalCase,
		"substring":              builtinSubstring,
		"regex_replace":          builtinRegexReplace,
	}
}

func argString(args []Value, i int, fn string) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("%s: expected at least %d argument(s)", fn, i+1)
	}
	return args[i].AsString(), nil
}

func argInt(args []Value, i int, fn string) (int64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%s: expected at least %d argument(s)", fn, i+1)
	}
	v := args[i]
	switch v.Kind {
	case KindInt:
		return v.Int, nil
	case KindFloat:
		return int64(v.Float), nil
	default:
		return 0, fmt.Errorf("%s: argument %d must be numeric, got %s", fn, i+1, kindName(v.Kind))
	}
}

func builtinDateAdd(args []Value) (Value, error) {
	raw, err := argString(args, 0, "date_add")
	if err != nil {
		return Value{}, err
	}
	n, err := argInt(args, 1, "date_add")
	if err != nil {
		return Value{}, err
	}
	d, err := value.ParseDate(raw)
	if err != nil {
		return Value{}, fmt.Errorf("date_add: %w", err)
	}
	return String(d.AddDays(n).String()), nil
}

func builtinDateSub(args []Value) (Value, error) {
	raw, err := argString(args, 0, "date_sub")
	if err != nil {
		return Value{}, err
	}
	n, err := argInt(args, 1, "date_sub")
	if err != nil {
		return Value{}, err
	}
	d, err := value.ParseDate(raw)
	if err != nil {
		return Value{}, fmt.Errorf("date_sub: %w", err)
	}
	return String(d.AddDays(-n).String()), nil
}

func builtinDateDiffDays(args []Value) (Value, error) {
	a, err := argString(args, 0, "date_diff_days")
	if err != nil {
		return Value{}, err
	}
	b, err := argString(args, 1, "date_diff_days")
	if err != nil {
		return Value{}, err
	}
	da, err := value.ParseDate(a)
	if err != nil {
		return Value{}, fmt.Errorf("date_diff_days: %w", err)
	}
	db, err := value.ParseDate(b)
	if err != nil {
		return Value{}, fmt.Errorf("date_diff_days: %w", err)
	}
	return Int(da.DiffDays(db)), nil
}

func builtinDateTimeAddSeconds(args []Value) (Value, error) {
	raw, err := argString(args, 0, "datetime_add_seconds")
	if err != nil {
		return Value{}, err
	}
	n, err := argInt(args, 1, "datetime_add_seconds")
	if err != nil {
		return Value{}, err
	}
	dt, err := value.ParseDateTime(raw)
	if err != nil {
		return Value{}, fmt.Errorf("datetime_add_seconds: %w", err)
	}
	return String(dt.AddSeconds(n).String()), nil
}

func builtinDateTimeDiffSeconds(args []Value) (Value, error) {
	a, err := argString(args, 0, "datetime_diff_seconds")
	if err != nil {
		return Value{}, err
	}
	b, err := argString(args, 1, "datetime_diff_seconds")
	if err != nil {
		return Value{}, err
	}
	dta, err := value.ParseDateTime(a)
	if err != nil {
		return Value{}, fmt.Errorf("datetime_diff_seconds: %w", err)
	}
	dtb, err := value.ParseDateTime(b)
	if err != nil {
		return Value{}, fmt.Errorf("datetime_diff_seconds: %w", err)
	}
	return Int(dta.DiffSeconds(dtb)), nil
}

func builtinDateTimeToDate(args []Value) (Value, error) {
	raw, err := argString(args, 0, "datetime_to_date")
	if err != nil {
		return Value{}, err
	}
	dt, err := value.ParseDateTime(raw)
	if err != nil {
		return Value{}, fmt.Errorf("datetime_to_date: %w", err)
	}
	return String(dt.Date().String()), nil
}

func builtinDateTimeToTime(args []Value) (Value, error) {
	raw, err := argString(args, 0, "datetime_to_time")
	if err != nil {
		return Value{}, err
	}
	dt, err := value.ParseDateTime(raw)
	if err != nil {
		return Value{}, fmt.Errorf("datetime_to_time: %w", err)
	}
	return String(dt.Time().String()), nil
}

func builtinTimeAddSeconds(args []Value) (Value, error) {
	raw, err := argString(args, 0, "time_add_seconds")
	if err != nil {
		return Value{}, err
	}
	n, err := argInt(args, 1, "time_add_seconds")
	if err != nil {
		return Value{}, err
	}
	t, err := value.ParseClockTime(raw)
	if err != nil {
		return Value{}, fmt.Errorf("time_add_seconds: %w", err)
	}
	result, err := t.AddSeconds(n)
	if err != nil {
		return Value{}, fmt.Errorf("time_add_seconds: %w", err)
	}
	return String(result.String()), nil
}

func builtinTimeDiffSeconds(args []Value) (Value, error) {
	a, err := argString(args, 0, "time_diff_seconds")
	if err != nil {
		return Value{}, err
	}
	b, err := argString(args, 1, "time_diff_seconds")
	if err != nil {
		return Value{}, err
	}
	ta, err := value.ParseClockTime(a)
	if err != nil {
		return Value{}, fmt.Errorf("time_diff_seconds: %w", err)
	}
	tb, err := value.ParseClockTime(b)
	if err != nil {
		return Value{}, fmt.Errorf("time_diff_seconds: %w", err)
	}
	return Int(ta.DiffSeconds(tb)), nil
}

func builtinDateFormat(args []Value) (Value, error) {
	raw, err := argString(args, 0, "date_format")
	if err != nil {
		return Value{}, err
	}
	pattern, err := argString(args, 1, "date_format")
	if err != nil {
		return Value{}, err
	}
	d, err := value.ParseDate(raw)
	if err != nil {
		return Value{}, fmt.Errorf("date_format: %w", err)
	}
	return String(d.Format(pattern)), nil
}

func builtinDateTimeFormat(args []Value) (Value, error) {
	raw, err := argString(args, 0, "datetime_format")
	if err != nil {
		return Value{}, err
	}
	pattern, err := argString(args, 1, "datetime_format")
	if err != nil {
		return Value{}, err
	}
	dt, err := value.ParseDateTime(raw)
	if err != nil {
		return Value{}, fmt.Errorf("datetime_format: %w", err)
	}
	return String(dt.Format(pattern)), nil
}

func builtinLowercase(args []Value) (Value, error) {
	s, err := argString(args, 0, "lowercase")
	if err != nil {
		return Value{}, err
	}
	return String(strings.ToLower(s)), nil
}

func builtinUppercase(args []Value) (Value, error) {
	s, err := argString(args, 0, "uppercase")
	if err != nil {
		return Value{}, err
	}
	return String(strings.ToUpper(s)), nil
}

func builtinTrim(args []Value) (Value, error) {
	s, err := argString(args, 0, "trim")
	if err != nil {
		return Value{}, err
	}
	return String(strings.TrimSpace(s)), nil
}

func builtinSnakeCase(args []Value) (Value, error) {
	s, err := argString(args, 0, "snake_case")
	if err != nil {
		return Value{}, err
	}
	return String(strcase.ToSnake(s)), nil
}

func builtinCamelCase(args []Value) (Value, error) {
	s, err := argString(args, 0, "camel_case")
	if err != nil {
		return Value{}, err
	}
	return String(strcase.ToLowerCamel(s)), nil
}

func builtinPascalCase(args []Value) (Value, error) {
	s, err := argString(args, 0, "pascal_case")
	if err != nil {
		return Value{}, err
	}
	return String(strcase.ToCamel(s)), nil
}

// builtinSubstring is char-indexed (not byte-indexed), matching the
// original's UTF-8-aware string_ops.rs::substring. Out-of-range bounds
// clamp rather than error, and a start==0,len==full-length slice
// returns the input unchanged.
func builtinSubstring(args []Value) (Value, error) {
	s, err := argString(args, 0, "substring")
	if err != nil {
		return Value{}, err
	}
	start, err := argInt(args, 1, "substring")
	if err != nil {
		return Value{}, err
	}
	length, err := argInt(args, 2, "substring")
	if err != nil {
		return Value{}, err
	}
	runes := []rune(s)
	n := int64(len(runes))
	if start < 0 {
		start = 0
	}
	if start >= n {
		return String(""), nil
	}
	end := start + length
	if length < 0 || end > n {
		end = n
	}
	if start == 0 && end == n {
		return String(s), nil
	}
	return String(string(runes[start:end])), nil
}

func builtinRegexReplace(args []Value) (Value, error) {
	s, err := argString(args, 0, "regex_replace")
	if err != nil {
		return Value{}, err
	}
	pattern, err := argString(args, 1, "regex_replace")
	if err != nil {
		return Value{}, err
	}
	replacement, err := argString(args, 2, "regex_replace")
	if err != nil {
		return Value{}, err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Value{}, fmt.Errorf("regex_replace: invalid pattern %q: %w", pattern, err)
	}
	return String(re.ReplaceAllString(s, replacement)), nil
}
