package value

import (
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Value is an immutable tagged scalar. Its zero value is not meaningful;
// always build one through a constructor.
type Value struct {
	kind Kind

	s   string
	i   int64
	f   float64
	b   bool
	d   Date
	dt  DateTime
	t   ClockTime
	g   uuid.UUID
	dec decimal.Decimal

	// scale applies to Currency and Decimal; precision applies only to
	// Decimal.
	scale     int
	precision int
}

func NewString(s string) Value   { return Value{kind: KindString, s: s} }
func NewInteger(i int64) Value   { return Value{kind: KindInteger, i: i} }
func NewFloat(f float64) Value   { return Value{kind: KindFloat, f: f} }
func NewBoolean(b bool) Value    { return Value{kind: KindBoolean, b: b} }
func NewDate(d Date) Value       { return Value{kind: KindDate, d: d} }
func NewDateTime(dt DateTime) Value { return Value{kind: KindDateTime, dt: dt} }
func NewTime(t ClockTime) Value  { return Value{kind: KindTime, t: t} }
func NewGuid(g uuid.UUID) Value  { return Value{kind: KindGuid, g: g} }

func NewCurrency(amount decimal.Decimal, scale int) Value {
	return Value{kind: KindCurrency, dec: amount, scale: scale}
}

func NewDecimal(amount decimal.Decimal, precision, scale int) Value {
	return Value{kind: KindDecimal, dec: amount, precision: precision, scale: scale}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

func (v Value) AsInteger() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.i, true
}

func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

func (v Value) AsBoolean() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.b, true
}

func (v Value) AsDate() (Date, bool) {
	if v.kind != KindDate {
		return Date{}, false
	}
	return v.d, true
}

func (v Value) AsDateTime() (DateTime, bool) {
	if v.kind != KindDateTime {
		return DateTime{}, false
	}
	return v.dt, true
}

func (v Value) AsTime() (ClockTime, bool) {
	if v.kind != KindTime {
		return ClockTime{}, false
	}
	return v.t, true
}

func (v Value) AsGuid() (uuid.UUID, bool) {
	if v.kind != KindGuid {
		return uuid.UUID{}, false
	}
	return v.g, true
}

func (v Value) AsDecimal() (decimal.Decimal, int, int, bool) {
	if v.kind != KindDecimal && v.kind != KindCurrency {
		return decimal.Decimal{}, 0, 0, false
	}
	return v.dec, v.precision, v.scale, true
}

func (v Value) Scale() int { return v.scale }

// Display renders the canonical text form described in §3.1: floats
// that are integer-valued drop their decimal point, dates/datetimes/
// times use ISO form, and Currency/Decimal are zero-padded to scale.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		if v.f == math.Trunc(v.f) && !math.IsInf(v.f, 0) && !math.IsNaN(v.f) {
			return strconv.FormatInt(int64(v.f), 10)
		}
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindDate:
		return v.d.String()
	case KindDateTime:
		return v.dt.String()
	case KindTime:
		return v.t.String()
	case KindGuid:
		return v.g.String()
	case KindCurrency, KindDecimal:
		return FormatScaled(v.dec, v.scale)
	default:
		return ""
	}
}

func (v Value) String() string { return v.Display() }

// Compare returns -1/0/1 the way sort.Interface expects. Both operands
// must share a Kind; comparing across Kinds is a programming error and
// panics, per §3.1.
func (v Value) Compare(other Value) int {
	if v.kind != other.kind {
		panic(fmt.Sprintf("cannot compare heterogeneous Value kinds %s and %s", v.kind, other.kind))
	}
	switch v.kind {
	case KindString:
		return stringCompare(v.s, other.s)
	case KindInteger:
		return int64Compare(v.i, other.i)
	case KindFloat:
		return floatTotalCompare(v.f, other.f)
	case KindBoolean:
		return boolCompare(v.b, other.b)
	case KindDate:
		return v.d.Compare(other.d)
	case KindDateTime:
		return v.dt.Compare(other.dt)
	case KindTime:
		return v.t.Compare(other.t)
	case KindGuid:
		return stringCompare(v.g.String(), other.g.String())
	case KindCurrency, KindDecimal:
		return v.dec.Cmp(other.dec)
	default:
		panic("unreachable value kind in Compare")
	}
}

// Equal reports whether two same-kind values compare equal.
func (v Value) Equal(other Value) bool {
	return v.Compare(other) == 0
}

func stringCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func int64Compare(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolCompare(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

// floatTotalCompare implements the NaN-aware total order §3.1
// requires: -inf < negatives < -0 < +0 < positives < +inf < NaN.
func floatTotalCompare(a, b float64) int {
	ra, rb := floatRank(a), floatRank(b)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

// floatRank maps a float64 onto an order-preserving int64 space that
// additionally places -0 below +0 and NaN above everything, including
// +Inf.
func floatRank(f float64) int64 {
	if math.IsNaN(f) {
		return math.MaxInt64
	}
	bits := int64(math.Float64bits(f))
	if bits < 0 {
		// Negative floats: IEEE-754 bit pattern order is reversed
		// relative to numeric order, so flip it. The extra -1 keeps
		// -0 (bits == MinInt64) strictly below +0 (bits == 0), which
		// both would otherwise rank as 0.
		return math.MinInt64 - bits - 1
	}
	return bits
}
