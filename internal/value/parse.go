package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var truthyTokens = map[string]bool{
	"true": true, "t": true, "yes": true, "y": true, "1": true,
}

var falsyTokens = map[string]bool{
	"false": true, "f": true, "no": true, "n": true, "0": true,
}

// ParseTypedValue parses a raw CSV cell against a declared column type,
// per §4.1 "Parsing parse_typed_value(raw, type)". An empty raw string
// always yields Absent (ok=false) regardless of type. A non-empty
// string that fails to parse against its declared type is an error.
func ParseTypedValue(raw string, t Type) (Value, bool, error) {
	if raw == "" {
		return Value{}, false, nil
	}

	switch t.Kind {
	case KindString:
		return NewString(raw), true, nil

	case KindInteger:
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Value{}, false, fmt.Errorf("failed to parse %q as integer: %w", raw, err)
		}
		return NewInteger(i), true, nil

	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Value{}, false, fmt.Errorf("failed to parse %q as float: %w", raw, err)
		}
		return NewFloat(f), true, nil

	case KindBoolean:
		lower := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case truthyTokens[lower]:
			return NewBoolean(true), true, nil
		case falsyTokens[lower]:
			return NewBoolean(false), true, nil
		default:
			return Value{}, false, fmt.Errorf("failed to parse %q as boolean", raw)
		}

	case KindDate:
		d, err := ParseDate(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, false, err
		}
		return NewDate(d), true, nil

	case KindDateTime:
		dt, err := ParseDateTime(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, false, err
		}
		return NewDateTime(dt), true, nil

	case KindTime:
		ct, err := ParseClockTime(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, false, err
		}
		return NewTime(ct), true, nil

	case KindGuid:
		cleaned := strings.TrimSpace(raw)
		cleaned = strings.TrimPrefix(cleaned, "{")
		cleaned = strings.TrimSuffix(cleaned, "}")
		g, err := uuid.Parse(cleaned)
		if err != nil {
			return Value{}, false, fmt.Errorf("failed to parse %q as guid: %w", raw, err)
		}
		return NewGuid(g), true, nil

	case KindCurrency:
		amount, scale, err := ParseCurrencyToken(raw)
		if err != nil {
			return Value{}, false, err
		}
		return NewCurrency(amount, scale), true, nil

	case KindDecimal:
		amount, err := ParseDecimalToken(raw)
		if err != nil {
			return Value{}, false, err
		}
		amount = Rescale(amount, t.Scale, RoundHalfAwayFromZero)
		if err := ValidateDecimalDigits(amount, t.Precision, t.Scale); err != nil {
			return Value{}, false, err
		}
		return NewDecimal(amount, t.Precision, t.Scale), true, nil

	default:
		return Value{}, false, fmt.Errorf("unsupported datatype %s", t.Kind)
	}
}

// IsBooleanToken reports whether raw (after trimming and lowercasing)
// is one of the truthy/falsy tokens §4.1 defines, the same check
// ParseTypedValue(Boolean) applies. Exported so schema inference's
// candidate evidence stays in lockstep with actual parsing.
func IsBooleanToken(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	return truthyTokens[lower] || falsyTokens[lower]
}

// IsFiniteFloat reports whether f is neither NaN nor infinite, used by
// schema inference to reject tokens that parse but aren't meaningfully
// numeric for majority-vote purposes.
func IsFiniteFloat(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
