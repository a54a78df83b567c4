// Package value implements the typed scalar algebra described by the
// engine's schema layer: a closed set of column types, total ordering
// within a type, canonical display, and the arbitrary-precision decimal
// and currency variants.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies one of the closed set of scalar variants a Value can
// hold. Heterogeneous comparisons across Kinds are a programming error,
// never a recoverable runtime condition.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindDate
	KindDateTime
	KindTime
	KindGuid
	KindCurrency
	KindDecimal
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	case KindTime:
		return "time"
	case KindGuid:
		return "guid"
	case KindCurrency:
		return "currency"
	case KindDecimal:
		return "decimal"
	default:
		return "unknown"
	}
}

// MaxDecimalPrecision is the largest precision a Decimal column may
// declare; DecimalScale must never exceed it either.
const MaxDecimalPrecision = 28

// Type is a column's declared datatype, including the parameters that
// Currency and Decimal need (scale, and for Decimal, precision).
type Type struct {
	Kind Kind

	// Precision is the total number of significant digits a Decimal
	// column carries. Unused for every other Kind.
	Precision int

	// Scale is the number of fractional digits. For Currency it must be
	// 2 or 4; for Decimal it must be <= Precision.
	Scale int
}

// String renders the type token the way the schema file format and CLI
// flags expect it back, e.g. "decimal(10,2)".
func (t Type) String() string {
	if t.Kind == KindDecimal {
		return fmt.Sprintf("decimal(%d,%d)", t.Precision, t.Scale)
	}
	return t.Kind.String()
}

// ParseType parses one of the tokens §6.2 lists: the bare enum names,
// their aliases, or the parametric decimal(p,s) / decimal(precision=p,scale=s)
// forms.
func ParseType(token string) (Type, error) {
	raw := strings.TrimSpace(token)
	lower := strings.ToLower(raw)

	switch lower {
	case "string":
		return Type{Kind: KindString}, nil
	case "integer", "int":
		return Type{Kind: KindInteger}, nil
	case "float", "double":
		return Type{Kind: KindFloat}, nil
	case "boolean", "bool":
		return Type{Kind: KindBoolean}, nil
	case "date":
		return Type{Kind: KindDate}, nil
	case "datetime", "timestamp":
		return Type{Kind: KindDateTime}, nil
	case "time":
		return Type{Kind: KindTime}, nil
	case "guid", "uuid":
		return Type{Kind: KindGuid}, nil
	case "currency":
		return Type{Kind: KindCurrency, Scale: 2}, nil
	}

	if strings.HasPrefix(lower, "decimal(") && strings.HasSuffix(lower, ")") {
		return parseDecimalType(raw[strings.Index(raw, "(")+1 : len(raw)-1])
	}

	return Type{}, fmt.Errorf("unknown datatype %q", token)
}

func parseDecimalType(body string) (Type, error) {
	body = strings.TrimSpace(body)
	var precision, scale int
	var err error

	if strings.Contains(body, "=") {
		fields := strings.Split(body, ",")
		if len(fields) != 2 {
			return Type{}, fmt.Errorf("malformed decimal type parameters %q", body)
		}
		values := map[string]int{}
		for _, field := range fields {
			kv := strings.SplitN(field, "=", 2)
			if len(kv) != 2 {
				return Type{}, fmt.Errorf("malformed decimal type parameter %q", field)
			}
			key := strings.ToLower(strings.TrimSpace(kv[0]))
			n, convErr := strconv.Atoi(strings.TrimSpace(kv[1]))
			if convErr != nil {
				return Type{}, fmt.Errorf("decimal type parameter %q is not an integer: %w", key, convErr)
			}
			values[key] = n
		}
		var ok1, ok2 bool
		if precision, ok1 = values["precision"]; !ok1 {
			return Type{}, fmt.Errorf("decimal type is missing 'precision'")
		}
		if scale, ok2 = values["scale"]; !ok2 {
			return Type{}, fmt.Errorf("decimal type is missing 'scale'")
		}
	} else {
		fields := strings.Split(body, ",")
		if len(fields) != 2 {
			return Type{}, fmt.Errorf("malformed decimal type parameters %q", body)
		}
		precision, err = strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return Type{}, fmt.Errorf("decimal precision is not an integer: %w", err)
		}
		scale, err = strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return Type{}, fmt.Errorf("decimal scale is not an integer: %w", err)
		}
	}

	t := Type{Kind: KindDecimal, Precision: precision, Scale: scale}
	if err := t.Validate(); err != nil {
		return Type{}, err
	}
	return t, nil
}

// Validate checks the precision/scale invariants from §3.3: decimal
// precision must not exceed MaxDecimalPrecision and scale must not
// exceed precision.
func (t Type) Validate() error {
	if t.Kind != KindDecimal {
		return nil
	}
	if t.Precision > MaxDecimalPrecision {
		return fmt.Errorf("decimal precision %d exceeds maximum of %d", t.Precision, MaxDecimalPrecision)
	}
	if t.Scale > t.Precision {
		return fmt.Errorf("decimal scale %d exceeds precision %d", t.Scale, t.Precision)
	}
	if t.Precision < 0 || t.Scale < 0 {
		return fmt.Errorf("decimal precision and scale must be non-negative")
	}
	return nil
}
