package schema

import (
	"fmt"
	"math"
	"strconv"

	"csveng/internal/value"
)

// ApplyMapping converts raw from one declared type to another per the
// conversions §4.1.2 names. columnName is used only for error context.
func ApplyMapping(columnName string, m DatatypeMapping, raw string) (string, error) {
	fromType, err := value.ParseType(m.From)
	if err != nil {
		return "", fmt.Errorf("column %q: datatype mapping 'from' type: %w", columnName, err)
	}
	toType, err := value.ParseType(m.To)
	if err != nil {
		return "", fmt.Errorf("column %q: datatype mapping 'to' type: %w", columnName, err)
	}
	strategy, err := value.ParseRoundingStrategy(m.Strategy)
	if err != nil {
		return "", fmt.Errorf("column %q: datatype mapping %s->%s: unknown strategy %q: %w", columnName, m.From, m.To, m.Strategy, err)
	}

	switch {
	case fromType.Kind == value.KindString && toType.Kind == value.KindDateTime:
		dt, err := value.ParseDateTime(raw)
		if err != nil {
			return "", fmt.Errorf("column %q: %w", columnName, err)
		}
		return dt.String(), nil

	case fromType.Kind == value.KindDateTime && toType.Kind == value.KindDate:
		dt, err := value.ParseDateTime(raw)
		if err != nil {
			return "", fmt.Errorf("column %q: %w", columnName, err)
		}
		return dt.Date().String(), nil

	case fromType.Kind == value.KindDateTime && toType.Kind == value.KindTime:
		dt, err := value.ParseDateTime(raw)
		if err != nil {
			return "", fmt.Errorf("column %q: %w", columnName, err)
		}
		return dt.Time().String(), nil

	case fromType.Kind == value.KindString && toType.Kind == value.KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", fmt.Errorf("column %q: %w", columnName, err)
		}
		scale := 0
		if raw, ok := m.Options["scale"]; ok {
			scale, err = strconv.Atoi(raw)
			if err != nil {
				return "", fmt.Errorf("column %q: datatype mapping scale option: %w", columnName, err)
			}
		}
		return strconv.FormatFloat(roundFloatHalfAwayFromZero(f, scale), 'f', scale, 64), nil

	case fromType.Kind == value.KindString && toType.Kind == value.KindCurrency:
		amount, observedScale, err := value.ParseCurrencyToken(raw)
		if err != nil {
			return "", fmt.Errorf("column %q: %w", columnName, err)
		}
		targetScale := observedScale
		if raw, ok := m.Options["scale"]; ok {
			targetScale, err = strconv.Atoi(raw)
			if err != nil {
				return "", fmt.Errorf("column %q: datatype mapping scale option: %w", columnName, err)
			}
		}
		amount = value.Rescale(amount, targetScale, strategy)
		return value.FormatScaled(amount, targetScale), nil

	case fromType.Kind == value.KindCurrency && toType.Kind == value.KindDecimal:
		amount, _, err := value.ParseCurrencyToken(raw)
		if err != nil {
			return "", fmt.Errorf("column %q: %w", columnName, err)
		}
		amount = value.Rescale(amount, toType.Scale, strategy)
		if err := value.ValidateDecimalDigits(amount, toType.Precision, toType.Scale); err != nil {
			return "", fmt.Errorf("column %q: %w", columnName, err)
		}
		return value.FormatScaled(amount, toType.Scale), nil

	default:
		return "", fmt.Errorf("column %q: unsupported datatype mapping %s->%s", columnName, m.From, m.To)
	}
}

func roundFloatHalfAwayFromZero(f float64, scale int) float64 {
	factor := math.Pow10(scale)
	if f >= 0 {
		return math.Floor(f*factor+0.5) / factor
	}
	return math.Ceil(f*factor-0.5) / factor
}
