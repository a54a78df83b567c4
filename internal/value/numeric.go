package value

import "strings"

// NumericShape classifies a raw token's numeric texture so schema
// inference can decide between Integer and Decimal(p,s) candidates
// without fully parsing the column's eventual type.
type NumericShape struct {
	// IsNumeric is false when the token has no digits at all.
	IsNumeric bool

	// IsInteger is true when the token has no fractional part.
	IsInteger bool

	// Precision and Scale are the digit counts a Decimal(p,s) inferred
	// from this token alone would need.
	Precision int
	Scale     int

	// HadCurrencySymbol/HadParenNegative record formatting evidence
	// schema inference uses to prefer a Currency candidate.
	HadCurrencySymbol bool
	HadParenNegative  bool
}

// ClassifyNumericToken inspects a raw token's shape without validating
// it as any particular Type, stripping the same grouping separators and
// currency decoration ParseCurrencyToken accepts.
func ClassifyNumericToken(raw string) NumericShape {
	s := strings.TrimSpace(raw)
	if s == "" {
		return NumericShape{}
	}

	shape := NumericShape{}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		shape.HadParenNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	runes := []rune(s)
	if len(runes) > 0 && currencySymbols[runes[0]] {
		shape.HadCurrencySymbol = true
		runes = runes[1:]
	}
	s = string(runes)

	var intDigits, fracDigits int
	seenDot := false
	seenDigit := false
	for _, r := range s {
		switch {
		case r == ',' || r == '_' || r == ' ':
			continue
		case r == '.':
			if seenDot {
				return NumericShape{}
			}
			seenDot = true
		case r == '+' || r == '-':
			continue
		case r >= '0' && r <= '9':
			seenDigit = true
			if seenDot {
				fracDigits++
			} else {
				intDigits++
			}
		default:
			return NumericShape{}
		}
	}

	if !seenDigit {
		return NumericShape{}
	}

	shape.IsNumeric = true
	shape.IsInteger = !seenDot || fracDigits == 0
	if intDigits == 0 {
		intDigits = 1
	}
	shape.Precision = intDigits + fracDigits
	shape.Scale = fracDigits
	return shape
}
