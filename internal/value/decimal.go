package value

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundingStrategy selects how a decimal is rescaled to fewer fractional
// digits. The default across the engine is RoundHalfAwayFromZero.
type RoundingStrategy int

const (
	RoundHalfAwayFromZero RoundingStrategy = iota
	RoundTruncate
)

// ParseRoundingStrategy parses the `strategy` token datatype mappings
// and schema columns accept.
func ParseRoundingStrategy(token string) (RoundingStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "", "round":
		return RoundHalfAwayFromZero, nil
	case "truncate":
		return RoundTruncate, nil
	default:
		return 0, fmt.Errorf("unknown rounding strategy %q", token)
	}
}

// Rescale adjusts d to exactly `scale` fractional digits under the given
// strategy.
func Rescale(d decimal.Decimal, scale int, strategy RoundingStrategy) decimal.Decimal {
	switch strategy {
	case RoundTruncate:
		return d.Truncate(int32(scale))
	default:
		return roundHalfAwayFromZero(d, scale)
	}
}

func roundHalfAwayFromZero(d decimal.Decimal, scale int) decimal.Decimal {
	return d.RoundHalfAwayFromZero(int32(scale))
}

// ValidateDecimalDigits checks that d's integer part fits within
// precision-scale digits, per §4.1 Decimal(p,s) parsing.
func ValidateDecimalDigits(d decimal.Decimal, precision, scale int) error {
	integerDigits := precision - scale
	whole := d.Truncate(0).Abs()
	digits := len(whole.BigInt().String())
	if whole.IsZero() {
		digits = 1
	}
	if digits > integerDigits {
		return fmt.Errorf("value %s has %d integer digit(s), exceeding the %d allowed by decimal(%d,%d)", d.String(), digits, integerDigits, precision, scale)
	}
	return nil
}

var currencySymbols = map[rune]bool{'$': true, '€': true, '£': true, '¥': true}

// ParseCurrencyToken parses a raw field per §4.1 Currency rules:
// surrounding whitespace and an optional "(...)" negative wrapper are
// stripped, a single leading currency symbol and grouping separators
// (',', '_', ' ') are removed, and the remaining text must be a plain
// signed decimal with 0, 2, or 4 fractional digits. The returned scale
// is the observed fractional length, or 2 for integer-only input.
func ParseCurrencyToken(raw string) (decimal.Decimal, int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, 0, fmt.Errorf("empty currency value")
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	runes := []rune(s)
	if len(runes) > 0 && currencySymbols[runes[0]] {
		runes = runes[1:]
	}
	s = string(runes)

	var cleaned strings.Builder
	fractionalDigits := -1
	seenDot := false
	for _, r := range s {
		switch {
		case r == ',' || r == '_' || r == ' ':
			continue
		case r == '.':
			if seenDot {
				return decimal.Decimal{}, 0, fmt.Errorf("malformed currency value %q: multiple decimal points", raw)
			}
			seenDot = true
			fractionalDigits = 0
			cleaned.WriteRune(r)
		case r == '+' || r == '-':
			cleaned.WriteRune(r)
		case r >= '0' && r <= '9':
			if seenDot {
				fractionalDigits++
			}
			cleaned.WriteRune(r)
		default:
			return decimal.Decimal{}, 0, fmt.Errorf("malformed currency value %q: unexpected character %q", raw, r)
		}
	}

	if fractionalDigits != -1 && fractionalDigits != 0 && fractionalDigits != 2 && fractionalDigits != 4 {
		return decimal.Decimal{}, 0, fmt.Errorf("malformed currency value %q: %d fractional digits is not 0, 2, or 4", raw, fractionalDigits)
	}

	text := cleaned.String()
	if text == "" {
		return decimal.Decimal{}, 0, fmt.Errorf("malformed currency value %q: no digits", raw)
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, 0, fmt.Errorf("malformed currency value %q: %w", raw, err)
	}
	if negative {
		d = d.Neg()
	}

	scale := fractionalDigits
	if scale <= 0 {
		scale = 2
	}
	return d, scale, nil
}

// ParseDecimalToken parses an arbitrary-precision decimal, accepting
// scientific notation, per §4.1 Decimal(p,s).
func ParseDecimalToken(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse %q as decimal: %w", raw, err)
	}
	return d, nil
}

// FormatScaled renders d zero-padded to exactly `scale` fractional
// digits, per §3.1 Display.
func FormatScaled(d decimal.Decimal, scale int) string {
	return d.StringFixed(int32(scale))
}
