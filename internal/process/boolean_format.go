package process

import (
	"fmt"
	"strings"

	"csveng/internal/schema"
	"csveng/internal/value"
)

// BooleanFormat selects how a Boolean-declared cell renders in output,
// per §4.6 "Boolean output formatting". Spec addition — no
// original_source analogue (the Rust tool always emits the raw
// post-replacement string).
type BooleanFormat int

const (
	BooleanOriginal BooleanFormat = iota
	BooleanTrueFalse
	BooleanOneZero
	BooleanYesNo
)

// ParseBooleanFormat parses the --boolean-format flag's token.
func ParseBooleanFormat(token string) (BooleanFormat, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "", "original":
		return BooleanOriginal, nil
	case "true-false":
		return BooleanTrueFalse, nil
	case "one-zero":
		return BooleanOneZero, nil
	case "yes-no":
		return BooleanYesNo, nil
	default:
		return BooleanOriginal, fmt.Errorf("unknown boolean format %q", token)
	}
}

// FormatBooleanCell renders one cell's output text: columns not
// declared Boolean, or cells with no typed value, pass raw through
// unchanged; only a present, Boolean-typed cell is reformatted.
func FormatBooleanCell(format BooleanFormat, col schema.Column, raw string, typed value.ComparableValue) string {
	if col.Datatype.Kind != value.KindBoolean || format == BooleanOriginal {
		return raw
	}
	v, present := typed.Value()
	if !present {
		return raw
	}
	b, ok := v.AsBoolean()
	if !ok {
		return raw
	}
	switch format {
	case BooleanTrueFalse:
		if b {
			return "true"
		}
		return "false"
	case BooleanOneZero:
		if b {
			return "1"
		}
		return "0"
	case BooleanYesNo:
		if b {
			return "yes"
		}
		return "no"
	default:
		return raw
	}
}
