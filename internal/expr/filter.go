package expr

import (
	"fmt"
	"strings"

	"csveng/internal/schema"
	"csveng/internal/value"
)

// ComparisonOperator identifies a filter condition's operator, per
// §4.4. Grounded on original_source/src/filter.rs's ComparisonOperator.
type ComparisonOperator int

const (
	OpEq ComparisonOperator = iota
	OpNotEq
	OpGt
	OpGe
	OpLt
	OpLe
	OpContains
	OpStartsWith
	OpEndsWith
)

// FilterCondition is one parsed "column OP value" clause.
type FilterCondition struct {
	Column   string
	Operator ComparisonOperator
	RawValue string
}

// ParseFilters parses each filter string independently; a column may
// appear in more than one condition, all of which must hold (logical AND).
func ParseFilters(filters []string) ([]FilterCondition, error) {
	out := make([]FilterCondition, 0, len(filters))
	for _, f := range filters {
		fc, err := parseFilter(f)
		if err != nil {
			return nil, err
		}
		out = append(out, fc)
	}
	return out, nil
}

var wordOperators = []struct {
	needle string
	op     ComparisonOperator
}{
	{" contains ", OpContains},
	{" startswith ", OpStartsWith},
	{" endswith ", OpEndsWith},
}

// symbolOperators must be tried longest-first so "!=" isn't misread as "=".
var symbolOperators = []struct {
	needle string
	op     ComparisonOperator
}{
	{"!=", OpNotEq},
	{">=", OpGe},
	{"<=", OpLe},
	{"=", OpEq},
	{">", OpGt},
	{"<", OpLt},
}

func parseFilter(filter string) (FilterCondition, error) {
	trimmed := strings.TrimSpace(filter)
	if trimmed == "" {
		return FilterCondition{}, fmt.Errorf("empty filter expression")
	}

	lowered := strings.ToLower(trimmed)
	for _, w := range wordOperators {
		if idx := strings.Index(lowered, w.needle); idx >= 0 {
			left := trimmed[:idx]
			right := strings.TrimSpace(trimmed[idx+len(w.needle):])
			unquoted, err := unquote(right)
			if err != nil {
				return FilterCondition{}, err
			}
			return FilterCondition{
				Column:   strings.TrimSpace(left),
				Operator: w.op,
				RawValue: unquoted,
			}, nil
		}
	}

	for _, s := range symbolOperators {
		if idx := strings.Index(trimmed, s.needle); idx >= 0 {
			left := strings.TrimSpace(trimmed[:idx])
			right := strings.TrimSpace(trimmed[idx+len(s.needle):])
			unquoted, err := unquote(right)
			if err != nil {
				return FilterCondition{}, err
			}
			return FilterCondition{
				Column:   left,
				Operator: s.op,
				RawValue: unquoted,
			}, nil
		}
	}

	return FilterCondition{}, fmt.Errorf("failed to parse filter expression %q", trimmed)
}

func unquote(s string) (string, error) {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1], nil
		}
	}
	return s, nil
}

// EvaluateConditions reports whether raw_row/typed_row satisfies every
// condition (logical AND), resolving each condition's column through
// the schema's rename-then-original lookup, falling back to a plain
// header-position match.
func EvaluateConditions(conditions []FilterCondition, s schema.Schema, headers []string, rawRow []string, typedRow []value.ComparableValue) (bool, error) {
	for _, cond := range conditions {
		colIndex, ok := s.ColumnIndex(cond.Column)
		if !ok {
			for i, h := range headers {
				if h == cond.Column {
					colIndex, ok = i, true
					break
				}
			}
		}
		if !ok {
			return false, fmt.Errorf("column %q not found for filter", cond.Column)
		}

		columnType := value.Type{Kind: value.KindString}
		if colIndex < len(s.Columns) {
			columnType = s.Columns[colIndex].Datatype
		}

		var rawValue string
		if colIndex < len(rawRow) {
			rawValue = rawRow[colIndex]
		}
		var typedValue value.ComparableValue
		if colIndex < len(typedRow) {
			typedValue = typedRow[colIndex]
		}

		ok, err := evaluateCondition(cond, columnType, rawValue, typedValue)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func evaluateCondition(cond FilterCondition, columnType value.Type, rawValue string, typedValue value.ComparableValue) (bool, error) {
	switch cond.Operator {
	case OpContains:
		return strings.Contains(rawValue, cond.RawValue), nil
	case OpStartsWith:
		return strings.HasPrefix(rawValue, cond.RawValue), nil
	case OpEndsWith:
		return strings.HasSuffix(rawValue, cond.RawValue), nil
	}

	left, leftPresent := typedValue.Value()
	if !leftPresent && rawValue != "" {
		parsed, present, err := value.ParseTypedValue(rawValue, columnType)
		if err != nil {
			return false, err
		}
		left, leftPresent = parsed, present
	}

	right, rightPresent, err := value.ParseTypedValue(cond.RawValue, columnType)
	if err != nil {
		return false, err
	}

	switch {
	case leftPresent && rightPresent:
		cmp := left.Compare(right)
		switch cond.Operator {
		case OpEq:
			return cmp == 0, nil
		case OpNotEq:
			return cmp != 0, nil
		case OpGt:
			return cmp > 0, nil
		case OpGe:
			return cmp >= 0, nil
		case OpLt:
			return cmp < 0, nil
		case OpLe:
			return cmp <= 0, nil
		}
	case !leftPresent && !rightPresent:
		return cond.Operator == OpEq || cond.Operator == OpGe || cond.Operator == OpLe, nil
	default:
		return cond.Operator == OpNotEq, nil
	}
	return false, fmt.Errorf("unhandled comparison operator")
}
