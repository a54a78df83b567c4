package schema

import (
	"fmt"

	"csveng/internal/value"
)

// ApplyReplacements runs a column's ordered value-replacements against a
// single cell. Replacements are literal-equality, not pattern, and run
// in declaration order: each entry is compared against the current
// value, so a later entry can replace what an earlier one produced,
// matching the teacher's staged-pipeline style of chaining left to right.
func ApplyReplacements(col Column, raw string) string {
	current := raw
	for _, r := range col.Replacements {
		if current == r.From {
			current = r.To
		}
	}
	return current
}

// ApplyDatatypeMappings chains a column's ordered datatype mappings,
// per §4.1 step 2: each mapping parses the current cell as `from`,
// converts, and renders back to string before the next mapping runs.
func ApplyDatatypeMappings(col Column, raw string) (string, error) {
	current := raw
	for _, m := range col.DatatypeMappings {
		if current == "" {
			break
		}
		next, err := ApplyMapping(col.Name, m, current)
		if err != nil {
			return "", err
		}
		current = next
	}
	return current, nil
}

// TransformCell runs the full pre-parse pipeline for a single cell:
// value-replacement, then datatype-mapping chain, per §4.1/§3.5.
func TransformCell(col Column, raw string) (string, error) {
	replaced := ApplyReplacements(col, raw)
	return ApplyDatatypeMappings(col, replaced)
}

// TransformRow runs TransformCell across an entire raw row, returning
// the final strings ready for parse_typed_value per §3.5 step 3. rowNum
// is 1-based (header counts as row 1) and is used only for error
// context.
func TransformRow(s Schema, raw []string, rowNum int) ([]string, error) {
	if len(raw) != len(s.Columns) {
		return nil, fmt.Errorf("row %d: expected %d column(s) but found %d", rowNum, len(s.Columns), len(raw))
	}
	out := make([]string, len(raw))
	for i, col := range s.Columns {
		transformed, err := TransformCell(col, raw[i])
		if err != nil {
			return nil, fmt.Errorf("row %d, column %q: %w", rowNum, col.OutputName(), err)
		}
		out[i] = transformed
	}
	return out, nil
}

// ParseRow parses an already-transformed row (TransformRow's output)
// into typed cells, per §3.5's final step. Absent cells (ok=false) are
// lifted via value.Absent().
func ParseRow(s Schema, transformed []string, rowNum int) ([]value.ComparableValue, error) {
	out := make([]value.ComparableValue, len(transformed))
	for i, col := range s.Columns {
		v, ok, err := value.ParseTypedValue(transformed[i], col.Datatype)
		if err != nil {
			return nil, fmt.Errorf("row %d, column %q: %w", rowNum, col.OutputName(), err)
		}
		if !ok {
			out[i] = value.Absent()
			continue
		}
		out[i] = value.Present(v)
	}
	return out, nil
}

// TransformAndParseRow composes TransformRow and ParseRow, the
// single-call form most callers want.
func TransformAndParseRow(s Schema, raw []string, rowNum int) ([]value.ComparableValue, error) {
	transformed, err := TransformRow(s, raw, rowNum)
	if err != nil {
		return nil, err
	}
	return ParseRow(s, transformed, rowNum)
}
