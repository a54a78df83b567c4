package expr

import (
	"fmt"
	"strings"

	"csveng/internal/schema"
	"csveng/internal/value"
)

// DerivedColumn is a "name[:type]=expression" spec, per §4.5. Grounded
// on original_source/src/derive.rs's DerivedColumn.
type DerivedColumn struct {
	Name       string
	Expression string
	OutputType *value.Type
}

// ParseDerivedColumn splits spec at its first '=' into a name (with an
// optional ':type' annotation) and an expression.
func ParseDerivedColumn(spec string) (DerivedColumn, error) {
	eq := strings.Index(spec, "=")
	if eq < 0 {
		return DerivedColumn{}, fmt.Errorf("derived column spec %q is missing '='", spec)
	}
	rawName := strings.TrimSpace(spec[:eq])
	if rawName == "" {
		return DerivedColumn{}, fmt.Errorf("derived column is missing a name")
	}
	expression := strings.TrimSpace(spec[eq+1:])
	if expression == "" {
		return DerivedColumn{}, fmt.Errorf("derived column %q is missing an expression", rawName)
	}

	name := rawName
	var outputType *value.Type
	if colon := strings.Index(rawName, ":"); colon >= 0 {
		name = strings.TrimSpace(rawName[:colon])
		if name == "" {
			return DerivedColumn{}, fmt.Errorf("derived column name is empty")
		}
		typeToken := strings.TrimSpace(rawName[colon+1:])
		t, err := schema.ParseDatatypeToken(typeToken)
		if err != nil {
			return DerivedColumn{}, fmt.Errorf("derived column %q has invalid datatype annotation %q: %w", name, typeToken, err)
		}
		outputType = &t
	}

	return DerivedColumn{Name: name, Expression: expression, OutputType: outputType}, nil
}

// ParseDerivedColumns parses each spec independently.
func ParseDerivedColumns(specs []string) ([]DerivedColumn, error) {
	out := make([]DerivedColumn, 0, len(specs))
	for _, s := range specs {
		dc, err := ParseDerivedColumn(s)
		if err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, nil
}

// Evaluate renders the derived column's value for one row, coercing the
// expression result to its final output string per derive.rs's
// EvalValue -> String mapping: integers render integrally, floats
// minimally, booleans as "true"/"false", tuples joined by '|', and an
// empty expression result renders as the empty string. When OutputType
// is set, the rendered string is round-trip validated by parsing it
// back through the declared type.
func (d DerivedColumn) Evaluate(headers []string, typedRow []value.ComparableValue, rowNumber int64, functions map[string]Function) (string, error) {
	ctx := BuildContext(headers, typedRow, rowNumber, functions)
	result, err := Eval(d.Expression, ctx)
	if err != nil {
		return "", fmt.Errorf("evaluating expression for column %q: %w", d.Name, err)
	}
	rendered := result.AsString()

	if d.OutputType != nil {
		if _, _, err := value.ParseTypedValue(rendered, *d.OutputType); err != nil {
			return "", fmt.Errorf("derived column %q produced a value incompatible with its declared type: %w", d.Name, err)
		}
	}
	return rendered, nil
}
