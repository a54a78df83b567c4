package expr

import (
	"strings"

	"csveng/internal/value"
)

// NormalizeColumnName applies §4.3's binding rule: lowercase, any run of
// characters outside [A-Za-z0-9] becomes a single underscore, a leading
// digit gets an underscore prefix, and an empty result becomes "column".
func NormalizeColumnName(name string) string {
	var b strings.Builder
	lastWasSep := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasSep = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
			lastWasSep = false
		default:
			if !lastWasSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			lastWasSep = true
		}
	}
	out := b.String()
	out = strings.TrimSuffix(out, "_")
	if out == "" {
		return "column"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// FromComparable converts a schema-typed cell into the expression
// language's own dynamic Value, used to bind row data into a Context.
func FromComparable(cv value.ComparableValue) Value {
	v, present := cv.Value()
	if !present {
		return String("")
	}
	switch v.Kind() {
	case value.KindString:
		s, _ := v.AsString()
		return String(s)
	case value.KindInteger:
		i, _ := v.AsInteger()
		return Int(i)
	case value.KindFloat:
		f, _ := v.AsFloat()
		return Float(f)
	case value.KindBoolean:
		b, _ := v.AsBoolean()
		return Bool(b)
	default:
		return String(v.Display())
	}
}

// BuildContext binds a row's columns for expression evaluation: each
// column is bound by its normalized name and, redundantly, by the
// positional alias c0, c1, ...; row_number and builtins are bound too.
func BuildContext(headers []string, typedRow []value.ComparableValue, rowNumber int64, functions map[string]Function) *Context {
	ctx := NewContext()
	for name, fn := range functions {
		ctx.Functions[name] = fn
	}
	for i, h := range headers {
		var v Value
		if i < len(typedRow) {
			v = FromComparable(typedRow[i])
		} else {
			v = String("")
		}
		ctx.Variables[NormalizeColumnName(h)] = v
		ctx.Variables[positionalAlias(i)] = v
	}
	ctx.Variables["row_number"] = Int(rowNumber)
	return ctx
}

func positionalAlias(i int) string {
	return "c" + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}
