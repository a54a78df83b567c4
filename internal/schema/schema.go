package schema

import "fmt"

// CurrentSchemaVersion is written into every schema this engine
// produces; older documents are accepted as-is since the document shape
// has not changed since spec.md §6.2 was fixed.
const CurrentSchemaVersion = "1"

// Schema is the ordered column metadata for a CSV file, per §3.3.
type Schema struct {
	SchemaVersion string   `yaml:"schema_version"`
	HasHeaders    bool     `yaml:"has_headers"`
	Columns       []Column `yaml:"columns"`
}

// FromHeaders builds a default all-String schema from observed headers,
// the seed schema infer.go refines.
func FromHeaders(headers []string) Schema {
	columns := make([]Column, len(headers))
	for i, h := range headers {
		columns[i] = NewColumn(h, stringType())
	}
	return Schema{SchemaVersion: CurrentSchemaVersion, HasHeaders: true, Columns: columns}
}

// ColumnIndex returns the position of the column known by name, trying
// rename first, then original name, per §4.4's column lookup order.
func (s Schema) ColumnIndex(name string) (int, bool) {
	for i, c := range s.Columns {
		if c.Rename != "" && c.Rename == name {
			return i, true
		}
	}
	for i, c := range s.Columns {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Headers returns the original column names in declaration order.
func (s Schema) Headers() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Name
	}
	return out
}

// OutputHeaders returns each column's effective output header.
func (s Schema) OutputHeaders() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.OutputName()
	}
	return out
}

// ValidateHeaders checks observed against the schema's original names,
// per §4.1 "Header validation": length must match, and every position's
// observed name must equal the schema's declared name. Rename never
// participates.
func (s Schema) ValidateHeaders(observed []string) error {
	if len(observed) != len(s.Columns) {
		return fmt.Errorf("header length mismatch: schema expects %d column(s) but file contains %d", len(s.Columns), len(observed))
	}
	for i, c := range s.Columns {
		if observed[i] != c.Name {
			return fmt.Errorf("header mismatch at position %d: expected %q but found %q", i+1, c.Name, observed[i])
		}
	}
	return nil
}

// Validate checks the schema-level invariants from §3.3: unique column
// names, unique output names, decimal precision/scale bounds (delegated
// to value.Type.Validate), and no rename colliding with another
// column's original name.
func (s Schema) Validate() error {
	seenNames := map[string]bool{}
	seenOutputs := map[string]bool{}
	originalNames := map[string]bool{}
	for _, c := range s.Columns {
		originalNames[c.Name] = true
	}

	for _, c := range s.Columns {
		if seenNames[c.Name] {
			return fmt.Errorf("duplicate column name %q", c.Name)
		}
		seenNames[c.Name] = true

		output := c.OutputName()
		if seenOutputs[output] {
			return fmt.Errorf("duplicate output header %q", output)
		}
		seenOutputs[output] = true

		if c.Rename != "" && c.Rename != c.Name && originalNames[c.Rename] {
			return fmt.Errorf("rename %q for column %q collides with another column's original name", c.Rename, c.Name)
		}

		if err := c.Datatype.Validate(); err != nil {
			return fmt.Errorf("column %q: %w", c.Name, err)
		}
	}
	return nil
}
