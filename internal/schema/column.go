// Package schema implements the column/schema metadata layer: declared
// datatypes, value-replacement and datatype-mapping pipelines, schema
// inference with evidence accumulation, and the YAML schema file format.
package schema

import "csveng/internal/value"

// Replacement is a literal, pre-parse string substitution applied to a
// cell before datatype mapping and typed parsing, per §3.2.
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// DatatypeMapping converts a cell from one declared type to another as
// part of the transformation pipeline, per §4.1.2.
type DatatypeMapping struct {
	From     string            `yaml:"from"`
	To       string            `yaml:"to"`
	Strategy string            `yaml:"strategy,omitempty"`
	Options  map[string]string `yaml:"options,omitempty"`
}

// Column is a single schema column's metadata: §3.2. Its YAML wire
// shape is handled separately by yaml.go's yamlColumn, since Datatype
// doesn't round-trip through plain struct tags.
type Column struct {
	Name             string
	Rename           string
	Datatype         value.Type
	DatatypeToken    string
	Replacements     []Replacement
	DatatypeMappings []DatatypeMapping
}

// OutputName is rename if non-empty, else the original name, per §3.2.
func (c Column) OutputName() string {
	if c.Rename != "" {
		return c.Rename
	}
	return c.Name
}

// NewColumn builds a column with the given datatype and no rename,
// replacements, or mappings — used by schema inference.
func NewColumn(name string, datatype value.Type) Column {
	return Column{Name: name, Datatype: datatype, DatatypeToken: datatype.String()}
}
