package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlSchema and yamlColumn mirror Schema/Column field-for-field for
// serialization; Column's Datatype field isn't directly YAML-tagged
// (it's resolved from DatatypeToken), so the raw/convert split here
// follows the teacher's toml-parser convention of a raw wire struct plus
// a separate convert step.
type yamlSchema struct {
	SchemaVersion string       `yaml:"schema_version"`
	HasHeaders    bool         `yaml:"has_headers"`
	Columns       []yamlColumn `yaml:"columns"`
}

type yamlColumn struct {
	Name             string            `yaml:"name"`
	Datatype         string            `yaml:"datatype"`
	Rename           string            `yaml:"rename,omitempty"`
	Replace          []Replacement     `yaml:"replace,omitempty"`
	DatatypeMappings []DatatypeMapping `yaml:"datatype_mappings,omitempty"`
}

func toYAML(s Schema) yamlSchema {
	out := yamlSchema{SchemaVersion: s.SchemaVersion, HasHeaders: s.HasHeaders}
	out.Columns = make([]yamlColumn, len(s.Columns))
	for i, c := range s.Columns {
		out.Columns[i] = yamlColumn{
			Name:             c.Name,
			Datatype:         c.Datatype.String(),
			Rename:           c.Rename,
			Replace:          c.Replacements,
			DatatypeMappings: c.DatatypeMappings,
		}
	}
	return out
}

func fromYAML(y yamlSchema) (Schema, error) {
	s := Schema{SchemaVersion: y.SchemaVersion, HasHeaders: y.HasHeaders}
	s.Columns = make([]Column, len(y.Columns))
	for i, yc := range y.Columns {
		datatype, err := ParseDatatypeToken(yc.Datatype)
		if err != nil {
			return Schema{}, fmt.Errorf("column %q: %w", yc.Name, err)
		}
		s.Columns[i] = Column{
			Name:             yc.Name,
			DatatypeToken:    yc.Datatype,
			Datatype:         datatype,
			Rename:           yc.Rename,
			Replacements:     yc.Replace,
			DatatypeMappings: yc.DatatypeMappings,
		}
	}
	return s, nil
}

// Marshal renders a Schema to its YAML document form, per §6.2.
func Marshal(s Schema) ([]byte, error) {
	return yaml.Marshal(toYAML(s))
}

// Unmarshal parses a YAML schema document, rejecting unknown structured
// datatypes at load, per §6.2.
func Unmarshal(data []byte) (Schema, error) {
	var y yamlSchema
	if err := yaml.Unmarshal(data, &y); err != nil {
		return Schema{}, fmt.Errorf("parsing schema document: %w", err)
	}
	return fromYAML(y)
}

// Load reads and parses a schema document from path.
func Load(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("opening schema file %q: %w", path, err)
	}
	return Unmarshal(data)
}

// Save renders and writes a schema document to path.
func Save(path string, s Schema) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("rendering schema document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing schema file %q: %w", path, err)
	}
	return nil
}
