package schema

import "csveng/internal/value"

// stringType is the default datatype schema inference and FromHeaders
// seed columns with before any evidence is gathered.
func stringType() value.Type {
	return value.Type{Kind: value.KindString}
}

// ParseDatatypeToken parses a schema-file datatype token, per §6.2: the
// bare enum names/aliases or the parametric decimal(p,s) form. This is a
// thin wrapper over value.ParseType kept here so the schema package
// owns the public entry point schema-file loaders use.
func ParseDatatypeToken(token string) (value.Type, error) {
	return value.ParseType(token)
}
