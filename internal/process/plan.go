// Package process implements the process engine (§4.6): planning a run
// from CLI-shaped options, strategy selection between the streaming,
// indexed, and in-memory-sort passes, and emitting the output plan.
// Grounded throughout on original_source/src/process.rs.
package process

import (
	"fmt"
	"strings"

	"csveng/internal/expr"
	"csveng/internal/index"
	"csveng/internal/schema"
)

// Options bundles every CLI-level knob the process command accepts,
// per §6.1's `process` subcommand flag set. Grounded on the teacher's
// apply.Options (flat struct, flag-named fields) and process.rs's
// ProcessArgs.
type Options struct {
	Input           string
	Output          string
	SchemaPath      string
	IndexPath       string
	IndexVariant    string
	Sort            []string
	Columns         []string
	ExcludeColumns  []string
	Derive          []string
	Filter          []string
	FilterExpr      []string
	RowNumbers      bool
	Limit           int
	Delimiter       *rune
	OutputDelimiter *rune
	InputEncoding   string
	OutputEncoding  string
	BooleanFormat   string
	Preview         bool
	Table           bool
	ApplyMappings   bool
	SkipMappings    bool
}

// OutputFieldKind identifies what one projected output column draws
// from, per §4.6 "Planning" step 5. Grounded on process.rs's OutputField.
type OutputFieldKind int

const (
	FieldRowNumber OutputFieldKind = iota
	FieldExistingColumn
	FieldDerived
)

// OutputField is one column of the emitted row.
type OutputField struct {
	Kind         OutputFieldKind
	ColumnIndex  int // valid when Kind == FieldExistingColumn
	DerivedIndex int // valid when Kind == FieldDerived
}

// OutputPlan is the ordered sequence of output fields and their output
// headers, per §4.6 step 5. Grounded on process.rs's OutputPlan.
type OutputPlan struct {
	Headers []string
	Fields  []OutputField
}

// Plan is the fully-resolved description of one process invocation,
// computed once from Options plus the loaded schema (and, if present,
// index) before any row is read. Grounded on process.rs's execute
// function's local planning steps.
type Plan struct {
	SortDirectives  []index.SortDirective
	Filters         []expr.FilterCondition
	FilterExprs     []string
	Derived         []expr.DerivedColumn
	Output          OutputPlan
	BooleanFormat   BooleanFormat
	Limit           int
	RowNumbers      bool
	SelectedVariant *index.Variant
}

// Build computes a Plan from opts, a loaded schema, and (optionally) a
// loaded index. headers is the CSV's observed header row, used for
// column lookups that fall back past schema renames.
func Build(opts Options, s schema.Schema, idx *index.Index, headers []string) (Plan, error) {
	sorts, err := ParseSortDirectives(opts.Sort)
	if err != nil {
		return Plan{}, err
	}

	selected := splitCommaLists(opts.Columns)
	excluded := splitCommaLists(opts.ExcludeColumns)

	derived, err := expr.ParseDerivedColumns(opts.Derive)
	if err != nil {
		return Plan{}, err
	}

	filters, err := expr.ParseFilters(opts.Filter)
	if err != nil {
		return Plan{}, err
	}

	booleanFormat, err := ParseBooleanFormat(opts.BooleanFormat)
	if err != nil {
		return Plan{}, err
	}

	outputPlan, err := buildOutputPlan(headers, s, selected, excluded, derived, opts.RowNumbers)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		SortDirectives: sorts,
		Filters:        filters,
		FilterExprs:    opts.FilterExpr,
		Derived:        derived,
		Output:         outputPlan,
		BooleanFormat:  booleanFormat,
		Limit:          opts.Limit,
		RowNumbers:     opts.RowNumbers,
	}

	if idx != nil && len(sorts) > 0 {
		if variant, ok := selectVariant(idx, opts.IndexVariant, sorts); ok {
			plan.SelectedVariant = &variant
		}
	}

	return plan, nil
}

// UsesIndex reports whether planning found an index variant eligible
// to serve this plan's sort, per §4.6 "Planning" step 6.
func (p Plan) UsesIndex() bool { return p.SelectedVariant != nil }

func selectVariant(idx *index.Index, variantName string, directives []index.SortDirective) (index.Variant, bool) {
	if variantName != "" {
		v, ok := idx.VariantByName(variantName)
		if !ok || !v.Matches(directives) {
			return index.Variant{}, false
		}
		return v, true
	}
	return idx.BestMatch(directives)
}

// ParseSortDirectives splits each entry of raw on commas (mirroring
// process.rs's flat_map(|s| s.split(','))) and parses "column[:asc|desc]",
// defaulting to ascending.
func ParseSortDirectives(raw []string) ([]index.SortDirective, error) {
	var out []index.SortDirective
	for _, token := range splitCommaLists(raw) {
		parts := strings.SplitN(token, ":", 2)
		column := strings.TrimSpace(parts[0])
		if column == "" {
			return nil, fmt.Errorf("sort directive is missing a column")
		}
		direction := index.Asc
		if len(parts) == 2 {
			dirToken := strings.ToLower(strings.TrimSpace(parts[1]))
			switch dirToken {
			case "", "asc":
				direction = index.Asc
			case "desc":
				direction = index.Desc
			default:
				return nil, fmt.Errorf("unknown sort direction %q", parts[1])
			}
		}
		out = append(out, index.SortDirective{Column: column, Direction: direction})
	}
	return out, nil
}

// splitCommaLists flattens a list of possibly comma-joined tokens into
// a flat, trimmed, non-empty token list, per process.rs's repeated
// `.flat_map(|s| s.split(',')).map(str::trim).filter(not empty)` idiom.
func splitCommaLists(raw []string) []string {
	var out []string
	for _, entry := range raw {
		for _, tok := range strings.Split(entry, ",") {
			tok = strings.TrimSpace(tok)
			if tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}

func buildOutputPlan(headers []string, s schema.Schema, selected, excluded []string, derived []expr.DerivedColumn, rowNumbers bool) (OutputPlan, error) {
	excludeSet := map[string]bool{}
	for _, c := range excluded {
		excludeSet[c] = true
	}

	columnsToUse := selected
	if len(columnsToUse) == 0 {
		columnsToUse = headers
	}

	var fields []OutputField
	var outHeaders []string

	if rowNumbers {
		fields = append(fields, OutputField{Kind: FieldRowNumber})
		outHeaders = append(outHeaders, "row_number")
	}

	for _, name := range columnsToUse {
		if excludeSet[name] {
			continue
		}
		idx, ok := lookupColumn(headers, s, name)
		if !ok {
			return OutputPlan{}, fmt.Errorf("requested column %q not found", name)
		}
		fields = append(fields, OutputField{Kind: FieldExistingColumn, ColumnIndex: idx})
		outputName := headers[idx]
		if idx < len(s.Columns) {
			outputName = s.Columns[idx].OutputName()
		}
		outHeaders = append(outHeaders, outputName)
	}

	for i, d := range derived {
		fields = append(fields, OutputField{Kind: FieldDerived, DerivedIndex: i})
		outHeaders = append(outHeaders, d.Name)
	}

	return OutputPlan{Headers: outHeaders, Fields: fields}, nil
}

// lookupColumn resolves a requested column name to its position,
// trying the schema's rename-then-original order first and falling
// back to a plain header match, matching the column-lookup order
// internal/expr uses for filters.
func lookupColumn(headers []string, s schema.Schema, name string) (int, bool) {
	if idx, ok := s.ColumnIndex(name); ok {
		return idx, true
	}
	for i, h := range headers {
		if h == name {
			return i, true
		}
	}
	return 0, false
}
