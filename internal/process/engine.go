package process

import (
	"fmt"
	"io"
	"sort"

	"csveng/internal/dataio"
	"csveng/internal/expr"
	"csveng/internal/index"
	"csveng/internal/schema"
	"csveng/internal/value"
)

// Engine runs one process invocation end to end: load schema/index,
// plan, pick a strategy, stream rows through it, and write output.
// Grounded on process.rs's top-level execute function, restructured
// around the teacher's Options-struct-plus-staged-methods idiom
// (internal/apply.Applier).
type Engine struct {
	opts Options
	s    schema.Schema
	idx  *index.Index
	src  *dataio.Source
	plan Plan

	functions map[string]expr.Function
}

// NewEngine opens the input source, loads (or infers a default) schema
// and an optional index, and computes the plan — everything Run needs
// before it can pick a strategy.
func NewEngine(opts Options) (*Engine, error) {
	if (opts.Preview || opts.Table) && opts.Output != "" {
		return nil, fmt.Errorf("--preview/--table cannot be combined with --output")
	}
	if dataio.IsDash(opts.Input) && opts.SchemaPath == "" {
		return nil, fmt.Errorf("reading from stdin requires an explicit --schema, since stdin can't be rescanned to infer one")
	}

	inputDelimiter := dataio.ResolveInputDelimiter(opts.Input, opts.Delimiter)
	inputEncoding, err := dataio.ResolveEncoding(opts.InputEncoding)
	if err != nil {
		return nil, err
	}

	src, err := dataio.OpenSource(opts.Input, inputDelimiter, inputEncoding, true)
	if err != nil {
		return nil, err
	}
	headers := src.Headers()

	var s schema.Schema
	if opts.SchemaPath != "" {
		s, err = schema.Load(opts.SchemaPath)
		if err != nil {
			src.Close()
			return nil, err
		}
		if err := s.ValidateHeaders(headers); err != nil {
			src.Close()
			return nil, err
		}
	} else {
		s = schema.FromHeaders(headers)
	}
	if err := s.Validate(); err != nil {
		src.Close()
		return nil, err
	}

	var idx *index.Index
	if opts.IndexPath != "" {
		idx, err = index.Load(opts.IndexPath)
		if err != nil {
			src.Close()
			return nil, err
		}
	}

	plan, err := Build(opts, s, idx, headers)
	if err != nil {
		src.Close()
		return nil, err
	}

	return &Engine{
		opts:      opts,
		s:         s,
		idx:       idx,
		src:       src,
		plan:      plan,
		functions: expr.DefaultBuiltins(),
	}, nil
}

func (e *Engine) Close() error { return e.src.Close() }

// Strategy identifies which of §4.6's three passes a run uses.
type Strategy int

const (
	StrategyStreaming Strategy = iota
	StrategyIndexed
	StrategyInMemory
)

// SelectStrategy implements §4.6 "Strategy selection".
func (e *Engine) SelectStrategy() Strategy {
	switch {
	case len(e.plan.SortDirectives) == 0:
		return StrategyStreaming
	case e.plan.UsesIndex():
		return StrategyIndexed
	default:
		return StrategyInMemory
	}
}

// Run executes the selected strategy end to end, writing output
// (either as CSV through dataio, or accumulated for preview rendering).
func (e *Engine) Run() error {
	var rows [][]string
	var sink func(row []string) error
	var headerSink func() error

	preview := e.opts.Preview || e.opts.Table
	var out io.WriteCloser
	var rw *dataio.RecordWriter

	if preview {
		headerSink = func() error { return nil }
		sink = func(row []string) error {
			rows = append(rows, row)
			return nil
		}
	} else {
		outputPath := e.opts.Output
		if outputPath == "" {
			outputPath = "-"
		}
		outputDelimiter := dataio.ResolveOutputDelimiter(outputPath, e.opts.OutputDelimiter, dataio.ResolveInputDelimiter(e.opts.Input, e.opts.Delimiter))
		outputEncoding, err := dataio.ResolveEncoding(e.opts.OutputEncoding)
		if err != nil {
			return err
		}
		w, err := dataio.OpenOutput(outputPath)
		if err != nil {
			return err
		}
		out = dataio.EncodingWriter(w, outputEncoding)
		rw = dataio.NewRecordWriter(out, outputDelimiter)
		headerSink = func() error { return rw.WriteRecord(e.plan.Output.Headers) }
		sink = func(row []string) error { return rw.WriteRecord(row) }
	}

	if err := headerSink(); err != nil {
		return err
	}

	var runErr error
	switch e.SelectStrategy() {
	case StrategyStreaming:
		runErr = e.runStreaming(sink)
	case StrategyIndexed:
		runErr = e.runIndexed(sink)
	default:
		runErr = e.runInMemory(sink)
	}
	if runErr != nil {
		if out != nil {
			out.Close()
		}
		return runErr
	}

	if rw != nil {
		if err := rw.Flush(); err != nil {
			return fmt.Errorf("flushing output: %w", err)
		}
	}
	if out != nil {
		if err := out.Close(); err != nil {
			return fmt.Errorf("closing output: %w", err)
		}
	}

	if preview {
		return RenderTable(e.plan.Output.Headers, rows)
	}
	return nil
}

// runStreaming implements §4.6 "Strategy selection"'s streaming
// in-order pass: read, transform, filter, emit until limit.
func (e *Engine) runStreaming(sink func(row []string) error) error {
	emitted := 0
	rowNum := 1
	return e.src.Scan(func(_ uint64, raw []string) (bool, error) {
		rowNum++
		keep, transformed, typed, err := e.transformAndFilter(raw, rowNum, rowNum-1)
		if err != nil {
			return false, err
		}
		if !keep {
			return false, nil
		}
		emitted++
		out, err := e.emitRow(transformed, typed, emitted)
		if err != nil {
			return false, err
		}
		if err := sink(out); err != nil {
			return false, err
		}
		return e.opts.Limit > 0 && emitted >= e.opts.Limit, nil
	})
}

// runIndexed implements §4.6 "Indexed pass": replay the chosen
// variant's ordered_offsets, seeking and reading one record at a time.
func (e *Engine) runIndexed(sink func(row []string) error) error {
	emitted := 0
	for ordinal, offset := range e.plan.SelectedVariant.OrderedOffsets() {
		if e.opts.Limit > 0 && emitted >= e.opts.Limit {
			break
		}
		raw, err := e.src.ReadAt(offset)
		if err != nil {
			return err
		}
		keep, transformed, typed, err := e.transformAndFilter(raw, ordinal+2, ordinal+1)
		if err != nil {
			return err
		}
		if !keep {
			continue
		}
		emitted++
		out, err := e.emitRow(transformed, typed, emitted)
		if err != nil {
			return err
		}
		if err := sink(out); err != nil {
			return err
		}
	}
	return nil
}

type rowData struct {
	raw     []string
	typed   []value.ComparableValue
	ordinal int
}

// runInMemory implements §4.6 "In-memory pass": read everything,
// filter on the fly, sort the retained set, then emit up to limit.
func (e *Engine) runInMemory(sink func(row []string) error) error {
	var rows []rowData
	ordinal := 0
	rowNum := 1
	err := e.src.Scan(func(_ uint64, raw []string) (bool, error) {
		rowNum++
		keep, transformed, typed, err := e.transformAndFilter(raw, rowNum, ordinal+1)
		if err != nil {
			return false, err
		}
		if keep {
			rows = append(rows, rowData{raw: transformed, typed: typed, ordinal: ordinal})
		}
		ordinal++
		return false, nil
	})
	if err != nil {
		return err
	}

	if err := e.sortRows(rows); err != nil {
		return err
	}

	emitted := 0
	for _, row := range rows {
		if e.opts.Limit > 0 && emitted >= e.opts.Limit {
			break
		}
		emitted++
		out, err := e.emitRow(row.raw, row.typed, emitted)
		if err != nil {
			return err
		}
		if err := sink(out); err != nil {
			return err
		}
	}
	return nil
}

// sortRows implements §4.6 "Sort comparator": compare columns in
// directive order under ComparableValue semantics, apply direction,
// fall through on equality, and break remaining ties by ordinal.
// Grounded on process.rs's compare_rows.
func (e *Engine) sortRows(rows []rowData) error {
	indices := make([]int, len(e.plan.SortDirectives))
	for i, d := range e.plan.SortDirectives {
		idx, ok := lookupColumn(e.src.Headers(), e.s, d.Column)
		if !ok {
			return fmt.Errorf("sort column %q not found", d.Column)
		}
		indices[i] = idx
	}

	sort.SliceStable(rows, func(a, b int) bool {
		left, right := rows[a], rows[b]
		for i, d := range e.plan.SortDirectives {
			col := indices[i]
			cmp := left.typed[col].Compare(right.typed[col])
			if d.Direction == index.Desc {
				cmp = -cmp
			}
			if cmp != 0 {
				return cmp < 0
			}
		}
		return left.ordinal < right.ordinal
	})
	return nil
}

// transformAndFilter applies the schema's replacement/mapping pipeline,
// parses the result into typed cells, and evaluates every filter
// condition and filter expression (all AND'd together). filterRowNumber
// is the 1-based position in the underlying scan, used as the
// expression context's row_number while filtering — distinct from the
// emitted sequence number used for output/derive, since the emitted
// count isn't known until after a row survives filtering.
func (e *Engine) transformAndFilter(raw []string, schemaRowNum int, filterRowNumber int) (bool, []string, []value.ComparableValue, error) {
	transformed, err := e.transformRow(raw, schemaRowNum)
	if err != nil {
		return false, nil, nil, err
	}
	typed, err := schema.ParseRow(e.s, transformed, schemaRowNum)
	if err != nil {
		return false, nil, nil, err
	}

	if len(e.plan.Filters) > 0 {
		ok, err := expr.EvaluateConditions(e.plan.Filters, e.s, e.src.Headers(), transformed, typed)
		if err != nil {
			return false, nil, nil, err
		}
		if !ok {
			return false, nil, nil, nil
		}
	}

	for _, fe := range e.plan.FilterExprs {
		ctx := expr.BuildContext(e.s.Headers(), typed, int64(filterRowNumber), e.functions)
		result, err := expr.Eval(fe, ctx)
		if err != nil {
			return false, nil, nil, fmt.Errorf("evaluating filter expression %q: %w", fe, err)
		}
		if !result.Truthy() {
			return false, nil, nil, nil
		}
	}

	return true, transformed, typed, nil
}

// transformRow runs the replacement+mapping pipeline, or replacement
// only when --skip-mappings disabled the datatype-mapping stage.
func (e *Engine) transformRow(raw []string, rowNum int) ([]string, error) {
	if !e.opts.SkipMappings {
		return schema.TransformRow(e.s, raw, rowNum)
	}
	if len(raw) != len(e.s.Columns) {
		return nil, fmt.Errorf("row %d: expected %d column(s) but found %d", rowNum, len(e.s.Columns), len(raw))
	}
	out := make([]string, len(raw))
	for i, col := range e.s.Columns {
		out[i] = schema.ApplyReplacements(col, raw[i])
	}
	return out, nil
}

// emitRow renders one output row through the output plan, applying
// boolean-format rendering to existing-column fields and deferring to
// DerivedColumn.Evaluate for derived fields. rowNumber is the 1-based
// emitted sequence number, used both for the row_number field and as
// the expression context's row_number for derived columns.
func (e *Engine) emitRow(raw []string, typed []value.ComparableValue, rowNumber int) ([]string, error) {
	out := make([]string, len(e.plan.Output.Fields))
	for i, field := range e.plan.Output.Fields {
		switch field.Kind {
		case FieldRowNumber:
			out[i] = fmt.Sprintf("%d", rowNumber)
		case FieldExistingColumn:
			var cell string
			if field.ColumnIndex < len(raw) {
				cell = raw[field.ColumnIndex]
			}
			if field.ColumnIndex < len(e.s.Columns) && field.ColumnIndex < len(typed) {
				cell = FormatBooleanCell(e.plan.BooleanFormat, e.s.Columns[field.ColumnIndex], cell, typed[field.ColumnIndex])
			}
			out[i] = cell
		case FieldDerived:
			d := e.plan.Derived[field.DerivedIndex]
			rendered, err := d.Evaluate(e.s.Headers(), typed, int64(rowNumber), e.functions)
			if err != nil {
				return nil, err
			}
			out[i] = rendered
		}
	}
	return out, nil
}
