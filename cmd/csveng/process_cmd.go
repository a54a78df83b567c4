package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"csveng/internal/dataio"
	"csveng/internal/process"
)

type processFlags struct {
	input           string
	output          string
	schemaPath      string
	indexPath       string
	indexVariant    string
	sort            []string
	columns         []string
	excludeColumns  []string
	derive          []string
	filter          []string
	filterExpr      []string
	rowNumbers      bool
	limit           int
	delimiter       string
	outputDelimiter string
	inputEncoding   string
	outputEncoding  string
	booleanFormat   string
	preview         bool
	table           bool
	applyMappings   bool
	skipMappings    bool
}

func processCmd() *cobra.Command {
	flags := &processFlags{}
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Run the projection/filter/derive/sort/limit pipeline over a CSV",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runProcess(flags)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "Input CSV path, or - for stdin (required)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output path, or - for stdout")
	cmd.Flags().StringVar(&flags.schemaPath, "schema", "", "Schema document path")
	cmd.Flags().StringVar(&flags.indexPath, "index", "", "Index file path to accelerate a matching sort")
	cmd.Flags().StringVar(&flags.indexVariant, "index-variant", "", "Require this named index variant instead of best-match selection")
	cmd.Flags().StringArrayVar(&flags.sort, "sort", nil, "\"column[:asc|desc]\", repeatable or comma-separated")
	cmd.Flags().StringArrayVar(&flags.columns, "columns", nil, "Columns to project, repeatable or comma-separated")
	cmd.Flags().StringArrayVar(&flags.excludeColumns, "exclude-columns", nil, "Columns to drop from the projection")
	cmd.Flags().StringArrayVar(&flags.derive, "derive", nil, "\"name[:type]=expression\", repeatable")
	cmd.Flags().StringArrayVar(&flags.filter, "filter", nil, "\"column OP value\" structured filter condition, repeatable (AND'd)")
	cmd.Flags().StringArrayVar(&flags.filterExpr, "filter-expr", nil, "General boolean expression filter, repeatable (AND'd)")
	cmd.Flags().BoolVar(&flags.rowNumbers, "row-numbers", false, "Prepend a 1-based row_number column")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "Maximum rows to emit, 0 for no limit")
	cmd.Flags().StringVar(&flags.delimiter, "delimiter", "", "Input field delimiter (name, alias, or single character)")
	cmd.Flags().StringVar(&flags.outputDelimiter, "output-delimiter", "", "Output field delimiter, defaults to the input delimiter")
	cmd.Flags().StringVar(&flags.inputEncoding, "input-encoding", "", "Input character encoding (IANA label)")
	cmd.Flags().StringVar(&flags.outputEncoding, "output-encoding", "", "Output character encoding (IANA label)")
	cmd.Flags().StringVar(&flags.booleanFormat, "boolean-format", "", "original|true-false|one-zero|yes-no")
	cmd.Flags().BoolVar(&flags.preview, "preview", false, "Render output as an ASCII table instead of writing CSV")
	cmd.Flags().BoolVar(&flags.table, "table", false, "Alias for --preview")
	cmd.Flags().BoolVar(&flags.applyMappings, "apply-mappings", false, "Apply schema datatype_mappings (default)")
	cmd.Flags().BoolVar(&flags.skipMappings, "skip-mappings", false, "Skip schema datatype_mappings, applying only replace entries")

	return cmd
}

func runProcess(flags *processFlags) error {
	if flags.input == "" {
		return fmt.Errorf("--input is required")
	}
	if flags.applyMappings && flags.skipMappings {
		return fmt.Errorf("--apply-mappings and --skip-mappings are mutually exclusive")
	}

	var delimiter *rune
	if flags.delimiter != "" {
		d, err := dataio.ResolveDelimiter(flags.delimiter)
		if err != nil {
			return err
		}
		delimiter = &d
	}
	var outputDelimiter *rune
	if flags.outputDelimiter != "" {
		d, err := dataio.ResolveDelimiter(flags.outputDelimiter)
		if err != nil {
			return err
		}
		outputDelimiter = &d
	}

	opts := process.Options{
		Input:           flags.input,
		Output:          flags.output,
		SchemaPath:      flags.schemaPath,
		IndexPath:       flags.indexPath,
		IndexVariant:    flags.indexVariant,
		Sort:            flags.sort,
		Columns:         flags.columns,
		ExcludeColumns:  flags.excludeColumns,
		Derive:          flags.derive,
		Filter:          flags.filter,
		FilterExpr:      flags.filterExpr,
		RowNumbers:      flags.rowNumbers,
		Limit:           flags.limit,
		Delimiter:       delimiter,
		OutputDelimiter: outputDelimiter,
		InputEncoding:   flags.inputEncoding,
		OutputEncoding:  flags.outputEncoding,
		BooleanFormat:   flags.booleanFormat,
		Preview:         flags.preview,
		Table:           flags.table,
		ApplyMappings:   flags.applyMappings,
		SkipMappings:    flags.skipMappings,
	}

	eng, err := process.NewEngine(opts)
	if err != nil {
		return err
	}
	defer eng.Close()

	return eng.Run()
}
