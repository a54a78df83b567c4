package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"csveng/internal/dataio"
	"csveng/internal/schema"
)

type schemaInferFlags struct {
	input         string
	output        string
	sampleRows    int
	delimiter     string
	inputEncoding string
	assumeHeaders string
}

// schemaCmd groups schema-related subcommands; "schema infer" is the
// long form of the top-level "probe" alias registered in main.go.
func schemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Schema document operations",
	}
	cmd.AddCommand(schemaInferCmd())
	return cmd
}

// probeCmd registers the short top-level spelling of "schema infer",
// per §6.1's `probe|schema infer` invocation.
func probeCmd() *cobra.Command {
	cmd := schemaInferCommand()
	cmd.Use = "probe"
	return cmd
}

func schemaInferCmd() *cobra.Command {
	cmd := schemaInferCommand()
	cmd.Use = "infer"
	return cmd
}

func schemaInferCommand() *cobra.Command {
	flags := &schemaInferFlags{}
	cmd := &cobra.Command{
		Short: "Infer a schema document by sampling an input CSV",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSchemaInfer(flags)
		},
	}
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "Input CSV path, or - for stdin (required)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output schema path (required)")
	cmd.Flags().IntVar(&flags.sampleRows, "sample-rows", 0, "Maximum rows to sample, 0 for a full scan")
	cmd.Flags().StringVar(&flags.delimiter, "delimiter", "", "Field delimiter (name, alias, or single character)")
	cmd.Flags().StringVar(&flags.inputEncoding, "input-encoding", "", "Input character encoding (IANA label)")
	cmd.Flags().StringVar(&flags.assumeHeaders, "assume-headers", "true", "Whether the input's first row is a header row")
	return cmd
}

func runSchemaInfer(flags *schemaInferFlags) error {
	if flags.input == "" {
		return fmt.Errorf("--input is required")
	}
	if flags.output == "" {
		return fmt.Errorf("--output is required")
	}
	assumeHeaders, err := strconv.ParseBool(flags.assumeHeaders)
	if err != nil {
		return fmt.Errorf("--assume-headers must be true or false: %w", err)
	}

	var delimiter *rune
	if flags.delimiter != "" {
		d, err := dataio.ResolveDelimiter(flags.delimiter)
		if err != nil {
			return err
		}
		delimiter = &d
	}
	resolvedDelimiter := dataio.ResolveInputDelimiter(flags.input, delimiter)

	enc, err := dataio.ResolveEncoding(flags.inputEncoding)
	if err != nil {
		return err
	}

	src, err := dataio.OpenSource(flags.input, resolvedDelimiter, enc, assumeHeaders)
	if err != nil {
		return err
	}
	defer src.Close()

	headers := src.Headers()
	next := src.SchemaRowReader()
	if !assumeHeaders {
		headers, next, err = syntheticHeaderReader(next)
		if err != nil {
			return err
		}
	}

	opts := schema.InferOptions{SampleRows: flags.sampleRows}
	inferred, tally, err := schema.InferSchema(headers, next, opts)
	if err != nil {
		return err
	}
	applyPlaceholderTally(&inferred, tally, opts.Placeholder)

	if err := inferred.Validate(); err != nil {
		return err
	}
	inferred.HasHeaders = assumeHeaders

	return schema.Save(flags.output, inferred)
}

// syntheticHeaderReader peeks the first row to learn the column count
// (there is no header row to read it from), synthesizes "column1",
// "column2", ... names, and returns a reader that replays the peeked
// row before resuming next so no data is lost to the peek.
func syntheticHeaderReader(next func() ([]string, bool, error)) ([]string, func() ([]string, bool, error), error) {
	first, ok, err := next()
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, func() ([]string, bool, error) { return nil, false, nil }, nil
	}
	headers := make([]string, len(first))
	for i := range headers {
		headers[i] = fmt.Sprintf("column%d", i+1)
	}
	consumed := false
	wrapped := func() ([]string, bool, error) {
		if !consumed {
			consumed = true
			return first, true, nil
		}
		return next()
	}
	return headers, wrapped, nil
}

// applyPlaceholderTally records the policy's replacement set on every
// column where at least one placeholder token was observed, so the
// saved schema reproduces the same normalization on future runs.
func applyPlaceholderTally(s *schema.Schema, tally *schema.PlaceholderTally, policy schema.PlaceholderPolicy) {
	for i := range s.Columns {
		if tally.Counts[i] > 0 {
			s.Columns[i].Replacements = policy.ApplyPlaceholderReplacements()
		}
	}
}
