package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"csveng/internal/dataio"
	"csveng/internal/index"
	"csveng/internal/schema"
)

type indexFlags struct {
	input         string
	output        string
	columns       []string
	specs         []string
	covering      []string
	schemaPath    string
	limit         int
	delimiter     string
	inputEncoding string
}

func indexCmd() *cobra.Command {
	flags := &indexFlags{}
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build a covering index file from an input CSV",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runIndex(flags)
		},
	}
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "Input CSV path (required)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output index path (required)")
	cmd.Flags().StringSliceVarP(&flags.columns, "columns", "C", nil, "Plain ascending column set, e.g. -C id,created_at")
	cmd.Flags().StringArrayVar(&flags.specs, "spec", nil, "\"[name=]col[:asc|desc],...\" index specification, repeatable")
	cmd.Flags().StringArrayVar(&flags.covering, "covering", nil, "\"[name=]col[:asc|desc|asc|desc],...\" covering-prefix specification, repeatable")
	cmd.Flags().StringVar(&flags.schemaPath, "schema", "", "Schema document to type-check index columns against")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "Maximum rows to index, 0 for no limit")
	cmd.Flags().StringVar(&flags.delimiter, "delimiter", "", "Field delimiter (name, alias, or single character)")
	cmd.Flags().StringVar(&flags.inputEncoding, "input-encoding", "", "Input character encoding (IANA label)")
	return cmd
}

func runIndex(flags *indexFlags) error {
	if flags.input == "" {
		return fmt.Errorf("--input is required")
	}
	if flags.output == "" {
		return fmt.Errorf("--output is required")
	}

	definitions, err := buildDefinitions(flags)
	if err != nil {
		return err
	}
	if len(definitions) == 0 {
		return fmt.Errorf("specify at least one of -C/--columns, --spec, or --covering")
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

	src, err := dataio.OpenSource(flags.input, resolvedDelimiter, enc, true)
	if err != nil {
		return err
	}
	defer src.Close()

	var s *schema.Schema
	if flags.schemaPath != "" {
		loaded, err := schema.Load(flags.schemaPath)
		if err != nil {
			return err
		}
		if err := loaded.ValidateHeaders(src.Headers()); err != nil {
			return err
		}
		s = &loaded
	}

	idx, err := index.Build(src.Headers(), definitions, s, flags.limit, src.IndexRowReader())
	if err != nil {
		return err
	}

	return index.Save(flags.output, idx)
}

// buildDefinitions collects every -C/--spec/--covering occurrence into
// a flat definition list, in the order the flags were given.
func buildDefinitions(flags *indexFlags) ([]index.Definition, error) {
	var out []index.Definition

	if len(flags.columns) > 0 {
		def, err := index.FromColumns(flags.columns)
		if err != nil {
			return nil, err
		}
		out = append(out, def)
	}

	for _, spec := range flags.specs {
		def, err := index.ParseDefinition(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, def)
	}

	for _, spec := range flags.covering {
		defs, err := index.ExpandComboSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, defs...)
	}

	return out, nil
}
