package process

import (
	"fmt"
	"os"
	"text/tabwriter"
)

// TableRenderer renders accumulated rows for --preview/--table mode.
// The spec treats the ASCII table renderer as an external collaborator
// (§1 "Out of scope") — this package only needs the contract; RenderTable
// below is a minimal stdlib default, not the full renderer itself.
type TableRenderer interface {
	Render(headers []string, rows [][]string) error
}

// defaultTableRenderer writes an aligned, tab-separated table to
// stdout via text/tabwriter, grounded on the teacher's output.Formatter
// factory pattern (one small interface, one process-local default
// implementation) rather than any specific table library — no example
// repo in the pack vendors an ASCII-table-drawing dependency, and
// tabwriter is the stdlib's own answer to this exact problem.
type defaultTableRenderer struct{}

func (defaultTableRenderer) Render(headers []string, rows [][]string) error {
	w := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
	writeRow := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, f)
		}
		fmt.Fprintln(w)
	}
	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
	return w.Flush()
}

// RenderTable renders through the default renderer. Kept as a package
// function (rather than requiring callers to construct a renderer) since
// §1 scopes the renderer itself out — callers that need a different
// renderer can call TableRenderer.Render directly with their own type.
func RenderTable(headers []string, rows [][]string) error {
	return defaultTableRenderer{}.Render(headers, rows)
}
