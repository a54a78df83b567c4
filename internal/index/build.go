package index

import (
	"fmt"

	"csveng/internal/schema"
	"csveng/internal/value"
)

// SortDirective is one "column, direction" request a query makes, used
// to look up the best covering index variant for it.
type SortDirective struct {
	Column    string
	Direction SortDirection
}

// RowReader pulls one already-decoded row at a time along with the
// byte offset its record started at in the source file, leaving file
// decoding (delimiter/encoding resolution) to internal/dataio.
type RowReader func() (offset uint64, row []string, ok bool, err error)

// Index is the built, persistable covering index set for one CSV file:
// every requested variant, keyed and sorted, plus the header list and
// row count observed while building. Grounded on index.rs's CsvIndex.
type Index struct {
	Version  uint32
	Headers  []string
	Variants []Variant
	RowCount int
}

// Build scans next until exhaustion (or limit rows, if limit > 0),
// feeding every row into every requested variant builder at once so
// the file is read exactly once regardless of how many variants are
// requested. Grounded on index.rs's CsvIndex::build.
func Build(headers []string, definitions []Definition, s *schema.Schema, limit int, next RowReader) (*Index, error) {
	if len(definitions) == 0 {
		return nil, fmt.Errorf("specify at least one column set to build an index")
	}

	columnType := func(name string) value.Type {
		if s != nil {
			if i, ok := s.ColumnIndex(name); ok {
				return s.Columns[i].Datatype
			}
		}
		return value.Type{Kind: value.KindString}
	}

	builders := make([]*variantBuilder, len(definitions))
	for i, def := range definitions {
		b, err := newVariantBuilder(def, headers, columnType)
		if err != nil {
			return nil, err
		}
		builders[i] = b
	}

	processed := 0
	for limit <= 0 || processed < limit {
		offset, row, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		for _, b := range builders {
			if err := b.addRow(row, offset); err != nil {
				return nil, err
			}
		}
		processed++
	}

	variants := make([]Variant, len(builders))
	for i, b := range builders {
		variants[i] = b.finish()
	}

	return &Index{
		Version:  CurrentVersion,
		Headers:  headers,
		Variants: variants,
		RowCount: processed,
	}, nil
}

// VariantByName returns the variant declared with the given name, if any.
func (idx *Index) VariantByName(name string) (Variant, bool) {
	for _, v := range idx.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// BestMatch returns the variant covering the longest prefix of
// directives, among variants that match at all. Grounded on
// index.rs's CsvIndex::best_match.
func (idx *Index) BestMatch(directives []SortDirective) (Variant, bool) {
	var best Variant
	found := false
	for _, v := range idx.Variants {
		if !v.Matches(directives) {
			continue
		}
		if !found || len(v.Columns) > len(best.Columns) {
			best = v
			found = true
		}
	}
	return best, found
}
