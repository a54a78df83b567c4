package index

import (
	"fmt"
	"sort"
	"strings"

	"csveng/internal/value"
)

// DirectionalComparableValue pairs a cell's comparable value with the
// sort direction its column was indexed under, so two key components
// can be ordered consistently regardless of ascending/descending.
// Grounded on index.rs's DirectionalComparableValue.
type DirectionalComparableValue struct {
	Value     value.ComparableValue
	Direction SortDirection
}

func (d DirectionalComparableValue) compare(other DirectionalComparableValue) int {
	cmp := d.Value.Compare(other.Value)
	if d.Direction == Desc {
		return -cmp
	}
	return cmp
}

// keyEntry groups every row offset that shares one index key, in the
// order each row was encountered.
type keyEntry struct {
	Key     []DirectionalComparableValue
	Offsets []uint64
}

func compareKeys(a, b []DirectionalComparableValue) int {
	for i := range a {
		if cmp := a[i].compare(b[i]); cmp != 0 {
			return cmp
		}
	}
	return 0
}

// Variant is one built index: a column/direction combination, the
// typed column kinds used to parse cells while building it, and every
// matching row's byte offset in key-sorted order. Grounded on
// index.rs's IndexVariant; the key-sorted groups collapse to a flat
// Offsets list once built, since value.Value's tagged-union
// representation doesn't round-trip through gob (unexported fields)
// and nothing downstream needs to recover the key after sorting.
type Variant struct {
	Columns     []string
	Directions  []SortDirection
	ColumnTypes []value.Type
	Offsets     []uint64
	Name        string
}

// Matches reports whether this variant can serve a sort requested as
// (column, direction) pairs: it must cover a prefix of the requested
// directives, in the same order and the same per-column direction.
func (v Variant) Matches(directives []SortDirective) bool {
	if len(directives) < len(v.Columns) {
		return false
	}
	for i := range v.Columns {
		if v.Columns[i] != directives[i].Column || v.Directions[i] != directives[i].Direction {
			return false
		}
	}
	return true
}

// OrderedOffsets yields every row's byte offset in the variant's key
// order — the order internal/process/engine.go streams from when using this variant to
// satisfy a sort.
func (v Variant) OrderedOffsets() []uint64 {
	return v.Offsets
}

// Describe renders a one-line human summary, e.g. "top -> col1:desc, col2:asc".
func (v Variant) Describe() string {
	parts := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		parts[i] = c + ":" + v.Directions[i].String()
	}
	body := strings.Join(parts, ", ")
	if v.Name == "" {
		return body
	}
	return v.Name + " -> " + body
}

// variantBuilder accumulates rows into key groups while a CSV is being
// scanned, then sorts the groups once scanning finishes.
type variantBuilder struct {
	columns       []string
	directions    []SortDirection
	columnIndices []int
	columnTypes   []value.Type
	name          string
	groups        map[string]*keyEntry
	order         []string
}

func newVariantBuilder(def Definition, headers []string, columnType func(name string) value.Type) (*variantBuilder, error) {
	if len(def.Columns) != len(def.Directions) {
		return nil, fmt.Errorf("column count and direction count mismatch for index specification")
	}
	indices, err := lookupIndices(headers, def.Columns)
	if err != nil {
		return nil, err
	}
	types := make([]value.Type, len(def.Columns))
	for i, name := range def.Columns {
		types[i] = columnType(name)
	}
	return &variantBuilder{
		columns:       def.Columns,
		directions:    def.Directions,
		columnIndices: indices,
		columnTypes:   types,
		name:          def.Name,
		groups:        map[string]*keyEntry{},
	}, nil
}

func (b *variantBuilder) addRow(row []string, offset uint64) error {
	key := make([]DirectionalComparableValue, len(b.columnIndices))
	for i, colIdx := range b.columnIndices {
		var cv value.ComparableValue
		if colIdx < len(row) && row[colIdx] != "" {
			parsed, present, err := value.ParseTypedValue(row[colIdx], b.columnTypes[i])
			if err != nil {
				return err
			}
			if present {
				cv = value.Present(parsed)
			}
		}
		key[i] = DirectionalComparableValue{Value: cv, Direction: b.directions[i]}
	}

	keyStr := keyString(key)
	entry, ok := b.groups[keyStr]
	if !ok {
		entry = &keyEntry{Key: key}
		b.groups[keyStr] = entry
		b.order = append(b.order, keyStr)
	}
	entry.Offsets = append(entry.Offsets, offset)
	return nil
}

func keyString(key []DirectionalComparableValue) string {
	parts := make([]string, len(key))
	for i, k := range key {
		parts[i] = k.Value.String()
	}
	return strings.Join(parts, "\x1f")
}

func (b *variantBuilder) finish() Variant {
	entries := make([]keyEntry, 0, len(b.groups))
	for _, keyStr := range b.order {
		entries = append(entries, *b.groups[keyStr])
	}
	sort.Slice(entries, func(i, j int) bool {
		return compareKeys(entries[i].Key, entries[j].Key) < 0
	})
	offsets := make([]uint64, 0, len(entries))
	for _, e := range entries {
		offsets = append(offsets, e.Offsets...)
	}
	return Variant{
		Columns:     b.columns,
		Directions:  b.directions,
		ColumnTypes: b.columnTypes,
		Offsets:     offsets,
		Name:        b.name,
	}
}

func lookupIndices(headers []string, columns []string) ([]int, error) {
	out := make([]int, len(columns))
	for i, col := range columns {
		idx := -1
		for j, h := range headers {
			if h == col {
				idx = j
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("column %q not found in CSV headers", col)
		}
		out[i] = idx
	}
	return out, nil
}
