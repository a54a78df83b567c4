package index

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"csveng/internal/value"
)

// CurrentVersion is written into every index file this engine
// produces. Grounded on index.rs's INDEX_VERSION, bumped from the
// original's 2 since the wire representation (gob, not bincode) and
// the per-variant layout (a flat, key-ordered offset list, not a
// literal BTreeMap) changed.
const CurrentVersion uint32 = 3

// legacyIndex is the pre-version-3 shape: a single, unnamed, all-
// ascending variant, matching what original_source's LegacyCsvIndex
// upgrades from. Encountered only when reading an index this engine
// itself wrote before the variant list was introduced into the gob
// envelope; kept so an older index file still loads.
type legacyIndex struct {
	Version     uint32
	Headers     []string
	Columns     []string
	ColumnTypes []string
	Entries     []legacyKeyEntry
}

type legacyKeyEntry struct {
	Key     []string
	Offsets []uint64
}

// Save writes idx to path as a gob-encoded envelope.
func Save(path string, idx *Index) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(idx); err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing index file %s: %w", path, err)
	}
	return nil
}

// legacyVersion is the only version this engine knows how to upgrade
// from; anything else is rejected outright.
const legacyVersion uint32 = 2

// versionProbe decodes just enough of the envelope to branch on its
// version, since a legacy envelope's Version field shares the same
// name and type as the current one.
type versionProbe struct {
	Version uint32
}

// Load reads an index file, upgrading a legacy single-variant envelope
// if the file predates the current version.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening index file %s: %w", path, err)
	}

	var probe versionProbe
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&probe); err != nil {
		return nil, fmt.Errorf("reading index file %s: %w", path, err)
	}

	switch probe.Version {
	case CurrentVersion:
		var idx Index
		if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&idx); err != nil {
			return nil, fmt.Errorf("decoding index file %s: %w", path, err)
		}
		return &idx, nil
	case legacyVersion:
		var legacy legacyIndex
		if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&legacy); err != nil {
			return nil, fmt.Errorf("reading legacy index file format: %w", err)
		}
		return upgradeLegacy(legacy), nil
	default:
		return nil, fmt.Errorf("unsupported index version %d (expected %d)", probe.Version, CurrentVersion)
	}
}

func upgradeLegacy(legacy legacyIndex) *Index {
	// Legacy entries were already written in key-sorted order; an
	// upgrade only needs to flatten them, not re-sort.
	var offsets []uint64
	for _, e := range legacy.Entries {
		offsets = append(offsets, e.Offsets...)
	}

	columnTypes := make([]value.Type, len(legacy.ColumnTypes))
	for i, token := range legacy.ColumnTypes {
		t, err := value.ParseType(token)
		if err != nil {
			t = value.Type{Kind: value.KindString}
		}
		columnTypes[i] = t
	}

	return &Index{
		Version: CurrentVersion,
		Headers: legacy.Headers,
		Variants: []Variant{{
			Columns:     legacy.Columns,
			Directions:  make([]SortDirection, len(legacy.Columns)),
			ColumnTypes: columnTypes,
			Offsets:     offsets,
		}},
		RowCount: len(offsets),
	}
}
