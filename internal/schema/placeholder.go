package schema

import "strings"

// PlaceholderMode selects how recognized placeholder tokens are handled
// once schema inference has summarized them, per §4.1.1.
type PlaceholderMode int

const (
	// PlaceholderLeave keeps placeholder tokens untouched; they parse
	// (or fail to parse) as any other cell would.
	PlaceholderLeave PlaceholderMode = iota
	// PlaceholderReplaceEmpty turns every placeholder occurrence into
	// an empty cell (Absent after parsing).
	PlaceholderReplaceEmpty
	// PlaceholderFillWith turns every placeholder occurrence into a
	// fixed filler string.
	PlaceholderFillWith
)

// PlaceholderPolicy configures how the placeholder token set is
// recognized and, when applied, what they become.
type PlaceholderPolicy struct {
	Mode   PlaceholderMode
	Filler string

	// Tokens is the recognized placeholder set, matched
	// case-insensitively. The zero value uses DefaultPlaceholderTokens.
	Tokens []string
}

// DefaultPlaceholderTokens is the built-in placeholder set §4.1.1 names.
var DefaultPlaceholderTokens = []string{"NA", "N/A", "#N/A", "null", "NULL"}

func (p PlaceholderPolicy) tokens() []string {
	if len(p.Tokens) == 0 {
		return DefaultPlaceholderTokens
	}
	return p.Tokens
}

// IsPlaceholder reports whether raw matches the policy's recognized
// placeholder set, case-insensitively.
func (p PlaceholderPolicy) IsPlaceholder(raw string) bool {
	for _, tok := range p.tokens() {
		if strings.EqualFold(raw, tok) {
			return true
		}
	}
	return false
}

// ApplyPlaceholderReplacements expands the policy into concrete
// Replacement entries: one (token -> "") per recognized token for
// ReplaceEmpty, one (token -> Filler) for FillWith, and none for Leave.
func (p PlaceholderPolicy) ApplyPlaceholderReplacements() []Replacement {
	switch p.Mode {
	case PlaceholderReplaceEmpty:
		out := make([]Replacement, 0, len(p.tokens()))
		for _, tok := range p.tokens() {
			out = append(out, Replacement{From: tok, To: ""})
		}
		return out
	case PlaceholderFillWith:
		out := make([]Replacement, 0, len(p.tokens()))
		for _, tok := range p.tokens() {
			out = append(out, Replacement{From: tok, To: p.Filler})
		}
		return out
	default:
		return nil
	}
}

// PlaceholderTally counts placeholder occurrences observed per column
// during inference, keyed by column index.
type PlaceholderTally struct {
	Counts map[int]int
}

func NewPlaceholderTally() *PlaceholderTally {
	return &PlaceholderTally{Counts: map[int]int{}}
}

func (t *PlaceholderTally) Record(columnIndex int) {
	t.Counts[columnIndex]++
}
