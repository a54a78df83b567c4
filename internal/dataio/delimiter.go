// Package dataio resolves delimiters and encodings and builds the
// reader/writer pair the process and index engines stream rows
// through. Grounded throughout on original_source/src/io_utils.rs.
package dataio

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	DefaultCSVDelimiter = ','
	DefaultTSVDelimiter = '\t'
)

// ResolveDelimiter maps a CLI delimiter token to a rune, per §6.1's
// alias table: "tab"/"\t", "comma"/",", "pipe"/"|", "semicolon"/";",
// or any single ASCII character.
func ResolveDelimiter(token string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "tab", "\t":
		return '\t', nil
	case "comma", ",":
		return ',', nil
	case "pipe", "|":
		return '|', nil
	case "semicolon", ";":
		return ';', nil
	}
	if len(token) == 1 && token[0] < 0x80 {
		return rune(token[0]), nil
	}
	return 0, fmt.Errorf("unknown delimiter %q", token)
}

// ResolveInputDelimiter applies the provided delimiter if one was
// given, otherwise auto-detects from the input path's extension
// (.tsv -> tab, everything else -> comma).
func ResolveInputDelimiter(path string, provided *rune) rune {
	if provided != nil {
		return *provided
	}
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return DefaultTSVDelimiter
	}
	return DefaultCSVDelimiter
}

// ResolveOutputDelimiter prefers an explicit delimiter, then the
// output path's extension, then falls back to the input delimiter.
func ResolveOutputDelimiter(path string, provided *rune, fallback rune) rune {
	if provided != nil {
		return *provided
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv":
		return DefaultTSVDelimiter
	case ".csv":
		return DefaultCSVDelimiter
	}
	return fallback
}

// IsDash reports whether path is the "-" stdin/stdout sentinel.
func IsDash(path string) bool { return path == "-" }
