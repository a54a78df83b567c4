package dataio

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// ResolveEncoding looks up an IANA encoding label (e.g. "utf-8",
// "windows-1252", "shift_jis"), defaulting to UTF-8 when label is
// empty. Grounded on io_utils.rs's resolve_encoding, which defers to
// encoding_rs::Encoding::for_label; ianaindex is x/text's equivalent
// registry, already present pack-wide via the teacher's indirect
// golang.org/x/text dependency.
func ResolveEncoding(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return encoding.Nop, nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown encoding %q", label)
	}
	return enc, nil
}
