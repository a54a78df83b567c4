package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
)

// Open returns a reader for path honoring the "-" stdin sentinel. The
// streaming and in-memory passes accept any reader opened this way;
// only the indexed pass needs OpenSeekable.
func Open(path string) (io.ReadCloser, error) {
	if IsDash(path) {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file %s: %w", path, err)
	}
	return f, nil
}

// OpenSeekable opens path for direct byte-offset seeking, required by
// the index build and indexed process pass; "-" (stdin) can't seek.
func OpenSeekable(path string) (*os.File, error) {
	if IsDash(path) {
		return nil, fmt.Errorf("input must be a seekable file, not stdin, for this operation")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file %s: %w", path, err)
	}
	return f, nil
}

// NewCSVReader configures a csv.Reader over raw, un-decoded bytes:
// fields are decoded individually afterward via DecodeRecord, mirroring
// io_utils.rs's ByteRecord + decode_record split, so a record's
// InputOffset() stays anchored to byte positions in the source file
// regardless of what encoding its fields are declared in.
func NewCSVReader(r io.Reader, delimiter rune, expectedFields int) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.LazyQuotes = false
	cr.ReuseRecord = false
	if expectedFields > 0 {
		cr.FieldsPerRecord = expectedFields
	}
	return cr
}

// DecodeRecord decodes each raw field of record under enc into UTF-8.
func DecodeRecord(record []string, enc encoding.Encoding) ([]string, error) {
	if enc == nil || enc == encoding.Nop {
		return record, nil
	}
	out := make([]string, len(record))
	for i, field := range record {
		decoded, err := enc.NewDecoder().String(field)
		if err != nil {
			return nil, fmt.Errorf("failed to decode field %d: %w", i+1, err)
		}
		out[i] = decoded
	}
	return out, nil
}

// Source is a CSV input: it knows its delimiter and encoding, and
// exposes a single sequential scan. When the underlying reader is also
// an io.Seeker (i.e. a real file, not stdin), ReadAt lets the indexed
// pass replay arbitrary byte offsets, and Scan/IndexRowReader may be
// invoked more than once (each rewinds to the start).
type Source struct {
	r          io.ReadCloser
	delimiter  rune
	encoding   encoding.Encoding
	hasHeaders bool
	headers    []string
}

// OpenSource opens path (or reads stdin for "-") and, if hasHeaders,
// reads and decodes its header row immediately.
func OpenSource(path string, delimiter rune, enc encoding.Encoding, hasHeaders bool) (*Source, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	s := &Source{r: r, delimiter: delimiter, encoding: enc, hasHeaders: hasHeaders}
	if hasHeaders {
		cr := NewCSVReader(r, delimiter, 0)
		raw, err := cr.Read()
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("reading header row: %w", err)
		}
		headers, err := DecodeRecord(raw, enc)
		if err != nil {
			r.Close()
			return nil, err
		}
		s.headers = headers
	}
	return s, nil
}

func (s *Source) Headers() []string { return s.headers }

func (s *Source) Close() error { return s.r.Close() }

func (s *Source) seeker() (io.Seeker, bool) {
	sk, ok := s.r.(io.Seeker)
	return sk, ok
}

// rewind seeks back to the start of the input when possible; on a
// non-seekable source (stdin) it is a no-op, relying on the caller to
// scan at most once from wherever the reader currently sits.
func (s *Source) rewind() error {
	sk, ok := s.seeker()
	if !ok {
		return nil
	}
	if _, err := sk.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to start of input: %w", err)
	}
	return nil
}

// Scan reads every remaining record sequentially, invoking fn with the
// record's decoded fields and the byte offset it started at. Stops
// early if fn returns an error, or stop == true.
func (s *Source) Scan(fn func(offset uint64, row []string) (stop bool, err error)) error {
	if err := s.rewind(); err != nil {
		return err
	}
	cr := NewCSVReader(s.r, s.delimiter, len(s.headers))
	if s.hasHeaders {
		if _, err := cr.Read(); err != nil {
			return fmt.Errorf("re-reading header row: %w", err)
		}
	}
	for {
		offset := uint64(cr.InputOffset())
		raw, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading record: %w", err)
		}
		row, err := DecodeRecord(raw, s.encoding)
		if err != nil {
			return err
		}
		stop, err := fn(offset, row)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

// IndexRowReader adapts sequential reads into the pull-based iterator
// shape internal/index.Build expects. It holds its own csv.Reader over
// the source rather than Scan's callback form, since the engine is
// single-threaded and synchronous (§5) and a pull closure over live
// reader state needs no goroutine or channel to bridge push-based Scan
// into pull-based callers.
func (s *Source) IndexRowReader() func() (offset uint64, row []string, ok bool, err error) {
	var cr *csv.Reader
	return func() (uint64, []string, bool, error) {
		if cr == nil {
			if err := s.rewind(); err != nil {
				return 0, nil, false, err
			}
			cr = NewCSVReader(s.r, s.delimiter, len(s.headers))
			if s.hasHeaders {
				if _, err := cr.Read(); err != nil {
					return 0, nil, false, fmt.Errorf("re-reading header row: %w", err)
				}
			}
		}
		offset := uint64(cr.InputOffset())
		raw, err := cr.Read()
		if err == io.EOF {
			return 0, nil, false, nil
		}
		if err != nil {
			return 0, nil, false, fmt.Errorf("reading record: %w", err)
		}
		row, err := DecodeRecord(raw, s.encoding)
		if err != nil {
			return 0, nil, false, err
		}
		return offset, row, true, nil
	}
}

// SchemaRowReader adapts IndexRowReader into the offset-less shape
// internal/schema.InferSchema expects.
func (s *Source) SchemaRowReader() func() (row []string, ok bool, err error) {
	next := s.IndexRowReader()
	return func() ([]string, bool, error) {
		_, row, ok, err := next()
		return row, ok, err
	}
}

// ReadAt seeks to offset and decodes exactly one record from there, the
// core operation the indexed pass replays ordered_offsets() through.
// Requires a seekable source (a real file, not stdin).
func (s *Source) ReadAt(offset uint64) ([]string, error) {
	sk, ok := s.seeker()
	if !ok {
		return nil, fmt.Errorf("input must be a seekable file, not stdin, to use an index")
	}
	if _, err := sk.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to offset %d: %w", offset, err)
	}
	cr := NewCSVReader(s.r, s.delimiter, len(s.headers))
	raw, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading record at offset %d: %w", offset, err)
	}
	return DecodeRecord(raw, s.encoding)
}
