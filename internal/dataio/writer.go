package dataio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// OpenOutput returns a writer for path honoring the "-" stdout sentinel.
func OpenOutput(path string) (io.WriteCloser, error) {
	if IsDash(path) {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", path, err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// EncodingWriter wraps w so that everything written through it is
// transcoded from UTF-8 into enc before hitting the underlying stream.
// Grounded on io_utils.rs's TranscodingWriter, which buffers partial
// multi-byte sequences across Write calls and errors on an incomplete
// trailing sequence left at Close; golang.org/x/text/transform.Writer
// already implements exactly that buffering discipline, so this is a
// thin adapter rather than a reimplementation.
func EncodingWriter(w io.WriteCloser, enc encoding.Encoding) io.WriteCloser {
	if enc == nil || enc == encoding.Nop {
		return w
	}
	return &transcodingWriteCloser{
		tw:         transform.NewWriter(w, enc.NewEncoder()),
		underlying: w,
	}
}

type transcodingWriteCloser struct {
	tw         *transform.Writer
	underlying io.WriteCloser
}

func (t *transcodingWriteCloser) Write(p []byte) (int, error) { return t.tw.Write(p) }

func (t *transcodingWriteCloser) Close() error {
	if err := t.tw.Close(); err != nil {
		return fmt.Errorf("flushing transcoded output: %w", err)
	}
	return t.underlying.Close()
}

// RecordWriter writes CSV records with every field quoted (the
// original's QuoteStyle::Always), so downstream consumers never need
// to guess whether an unquoted field is a number or a numeric string.
// Grounded on io_utils.rs's writer construction
// (csv::WriterBuilder::quote_style(QuoteStyle::Always)); Go's
// encoding/csv.Writer has no always-quote mode, so records are
// assembled by hand here instead.
type RecordWriter struct {
	w         *bufio.Writer
	delimiter rune
}

func NewRecordWriter(w io.Writer, delimiter rune) *RecordWriter {
	return &RecordWriter{w: bufio.NewWriter(w), delimiter: delimiter}
}

func (rw *RecordWriter) WriteRecord(fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if _, err := rw.w.WriteRune(rw.delimiter); err != nil {
				return err
			}
		}
		if err := rw.writeQuoted(field); err != nil {
			return err
		}
	}
	_, err := rw.w.WriteString("\n")
	return err
}

func (rw *RecordWriter) writeQuoted(field string) error {
	if _, err := rw.w.WriteRune('"'); err != nil {
		return err
	}
	if strings.Contains(field, `"`) {
		field = strings.ReplaceAll(field, `"`, `""`)
	}
	if _, err := rw.w.WriteString(field); err != nil {
		return err
	}
	_, err := rw.w.WriteRune('"')
	return err
}

func (rw *RecordWriter) Flush() error { return rw.w.Flush() }
