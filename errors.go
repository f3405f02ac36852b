package loosecsv

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedQuote is returned when a non-space character directly follows a
	// field-closing quote, before the next separator or record terminator.
	ErrMalformedQuote = errors.New("loosecsv: character after closing quote")
	// ErrUnterminatedQuote is returned when the input ends inside a quoted field
	// that never validly closed.
	ErrUnterminatedQuote = errors.New("loosecsv: quoted field closed by end of input")
	// ErrReaderClosed is returned by Read after Close has been called.
	ErrReaderClosed = errors.New("loosecsv: reader is closed")
	// ErrWriterClosed is returned by Write and Flush after Close has been called.
	ErrWriterClosed = errors.New("loosecsv: writer is closed")
	// ErrUnsupportedCompression is returned by Save for destination names whose
	// extension demands a compressor this library cannot provide.
	ErrUnsupportedCompression = errors.New("loosecsv: unsupported compression format")
)

// ParseError locates a parsing failure by 1-based record and field numbers.
// Rows are heterogeneous by design, so positions are reported in record
// coordinates rather than line/column offsets.
type ParseError struct {
	Record int
	Field  int
	Err    error
}

// Error formats the parse error with the stored record, field, and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("loosecsv: parse error at record %d, field %d: %v", e.Record, e.Field, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Is.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
