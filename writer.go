package loosecsv

import (
	"bufio"
	"io"
)

// Writer emits records with escaping rules that mirror the Reader exactly, so
// written output parses back to the original fields. Configuration is fixed
// at construction. A Writer must not be used from multiple goroutines without
// external synchronization.
type Writer struct {
	dst *bufio.Writer
	out io.Writer

	sep       byte
	backslash bool
	excel     bool

	err    error
	closed bool
}

// NewWriter creates a Writer with internal buffering, panicking if dst is
// nil. Header and strip options do not apply to writers and are ignored.
func NewWriter(dst io.Writer, opts ...Option) *Writer {
	if dst == nil {
		panic("loosecsv: writer destination cannot be nil")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Writer{
		dst:       bufio.NewWriterSize(dst, defaultBufferSize),
		out:       dst,
		sep:       cfg.separator,
		backslash: cfg.backslashEscape,
		excel:     cfg.excelTricks,
	}
}

// Write emits one record: fields joined by the separator, terminated by '\n'.
// An empty record writes just the terminator. Zero-length fields emit nothing
// at all, not an empty quoted pair.
func (w *Writer) Write(record []string) error {
	if w.closed {
		return ErrWriterClosed
	}
	if w.err != nil {
		return w.err
	}

	for i := range record {
		if i > 0 {
			if err := w.dst.WriteByte(w.sep); err != nil {
				w.err = err
				return err
			}
		}
		if err := w.writeField(record[i]); err != nil {
			w.err = err
			return err
		}
	}
	if err := w.dst.WriteByte('\n'); err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteRecord emits a header-aware row's fields.
func (w *Writer) WriteRecord(rec Record) error {
	return w.Write(rec.fields)
}

// WriteAll writes multiple records, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrWriterClosed
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	return w.err
}

// Reset discards unflushed data and any stored error, pointing the writer at
// dst while preserving the configuration.
func (w *Writer) Reset(dst io.Writer) {
	if dst == nil {
		panic("loosecsv: writer destination cannot be nil")
	}
	w.dst.Reset(dst)
	w.out = dst
	w.err = nil
	w.closed = false
}

// Close flushes buffered data and releases the sink when it is an io.Closer.
// It is idempotent; later writes fail with ErrWriterClosed.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	flushErr := w.Flush()
	w.closed = true
	if c, ok := w.out.(io.Closer); ok {
		if err := c.Close(); err != nil && flushErr == nil {
			return err
		}
	}
	return flushErr
}

func (w *Writer) writeField(field string) error {
	if field == "" {
		return nil
	}
	if !w.mustEscape(field) {
		_, err := w.dst.WriteString(field)
		return err
	}

	// The ="..." form survives spreadsheet round trips that would strip
	// literal leading/trailing whitespace or a leading zero.
	if w.excel && needsExcelForm(field) {
		if err := w.dst.WriteByte('='); err != nil {
			return err
		}
	}
	if err := w.dst.WriteByte('"'); err != nil {
		return err
	}
	for i := 0; i < len(field); i++ {
		b := field[i]
		if w.backslash {
			if m, ok := mnemonic(b); ok {
				if _, err := w.dst.Write([]byte{'\\', m}); err != nil {
					return err
				}
				continue
			}
		} else if b == '"' {
			if _, err := w.dst.WriteString(`""`); err != nil {
				return err
			}
			continue
		} else if b == 0 && w.excel {
			if _, err := w.dst.WriteString(`"0`); err != nil {
				return err
			}
			continue
		}
		if err := w.dst.WriteByte(b); err != nil {
			return err
		}
	}
	return w.dst.WriteByte('"')
}

// mustEscape decides whether a field can be written bare. The triggers mirror
// everything the reader would mangle if left unescaped: separators,
// terminators, quotes, strippable edge whitespace, and in the respective
// modes NUL bytes, backslash-escapable characters, and a leading zero.
func (w *Writer) mustEscape(field string) bool {
	if isBlank(field[0]) || isBlank(field[len(field)-1]) {
		return true
	}
	if w.excel && field[0] == '0' {
		return true
	}
	for i := 0; i < len(field); i++ {
		b := field[i]
		switch {
		case b == w.sep, b == '\n', b == '\r', b == '"':
			return true
		case b == 0 && w.excel:
			return true
		case w.backslash:
			if _, ok := mnemonic(b); ok {
				return true
			}
		}
	}
	return false
}

func needsExcelForm(field string) bool {
	return isBlank(field[0]) || isBlank(field[len(field)-1]) || field[0] == '0'
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}

// mnemonic returns the backslash-escape letter for b and whether b belongs to
// the escapable set.
func mnemonic(b byte) (byte, bool) {
	switch b {
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	case 0:
		return '0', true
	case '\b':
		return 'b', true
	case '\n':
		return 'n', true
	case '\r':
		return 'r', true
	case '\t':
		return 't', true
	case 0x1a:
		return 'Z', true
	default:
		return 0, false
	}
}
