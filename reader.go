package loosecsv

import (
	"errors"
	"io"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

// Reader parses delimited text incrementally, one record per Read call,
// without requiring the whole input in memory. Rows may be heterogeneous:
// records are returned with however many fields they contain.
//
// A Reader must not be used from multiple goroutines without external
// synchronization. The Header it exposes is immutable and safe to share.
type Reader struct {
	src io.Reader

	sep        byte
	strip      bool
	backslash  bool
	excel      bool
	tabIsSpace bool // chosen once from sep: tabs are data whitespace unless they delimit

	buf    []byte
	pos0   int
	pos1   int
	sawEOF bool // sticky; once set the source is never read again
	srcErr error
	closed bool

	field  []byte   // scratch for the field under construction
	record []string // most recently completed record
	header *Header

	recordNum int // 1-based, for diagnostics
	fieldNum  int // 1-based within the current record
}

// NewReader creates a Reader consuming delimited text from src, panicking if
// src is nil. When WithHeaderRow or WithHeader is given, the first physical
// record is consumed eagerly to seed the header directory; a malformed or
// empty stream still yields a usable Reader with an empty directory.
func NewReader(src io.Reader, opts ...Option) *Reader {
	if src == nil {
		panic("loosecsv: reader source cannot be nil")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Reader{
		src:        src,
		sep:        cfg.separator,
		strip:      cfg.strip,
		backslash:  cfg.backslashEscape,
		excel:      cfg.excelTricks,
		tabIsSpace: cfg.separator != '\t',
		buf:        make([]byte, defaultBufferSize),
		field:      make([]byte, 0, 512),
		header:     NewHeader(),
	}
	if cfg.headerRow || cfg.headerNames != nil {
		r.readHeader(cfg.headerNames)
	}
	return r
}

// Read parses the next record and returns its fields in order; io.EOF signals
// that no more records remain. Parse failures return a *ParseError carrying
// 1-based record and field numbers; the partial record, including whatever
// was accumulated for the failing field, stays available via Current. The
// reader has advanced past the error point, so callers may keep reading.
func (r *Reader) Read() ([]string, error) {
	if r == nil || r.src == nil {
		return nil, io.EOF
	}
	if r.closed {
		return nil, ErrReaderClosed
	}

	r.recordNum++
	fields := make([]string, 0, 8)
	for {
		r.fieldNum = len(fields) + 1
		val, more, err := r.parseField(len(fields) == 0)
		if err != nil {
			if err == io.EOF {
				r.recordNum--
				return nil, io.EOF
			}
			var perr *ParseError
			if errors.As(err, &perr) {
				// Keep the partial record reachable for diagnostics.
				r.record = append(fields, val)
			}
			return nil, err
		}
		fields = append(fields, val)
		if !more {
			break
		}
	}
	r.record = fields
	return fields, nil
}

// Current returns the record most recently produced by Read without
// advancing. Right after construction with header options it holds the
// consumed header row; after a parse error it holds the partial record.
func (r *Reader) Current() []string {
	return r.record
}

// Header returns the reader's header directory. It is never nil; without
// header options it is empty.
func (r *Reader) Header() *Header {
	return r.header
}

// RecordNum returns the 1-based number of records started so far, counting a
// record that ended in a parse error.
func (r *Reader) RecordNum() int {
	return r.recordNum
}

// Close releases the underlying source and makes further reads fail with
// ErrReaderClosed. It is idempotent.
func (r *Reader) Close() error {
	if r == nil || r.closed {
		return nil
	}
	r.closed = true
	r.pos0, r.pos1 = -1, -1
	if c, ok := r.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ReadAll exhausts the reader, collecting records until io.EOF and returning
// the accumulated slice plus the first error encountered.
func (r *Reader) ReadAll() (records [][]string, err error) {
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// readHeader consumes the first physical record and seeds the directory,
// merging caller-supplied names over the discovered ones. Failure to read a
// header row is not fatal to opening.
func (r *Reader) readHeader(names []string) {
	row, err := r.Read()
	if err != nil {
		row = r.record
	}
	discovered := NewHeader(row...)
	if names != nil {
		r.header = NewHeader(names...).Merge(discovered)
	} else {
		r.header = discovered
	}
}

// isSpace classifies data whitespace. The separator is never whitespace, so
// with a tab separator only ' ' qualifies and tabs stay significant.
func (r *Reader) isSpace(b byte) bool {
	if b == r.sep {
		return false
	}
	return b == ' ' || (b == '\t' && r.tabIsSpace)
}

// fill makes at least one byte available in the window, reporting ok=false at
// end of input. A read error observed alongside data is held back until the
// buffered bytes are consumed.
func (r *Reader) fill() (bool, error) {
	if r.pos0 < r.pos1 {
		return true, nil
	}
	if r.sawEOF {
		return false, nil
	}
	if r.srcErr != nil {
		err := r.srcErr
		r.srcErr = nil
		return false, err
	}
	for {
		n, err := r.src.Read(r.buf)
		if n > 0 {
			r.pos0, r.pos1 = 0, n
			if err == io.EOF {
				r.sawEOF = true
			} else if err != nil {
				r.srcErr = err
			}
			return true, nil
		}
		if err == io.EOF {
			r.sawEOF = true
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}

// next consumes and returns one byte; ok=false means end of input.
func (r *Reader) next() (byte, bool, error) {
	ok, err := r.fill()
	if !ok {
		return 0, false, err
	}
	b := r.buf[r.pos0]
	r.pos0++
	return b, true, nil
}

// peek returns the upcoming byte without consuming it.
func (r *Reader) peek() (byte, bool, error) {
	ok, err := r.fill()
	if !ok {
		return 0, false, err
	}
	return r.buf[r.pos0], true, nil
}

// parseField parses one field. more reports whether the terminator was the
// separator, meaning further fields belong to the same record. err is io.EOF
// only when first is true and the input ended before any byte of the record
// was consumed.
func (r *Reader) parseField(first bool) (val string, more bool, err error) {
	r.field = r.field[:0]

	skipped := false
	for {
		b, ok, err := r.peek()
		if err != nil {
			return "", false, err
		}
		if !ok {
			// End of input at the start of a field. Before the record's
			// first byte this is end of stream; after consumed leading
			// whitespace it is a one-field record holding "".
			if first && !skipped {
				return "", false, io.EOF
			}
			return "", false, nil
		}
		if !r.strip || !r.isSpace(b) {
			break
		}
		r.pos0++
		skipped = true
	}

	b, _, _ := r.peek()
	switch {
	case b == '"':
		r.pos0++
		return r.parseQuoted()
	case b == '=' && r.excel:
		// Excel writes ="..." to shield literal content; a lone '=' is data.
		r.pos0++
		nb, ok, err := r.peek()
		if err != nil {
			return "", false, err
		}
		if ok && nb == '"' {
			r.pos0++
			return r.parseQuoted()
		}
		r.field = append(r.field, '=')
		return r.parseUnquoted()
	default:
		return r.parseUnquoted()
	}
}

// parseUnquoted scans until the separator, a record terminator, or end of
// input, trimming trailing whitespace when stripping is enabled.
func (r *Reader) parseUnquoted() (string, bool, error) {
	for {
		b, ok, err := r.next()
		if err != nil {
			return "", false, err
		}
		if !ok {
			return r.finishUnquoted(), false, nil
		}
		switch b {
		case r.sep:
			return r.finishUnquoted(), true, nil
		case '\n':
			return r.finishUnquoted(), false, nil
		case '\r':
			if err := r.skipLF(); err != nil {
				return "", false, err
			}
			return r.finishUnquoted(), false, nil
		default:
			r.field = append(r.field, b)
		}
	}
}

func (r *Reader) finishUnquoted() string {
	f := r.field
	if r.strip {
		for len(f) > 0 && r.isSpace(f[len(f)-1]) {
			f = f[:len(f)-1]
		}
	}
	return string(f)
}

// parseQuoted accumulates a quoted field verbatim, handling quote doubling,
// backslash escapes, and the "0 NUL convention. Backslash escapes and quote
// doubling take precedence over the NUL trick at the same position.
func (r *Reader) parseQuoted() (string, bool, error) {
	for {
		b, ok, err := r.next()
		if err != nil {
			return "", false, err
		}
		if !ok {
			return string(r.field), false, r.parseError(ErrUnterminatedQuote)
		}
		if r.backslash && b == '\\' {
			e, ok, err := r.next()
			if err != nil {
				return "", false, err
			}
			if !ok {
				return string(r.field), false, r.parseError(ErrUnterminatedQuote)
			}
			r.field = append(r.field, unescape(e))
			continue
		}
		if b != '"' {
			r.field = append(r.field, b)
			continue
		}

		nb, ok, err := r.peek()
		if err != nil {
			return "", false, err
		}
		if !ok {
			// The quote closed the field and the input ended with it.
			return string(r.field), false, nil
		}
		switch {
		case nb == '"':
			r.pos0++
			r.field = append(r.field, '"')
		case r.excel && nb == '0':
			r.pos0++
			r.field = append(r.field, 0)
		default:
			return r.closeQuoted()
		}
	}
}

// closeQuoted runs after a field-closing quote: trailing whitespace is
// consumed and discarded, then the terminator is expected. Anything else is a
// malformed-quote error.
func (r *Reader) closeQuoted() (string, bool, error) {
	val := string(r.field)
	for {
		b, ok, err := r.next()
		if err != nil {
			return val, false, err
		}
		if !ok {
			return val, false, nil
		}
		switch {
		case b == r.sep:
			return val, true, nil
		case b == '\n':
			return val, false, nil
		case b == '\r':
			if err := r.skipLF(); err != nil {
				return val, false, err
			}
			return val, false, nil
		case r.isSpace(b):
		default:
			return val, false, r.parseError(ErrMalformedQuote)
		}
	}
}

// skipLF consumes a '\n' directly following a '\r', normalizing CRLF to a
// single record terminator.
func (r *Reader) skipLF() error {
	nb, ok, err := r.peek()
	if err != nil {
		return err
	}
	if ok && nb == '\n' {
		r.pos0++
	}
	return nil
}

func (r *Reader) parseError(err error) error {
	return &ParseError{Record: r.recordNum, Field: r.fieldNum, Err: err}
}

// unescape decodes the character following a backslash inside a quoted field.
func unescape(b byte) byte {
	switch b {
	case '0':
		return 0
	case 'b':
		return '\b'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'Z':
		return 0x1a
	default:
		return b
	}
}
