package loosecsv

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Named-stream convenience layer. Open/Create resolve a name to a byte
// source/sink ("-" means stdio), apply extension-driven compression, and
// tolerate Unicode byte order marks; Load/Save are the whole-stream wrappers
// on top.

// Open returns a Reader over the named file, or stdin for "-". Inputs ending
// in .gz, .bz2, .xz, .zst, or .zstd are decompressed transparently. A UTF-8
// BOM is stripped and UTF-16 input with a BOM is transcoded. Closing the
// Reader closes everything Open opened; stdin itself is left open.
func Open(name string, opts ...Option) (*Reader, error) {
	var base io.Reader
	var closeFns []func() error
	if name == "-" {
		base = os.Stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		base = f
		closeFns = append(closeFns, f.Close)
	}

	decompressed, decFns, err := newDecompressor(name, base)
	if err != nil {
		closeAll(closeFns)
		return nil, err
	}
	closeFns = append(decFns, closeFns...)

	bomless := transform.NewReader(decompressed, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	return NewReader(&stream{Reader: bomless, closeFns: closeFns}, opts...), nil
}

// Create returns a Writer to the named file, or stdout for "-". Destinations
// ending in .gz, .xz, .zst, or .zstd are compressed; .bz2 is rejected with
// ErrUnsupportedCompression since no bzip2 compressor is available. Closing
// the Writer flushes and closes everything Create opened; stdout itself is
// left open.
func Create(name string, opts ...Option) (*Writer, error) {
	var base io.Writer
	var closeFns []func() error
	if name == "-" {
		base = os.Stdout
	} else {
		f, err := os.Create(name)
		if err != nil {
			return nil, err
		}
		base = f
		closeFns = append(closeFns, f.Close)
	}

	compressed, compFns, err := newCompressor(name, base)
	if err != nil {
		closeAll(closeFns)
		if name != "-" {
			os.Remove(name)
		}
		return nil, err
	}
	closeFns = append(compFns, closeFns...)

	return NewWriter(&sink{Writer: compressed, closeFns: closeFns}, opts...), nil
}

// Load reads every record from the named source, or stdin for "-".
func Load(name string, opts ...Option) ([][]string, error) {
	r, err := Open(name, opts...)
	if err != nil {
		return nil, err
	}
	records, err := r.ReadAll()
	closeErr := r.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return records, nil
}

// LoadRows reads every record from the named source as header-aware rows.
// Unless header options are supplied, the first record is taken as the
// header.
func LoadRows(name string, opts ...Option) ([]Record, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.headerRow && cfg.headerNames == nil {
		opts = append(opts, WithHeaderRow())
	}

	r, err := Open(name, opts...)
	if err != nil {
		return nil, err
	}
	rows, err := r.ReadAllRows()
	closeErr := r.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return rows, nil
}

// Save writes all records to the named destination, or stdout for "-".
func Save(name string, records [][]string, opts ...Option) error {
	w, err := Create(name, opts...)
	if err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// newDecompressor picks a decoding wrapper from the name's extension.
func newDecompressor(name string, r io.Reader) (io.Reader, []func() error, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("loosecsv: gzip source: %w", err)
		}
		return gz, []func() error{gz.Close}, nil
	case ".bz2":
		return bzip2.NewReader(r), nil, nil
	case ".xz":
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("loosecsv: xz source: %w", err)
		}
		return xr, nil, nil
	case ".zst", ".zstd":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("loosecsv: zstd source: %w", err)
		}
		rc := dec.IOReadCloser()
		return rc, []func() error{rc.Close}, nil
	default:
		return r, nil, nil
	}
}

// newCompressor picks an encoding wrapper from the name's extension.
func newCompressor(name string, w io.Writer) (io.Writer, []func() error, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".gz":
		gz := gzip.NewWriter(w)
		return gz, []func() error{gz.Close}, nil
	case ".xz":
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, nil, fmt.Errorf("loosecsv: xz destination: %w", err)
		}
		return xw, []func() error{xw.Close}, nil
	case ".zst", ".zstd":
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, fmt.Errorf("loosecsv: zstd destination: %w", err)
		}
		return enc, []func() error{enc.Close}, nil
	case ".bz2":
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, ext)
	default:
		return w, nil, nil
	}
}

// stream bundles a wrapped source with the closers of every layer beneath it,
// decompressor first.
type stream struct {
	io.Reader
	closeFns []func() error
}

func (s *stream) Close() error {
	return closeAll(s.closeFns)
}

// sink is the writer-side counterpart of stream, compressor first.
type sink struct {
	io.Writer
	closeFns []func() error
}

func (s *sink) Close() error {
	return closeAll(s.closeFns)
}

func closeAll(fns []func() error) error {
	var first error
	for _, fn := range fns {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
