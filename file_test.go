package loosecsv

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

var fileRecords = [][]string{
	{"name", "qty"},
	{"apples", "3"},
	{"needs,quote", " padded"},
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a,b\nc,\"d,e\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := [][]string{{"a", "b"}, {"c", "d,e"}}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("Load() = %#v, want %#v", records, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatalf("Load() of a missing file should fail")
	}
}

func TestLoadStripsByteOrderMark(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bom.csv")
	if err := os.WriteFile(path, []byte("\xef\xbb\xbfa,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(records, [][]string{{"a", "b"}}) {
		t.Fatalf("Load() = %#v, want BOM stripped", records)
	}
}

func TestLoadTranscodesUTF16(t *testing.T) {
	t.Parallel()

	// "a,b\n" as UTF-16LE with BOM.
	data := []byte{0xff, 0xfe, 'a', 0, ',', 0, 'b', 0, '\n', 0}
	path := filepath.Join(t.TempDir(), "utf16.csv")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(records, [][]string{{"a", "b"}}) {
		t.Fatalf("Load() = %#v, want transcoded [a b]", records)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	names := []string{
		"plain.csv",
		"packed.csv.gz",
		"packed.csv.zst",
		"packed.csv.zstd",
		"packed.csv.xz",
	}
	for _, name := range names {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			if err := Save(path, fileRecords); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			records, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(records, fileRecords) {
				t.Fatalf("round trip mismatch:\nsaved: %#v\nloaded: %#v", fileRecords, records)
			}
		})
	}
}

func TestSaveRejectsBzip2(t *testing.T) {
	t.Parallel()

	err := Save(filepath.Join(t.TempDir(), "out.csv.bz2"), fileRecords)
	if !errors.Is(err, ErrUnsupportedCompression) {
		t.Fatalf("Save() to .bz2 = %v, want ErrUnsupportedCompression", err)
	}
}

func TestLoadRows(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rows.csv")
	if err := os.WriteFile(path, []byte("name,qty\napples,3\npears,5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := LoadRows(path)
	if err != nil {
		t.Fatalf("LoadRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("LoadRows() returned %d rows, want 2", len(rows))
	}
	if got := rows[1].Named("name"); got != "pears" {
		t.Fatalf("rows[1].Named(name) = %q, want pears", got)
	}
	if rows[0].Header() != rows[1].Header() {
		t.Fatalf("rows should share one header directory")
	}
}

func TestLoadRowsExplicitHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rows.csv")
	if err := os.WriteFile(path, []byte("x,y\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := LoadRows(path, WithHeader("id", ""))
	if err != nil {
		t.Fatalf("LoadRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("LoadRows() returned %d rows, want 1", len(rows))
	}
	if got := rows[0].Named("id"); got != "1" {
		t.Fatalf("Named(id) = %q, want 1", got)
	}
	if got := rows[0].Named("y"); got != "2" {
		t.Fatalf("Named(y) = %q, want discovered name kept at position 1", got)
	}
}

func TestOpenCloseReleasesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.csv.gz")
	if err := Save(path, fileRecords); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := r.Read(); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := r.Read(); !errors.Is(err, ErrReaderClosed) {
		t.Fatalf("Read() after Close = %v, want ErrReaderClosed", err)
	}
}
