package loosecsv

import (
	"reflect"
	"testing"
)

func TestNewHeaderDuplicates(t *testing.T) {
	t.Parallel()

	h := NewHeader("x", "y", "x")

	if got := h.Names(); !reflect.DeepEqual(got, []string{"x", "y", ""}) {
		t.Fatalf("Names() = %#v, want first binding kept and later duplicate demoted", got)
	}
	if i, ok := h.Index("x"); !ok || i != 0 {
		t.Fatalf("Index(x) = %d,%v, want 0,true", i, ok)
	}
	if h.Name(2) != "" {
		t.Fatalf("Name(2) = %q, want demoted empty name", h.Name(2))
	}
}

func TestHeaderAccess(t *testing.T) {
	t.Parallel()

	h := NewHeader("a", "", "c")

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	if h.Name(-1) != "" || h.Name(3) != "" {
		t.Fatalf("out-of-range Name() should return empty string, not fail")
	}
	if h.Name(1) != "" {
		t.Fatalf("Name(1) = %q, want unnamed position", h.Name(1))
	}
	if _, ok := h.Index(""); ok {
		t.Fatalf("Index(\"\") should report not found")
	}
	if _, ok := h.Index("missing"); ok {
		t.Fatalf("Index(missing) should report not found")
	}
	if i, ok := h.Index("c"); !ok || i != 2 {
		t.Fatalf("Index(c) = %d,%v, want 2,true", i, ok)
	}

	var nilHeader *Header
	if nilHeader.Len() != 0 || nilHeader.Name(0) != "" {
		t.Fatalf("nil header access should degrade to empty results")
	}
	if _, ok := nilHeader.Index("a"); ok {
		t.Fatalf("nil header Index should report not found")
	}
}

func TestHeaderMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		main  []string
		other []string
		want  []string
	}{
		{
			name:  "mainWins",
			main:  []string{"id", ""},
			other: []string{"x", "y"},
			want:  []string{"id", "y"},
		},
		{
			name:  "otherExtends",
			main:  []string{"a"},
			other: []string{"x", "y", "z"},
			want:  []string{"a", "y", "z"},
		},
		{
			name:  "adoptionSkipsBoundNames",
			main:  []string{"", "x"},
			other: []string{"x", "q"},
			want:  []string{"", "x"},
		},
		{
			name:  "trailingDuplicateNotAdopted",
			main:  []string{"a"},
			other: []string{"", "a", "b"},
			want:  []string{"a", "", "b"},
		},
		{
			name:  "mainLonger",
			main:  []string{"a", "b", "c"},
			other: []string{"x"},
			want:  []string{"a", "b", "c"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			merged := NewHeader(tc.main...).Merge(NewHeader(tc.other...))
			if got := merged.Names(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Merge() = %#v, want %#v", got, tc.want)
			}
			// Every non-empty name must map back to its position.
			for i, name := range merged.Names() {
				if name == "" {
					continue
				}
				if j, ok := merged.Index(name); !ok || j != i {
					t.Fatalf("Index(%q) = %d,%v, want %d,true", name, j, ok, i)
				}
			}
		})
	}
}

func TestHeaderMergeStable(t *testing.T) {
	t.Parallel()

	// Re-merging the main directory over an already-merged result must not
	// change it.
	a := NewHeader("id", "")
	b := NewHeader("x", "y")

	once := a.Merge(b)
	twice := a.Merge(once)
	if !reflect.DeepEqual(twice.Names(), once.Names()) {
		t.Fatalf("Merge not stable: once=%#v twice=%#v", once.Names(), twice.Names())
	}
}
