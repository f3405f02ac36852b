package loosecsv

// Header is a directory of column names for one stream: an ordered, fixed-size
// sequence of names (empty string means "unnamed") plus a mapping from each
// non-empty name to its unique position. A Header is immutable after
// construction and may be shared by any number of Records, including across
// goroutines.
type Header struct {
	names []string
	index map[string]int
}

// NewHeader builds a directory binding names to positions 0..len(names)-1.
// A name that is already bound at an earlier position is demoted to unnamed
// at the later position, keeping the name→position mapping a bijection on
// non-empty names.
func NewHeader(names ...string) *Header {
	h := &Header{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if name == "" {
			continue
		}
		if _, taken := h.index[name]; taken {
			continue
		}
		h.names[i] = name
		h.index[name] = i
	}
	return h
}

// Len returns the number of positions in the directory.
func (h *Header) Len() int {
	if h == nil {
		return 0
	}
	return len(h.names)
}

// Name returns the name bound at position i, or "" when the position is
// unnamed or out of range.
func (h *Header) Name(i int) string {
	if h == nil || i < 0 || i >= len(h.names) {
		return ""
	}
	return h.names[i]
}

// Index returns the position bound to name. The second result is false for
// the empty name and for names absent from the directory.
func (h *Header) Index(name string) (int, bool) {
	if h == nil || name == "" {
		return 0, false
	}
	i, ok := h.index[name]
	return i, ok
}

// Names returns a copy of the positional name sequence.
func (h *Header) Names() []string {
	if h == nil {
		return nil
	}
	return append([]string(nil), h.names...)
}

// Merge returns the positional union of h and other, favoring h. The result
// has max(h.Len(), other.Len()) positions; each keeps h's non-empty name when
// present, otherwise adopts other's name there unless it is already bound
// earlier. Positions beyond h's length are populated from other directly.
func (h *Header) Merge(other *Header) *Header {
	n := h.Len()
	if other.Len() > n {
		n = other.Len()
	}
	merged := &Header{
		names: make([]string, n),
		index: make(map[string]int, n),
	}
	// h's names win their positions unconditionally.
	for i := 0; i < h.Len(); i++ {
		if name := h.Name(i); name != "" {
			merged.names[i] = name
			merged.index[name] = i
		}
	}
	// Unnamed positions adopt other's name unless it is bound elsewhere.
	for i := 0; i < n; i++ {
		if merged.names[i] != "" {
			continue
		}
		name := other.Name(i)
		if name == "" {
			continue
		}
		if _, taken := merged.index[name]; taken {
			continue
		}
		merged.names[i] = name
		merged.index[name] = i
	}
	return merged
}
