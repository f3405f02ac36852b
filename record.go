package loosecsv

// Record is one parsed row bound to a Header directory, addressable by field
// position or by column name. Rows are heterogeneous: a Record may carry
// fewer or more fields than its header has positions, and both access paths
// return "" instead of failing for positions a particular row does not cover.
//
// The Header is shared, not owned; many Records typically reference the same
// directory.
type Record struct {
	fields []string
	header *Header
}

// NewRecord binds fields to a header directory. The fields slice is retained,
// not copied; callers hand over ownership. h may be nil for headerless rows.
func NewRecord(fields []string, h *Header) Record {
	return Record{fields: fields, header: h}
}

// Len returns the number of fields in this row.
func (r Record) Len() int {
	return len(r.fields)
}

// Field returns the field at position i, or "" when i is out of range for
// this row.
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

// Named returns the field in the column bound to name, or "" when the name is
// absent from the header or this row is too short to reach its position.
func (r Record) Named(name string) string {
	i, ok := r.header.Index(name)
	if !ok {
		return ""
	}
	return r.Field(i)
}

// Fields returns a copy of the row's field values in order.
func (r Record) Fields() []string {
	return append([]string(nil), r.fields...)
}

// Header returns the directory this row resolves names against. May be nil.
func (r Record) Header() *Header {
	return r.header
}
