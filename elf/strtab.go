package elf

import "bytes"

// PlaceholderName substitutes for a name that could not be resolved, either
// because its offset points outside the string table or because a link
// index points outside the section table. Name resolution failures are
// never fatal.
const PlaceholderName = "<corrupt>"

// StringTable resolves byte offsets inside a raw string-table blob to
// names. The zero value behaves as an empty table.
type StringTable struct {
	data []byte
}

// NewStringTable wraps the raw contents of a name-string section.
func NewStringTable(data []byte) *StringTable {
	return &StringTable{data: data}
}

// Lookup returns the NUL-terminated string starting at off. An offset at or
// past the end of the table resolves to PlaceholderName with ok=false. A
// string missing its terminator runs to the end of the table; Lookup never
// reads past it.
func (st *StringTable) Lookup(off uint32) (name string, ok bool) {
	if st == nil || uint64(off) >= uint64(len(st.data)) {
		return PlaceholderName, false
	}
	rest := st.data[off:]
	if i := bytes.IndexByte(rest, 0); i >= 0 {
		return string(rest[:i]), true
	}
	return string(rest), true
}
