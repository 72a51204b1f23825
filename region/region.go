// Package region models a binary's layout as trees of named byte ranges.
//
// A Region is a contiguous interval in one address space, either file
// offsets or virtual load addresses, annotated with display notes and owning
// an ordered list of child regions. BuildTree folds a flat extraction of
// possibly-overlapping regions into a single containment tree whose siblings
// are disjoint and sorted. The two spaces of one binary are always modeled
// as two independent trees, never as two views over shared nodes.
package region

import "fmt"

// Kind classifies what part of the binary a region describes.
type Kind int

const (
	// KindHeader is the fixed container header at the start of the file.
	KindHeader Kind = iota
	// KindProgramHeaderEntry is one record of the program-header table.
	KindProgramHeaderEntry
	// KindSectionHeaderEntry is one record of the section-header table.
	KindSectionHeaderEntry
	// KindSectionContent is the byte run a section header points at.
	KindSectionContent
	// KindSyntheticRoot is the generated region spanning the whole space.
	KindSyntheticRoot
)

var kindNames = map[Kind]string{
	KindHeader:             "header",
	KindProgramHeaderEntry: "program-header-entry",
	KindSectionHeaderEntry: "section-header-entry",
	KindSectionContent:     "section-content",
	KindSyntheticRoot:      "synthetic-root",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText renders the kind in its kebab-case wire form.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("region: unknown kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText parses the kebab-case wire form produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("region: unknown kind %q", text)
}

// Note is one (label, value) pair of display metadata attached to a region.
type Note struct {
	Label string `json:"label" msgpack:"label"`
	Value string `json:"value" msgpack:"value"`
}

// Region is a named byte interval [Start, End) with metadata and owned
// children. A parent exclusively owns its children; the structure is a pure
// tree with no back-pointers.
type Region struct {
	Name     string    `json:"name" msgpack:"name"`
	Start    uint64    `json:"start" msgpack:"start"`
	End      uint64    `json:"end" msgpack:"end"`
	Kind     Kind      `json:"kind" msgpack:"kind"`
	Notes    []Note    `json:"notes,omitempty" msgpack:"notes,omitempty"`
	Children []*Region `json:"children,omitempty" msgpack:"children,omitempty"`
}

// Len returns the region's span in bytes.
func (r *Region) Len() uint64 {
	return r.End - r.Start
}

// AddNote appends one (label, value) pair to the region's notes.
func (r *Region) AddNote(label, value string) {
	r.Notes = append(r.Notes, Note{Label: label, Value: value})
}

// Walk visits r and every descendant depth-first, parents before children,
// passing each node's depth counted from 0 at r.
func (r *Region) Walk(fn func(*Region, int)) {
	r.walk(fn, 0)
}

func (r *Region) walk(fn func(*Region, int), depth int) {
	fn(r, depth)
	for _, c := range r.Children {
		c.walk(fn, depth+1)
	}
}
