package region

import (
	"fmt"
	"sort"
)

// Tree is one complete, immutable decomposition of an address space. Root
// always spans [0, TotalSize) and transitively contains every other region.
type Tree struct {
	Root      *Region `json:"root" msgpack:"root"`
	TotalSize uint64  `json:"totalSize" msgpack:"totalSize"`
}

// BuildTree folds a flat, unordered list of regions into a single
// containment tree rooted at a synthetic region named rootName spanning
// [0, totalSize).
//
// Overlapping pairs are merged to a fixed point: the longer region becomes
// the parent, gains the shorter as its last child, and grows to cover the
// union of both spans; on an exact length tie the region earlier in scan
// order becomes the parent. Each merge appends the surviving region at the
// back of the list and restarts the scan, since a grown region can overlap
// regions it previously did not. Regions that merely touch at a boundary,
// or that cover the identical range, are not considered overlapping and
// remain siblings.
//
// BuildTree takes ownership of the supplied regions and re-parents them in
// place. After the fixed point is reached every node's children are sorted
// ascending by start, recursively; equal starts keep their merge order.
func BuildTree(rootName string, regions []*Region, totalSize uint64) *Tree {
	flat := make([]*Region, len(regions))
	copy(flat, regions)

	for {
		i, j, ok := findOverlap(flat)
		if !ok {
			break
		}
		parent, child := flat[i], flat[j]
		if child.Len() > parent.Len() {
			parent, child = child, parent
		}
		parent.Children = append(parent.Children, child)
		if child.Start < parent.Start {
			parent.Start = child.Start
		}
		if child.End > parent.End {
			parent.End = child.End
		}
		flat = removePair(flat, i, j)
		flat = append(flat, parent)
	}

	root := &Region{
		Name:     rootName,
		Start:    0,
		End:      totalSize,
		Kind:     KindSyntheticRoot,
		Children: flat,
	}
	sortChildren(root)
	return &Tree{Root: root, TotalSize: totalSize}
}

// findOverlap returns the first pair of overlapping regions in scan order.
func findOverlap(rs []*Region) (int, int, bool) {
	for i := 0; i < len(rs); i++ {
		for j := i + 1; j < len(rs); j++ {
			if overlaps(rs[i], rs[j]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// overlaps reports whether a and b overlap. Two regions overlap when either
// endpoint of one lies strictly inside the other's span, so boundary
// touching and identical ranges do not qualify.
func overlaps(a, b *Region) bool {
	return strictlyInside(a.Start, b) || strictlyInside(a.End, b) ||
		strictlyInside(b.Start, a) || strictlyInside(b.End, a)
}

func strictlyInside(p uint64, r *Region) bool {
	return p > r.Start && p < r.End
}

// removePair filters out indices i and j, preserving the order of the rest.
func removePair(rs []*Region, i, j int) []*Region {
	out := rs[:0]
	for k, r := range rs {
		if k == i || k == j {
			continue
		}
		out = append(out, r)
	}
	return out
}

func sortChildren(r *Region) {
	sort.SliceStable(r.Children, func(i, j int) bool {
		return r.Children[i].Start < r.Children[j].Start
	})
	for _, c := range r.Children {
		sortChildren(c)
	}
}

// Validate checks the structural guarantees of a built tree: the root spans
// [0, TotalSize), every region satisfies end >= start, children stay within
// their parent, and siblings are sorted and non-overlapping. Siblings
// covering the identical range are allowed, as duplicate records in the
// container produce exactly that shape.
func (t *Tree) Validate() error {
	if t.Root == nil {
		return fmt.Errorf("region: tree has no root")
	}
	if t.Root.Start != 0 || t.Root.End != t.TotalSize {
		return fmt.Errorf("region: root spans [%d, %d), want [0, %d)",
			t.Root.Start, t.Root.End, t.TotalSize)
	}
	return validateRegion(t.Root)
}

func validateRegion(r *Region) error {
	if r.End < r.Start {
		return fmt.Errorf("region: %q has end %d before start %d", r.Name, r.End, r.Start)
	}
	for i, c := range r.Children {
		if c.Start < r.Start || c.End > r.End {
			return fmt.Errorf("region: child %q [%d, %d) escapes parent %q [%d, %d)",
				c.Name, c.Start, c.End, r.Name, r.Start, r.End)
		}
		if i > 0 {
			prev := r.Children[i-1]
			identical := prev.Start == c.Start && prev.End == c.End
			if c.Start < prev.Start {
				return fmt.Errorf("region: children of %q not sorted at %q", r.Name, c.Name)
			}
			if !identical && c.Start < prev.End {
				return fmt.Errorf("region: siblings %q and %q overlap under %q",
					prev.Name, c.Name, r.Name)
			}
		}
		if err := validateRegion(c); err != nil {
			return err
		}
	}
	return nil
}
