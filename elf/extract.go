package elf

import (
	"fmt"
	"math"

	"github.com/joshuapare/elfmap/internal/format"
	"github.com/joshuapare/elfmap/region"
)

// Synthesized display names.
const (
	fileRootName    = "ELF file"
	virtualRootName = "Memory image"
	headerName      = "ELF Header"
)

// Diagnostic note texts attached to adjusted regions.
const (
	noteWidened = "zero-length widened for display"
	noteClamped = "extends past end of file, clamped for display"
)

// widenIfEmpty grows a zero-length region to one byte so it stays visible,
// recording the adjustment. Callers must ensure Start+1 cannot wrap.
func widenIfEmpty(r *region.Region) {
	if r.Start == r.End {
		r.End = r.Start + 1
		r.AddNote("note", noteWidened)
	}
}

// addSectionNotes attaches the descriptive notes shared by a section's file
// and virtual regions: decoded type, decoded flags, address, alignment, the
// linked partner section for linking-related types, and any name-resolution
// diagnostic.
func addSectionNotes(r *region.Region, sec *SectionHeader, secs []SectionHeader) {
	r.AddNote("type", format.SectionTypeName(sec.Type))
	r.AddNote("flags", format.SectionFlagNames(sec.Flags))
	r.AddNote("address", fmt.Sprintf("0x%x", sec.Addr))
	r.AddNote("align", fmt.Sprintf("%d", sec.AddrAlign))
	if sec.linksToSection() {
		if int(sec.Link) < len(secs) {
			r.AddNote("link", secs[sec.Link].DisplayName())
		} else {
			r.AddNote("link", PlaceholderName)
			r.AddNote("note", fmt.Sprintf("link index %d outside section table", sec.Link))
		}
	}
	if sec.NameNote != "" {
		r.AddNote("note", sec.NameNote)
	}
}

// extractFileRegions produces the flat file-space region list: the fixed
// header, one region per program-header record, one per section-header
// record, and one content region per section that occupies file bytes.
//
// Table placements were bounds-checked during parsing, so header and record
// regions always lie inside the buffer. Section content ranges are
// display-only and never dereferenced: content starting past the end of the
// file is dropped (noted on its header record), content running past the
// end is clamped, and zero-length content is widened to one byte.
func extractFileRegions(bufLen int, h *Header, phs []ProgramHeader, secs []SectionHeader) []*region.Region {
	regions := make([]*region.Region, 0, 1+len(phs)+2*len(secs))

	hdr := &region.Region{
		Name:  headerName,
		Start: 0,
		End:   uint64(h.EhSize),
		Kind:  region.KindHeader,
	}
	hdr.AddNote("class", "ELF64")
	hdr.AddNote("encoding", "little endian")
	hdr.AddNote("type", format.ObjectTypeName(h.Type))
	hdr.AddNote("machine", format.MachineName(h.Machine))
	hdr.AddNote("entry", fmt.Sprintf("0x%x", h.Entry))
	widenIfEmpty(hdr)
	regions = append(regions, hdr)

	for i := range phs {
		ph := &phs[i]
		r := &region.Region{
			Name:  fmt.Sprintf("Program Header Segment #%d", i),
			Start: h.PhOff + uint64(i)*uint64(h.PhEntSize),
			End:   h.PhOff + uint64(i+1)*uint64(h.PhEntSize),
			Kind:  region.KindProgramHeaderEntry,
		}
		r.AddNote("type", format.SegmentTypeName(ph.Type))
		r.AddNote("flags", format.SegmentFlagString(ph.Flags))
		r.AddNote("offset", fmt.Sprintf("0x%x", ph.Off))
		r.AddNote("vaddr", fmt.Sprintf("0x%x", ph.VAddr))
		r.AddNote("filesz", fmt.Sprintf("%d", ph.FileSize))
		r.AddNote("memsz", fmt.Sprintf("%d", ph.MemSize))
		regions = append(regions, r)
	}

	entries := make([]*region.Region, len(secs))
	for i := range secs {
		sec := &secs[i]
		r := &region.Region{
			Name:  fmt.Sprintf("ELF Section Header for %s", sec.DisplayName()),
			Start: h.ShOff + uint64(i)*uint64(h.ShEntSize),
			End:   h.ShOff + uint64(i+1)*uint64(h.ShEntSize),
			Kind:  region.KindSectionHeaderEntry,
		}
		r.AddNote("type", format.SectionTypeName(sec.Type))
		if sec.NameNote != "" {
			r.AddNote("note", sec.NameNote)
		}
		entries[i] = r
		regions = append(regions, r)
	}

	for i := range secs {
		sec := &secs[i]
		if !sec.HasFileBits() {
			continue
		}
		if sec.Off >= uint64(bufLen) {
			entries[i].AddNote("note", fmt.Sprintf("content offset 0x%x past end of file", sec.Off))
			continue
		}

		r := &region.Region{
			Name:  sec.DisplayName(),
			Start: sec.Off,
			Kind:  region.KindSectionContent,
		}
		addSectionNotes(r, sec, secs)
		if sec.Size > uint64(bufLen)-sec.Off {
			r.End = uint64(bufLen)
			r.AddNote("note", noteClamped)
		} else {
			r.End = sec.Off + sec.Size
		}
		widenIfEmpty(r)
		regions = append(regions, r)
	}

	return regions
}

// extractVirtualRegions produces the flat virtual-space region list: one
// region per section marked as occupying memory at load time, positioned at
// its load address. The second return value is the space's total size, the
// maximum end address among the produced regions after widening. Ranges
// that would wrap the 64-bit address space are dropped.
func extractVirtualRegions(secs []SectionHeader) ([]*region.Region, uint64) {
	var regions []*region.Region
	var total uint64
	for i := range secs {
		sec := &secs[i]
		if !sec.Loaded() {
			continue
		}
		span := sec.Size
		if span == 0 {
			span = 1 // account for widening below
		}
		if span > math.MaxUint64-sec.Addr {
			continue
		}

		r := &region.Region{
			Name:  sec.DisplayName(),
			Start: sec.Addr,
			End:   sec.Addr + sec.Size,
			Kind:  region.KindSectionContent,
		}
		addSectionNotes(r, sec, secs)
		widenIfEmpty(r)
		if r.End > total {
			total = r.End
		}
		regions = append(regions, r)
	}
	return regions, total
}
