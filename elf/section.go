package elf

import (
	"fmt"

	"github.com/joshuapare/elfmap/internal/format"
)

// SectionHeader is one decoded record of the section-header table, plus the
// resolved section name.
type SectionHeader struct {
	NameOff   uint32
	Type      uint32
	Flags     uint64
	Addr      uint64
	Off       uint64
	Size      uint64
	Link      uint32
	Info      uint32
	AddrAlign uint64
	EntSize   uint64

	// Name is the resolved name, PlaceholderName when resolution failed.
	Name string
	// NameNote carries the diagnostic for a failed resolution, empty
	// otherwise.
	NameNote string
}

// DisplayName returns the resolved name, or a stand-in for sections whose
// name is empty.
func (sh *SectionHeader) DisplayName() string {
	if sh.Name == "" {
		return "Unnamed section"
	}
	return sh.Name
}

// HasFileBits reports whether the section's content occupies bytes in the
// file. NULL entries describe nothing and NOBITS sections exist only in
// memory.
func (sh *SectionHeader) HasFileBits() bool {
	return sh.Type != format.SHTNull && sh.Type != format.SHTNobits
}

// Loaded reports whether the section occupies memory at load time.
func (sh *SectionHeader) Loaded() bool {
	return sh.Flags&format.SHFAlloc != 0
}

// linksToSection reports whether sh_link names a partner section, which is
// the case for dynamic-linking and relocation section types.
func (sh *SectionHeader) linksToSection() bool {
	switch sh.Type {
	case format.SHTRel, format.SHTRela, format.SHTDynamic, format.SHTDynsym,
		format.SHTHash, format.SHTGNUHash, format.SHTGNUVerdef,
		format.SHTGNUVerneed, format.SHTGNUVersym:
		return true
	}
	return false
}

// parseSectionHeaders bounds-checks the section-header table declared by h
// and decodes every record. A zero ShNum is legal and yields no sections.
func parseSectionHeaders(data []byte, h *Header) ([]SectionHeader, error) {
	if h.ShNum == 0 {
		return nil, nil
	}
	if err := checkTable("section header table", h.ShOff, h.ShNum, h.ShEntSize,
		format.ShdrSize, len(data)); err != nil {
		return nil, err
	}

	secs := make([]SectionHeader, h.ShNum)
	for i := range secs {
		base := int(h.ShOff) + i*int(h.ShEntSize)
		secs[i] = SectionHeader{
			NameOff:   format.ReadU32(data, base+format.ShdrNameOffset),
			Type:      format.ReadU32(data, base+format.ShdrTypeOffset),
			Flags:     format.ReadU64(data, base+format.ShdrFlagsOffset),
			Addr:      format.ReadU64(data, base+format.ShdrAddrOffset),
			Off:       format.ReadU64(data, base+format.ShdrOffOffset),
			Size:      format.ReadU64(data, base+format.ShdrSizeOffset),
			Link:      format.ReadU32(data, base+format.ShdrLinkOffset),
			Info:      format.ReadU32(data, base+format.ShdrInfoOffset),
			AddrAlign: format.ReadU64(data, base+format.ShdrAddrAlignOffset),
			EntSize:   format.ReadU64(data, base+format.ShdrEntSizeOffset),
		}
	}
	return secs, nil
}

// resolveSectionNames locates the section-name string table and fills the
// Name of every section. The string table itself is bounds-checked and a
// bad placement is fatal; an individual name offset outside the table is
// not, it resolves to PlaceholderName plus a diagnostic.
func resolveSectionNames(data []byte, h *Header, secs []SectionHeader) error {
	if len(secs) == 0 {
		return nil
	}
	if int(h.ShStrNdx) >= len(secs) {
		return fmt.Errorf("%w: section name table index %d outside table of %d sections",
			ErrMalformedTableBounds, h.ShStrNdx, len(secs))
	}

	str := secs[h.ShStrNdx]
	if str.Off > uint64(len(data)) || str.Size > uint64(len(data))-str.Off {
		return &BoundsError{
			Table:    "section name string table",
			Offset:   str.Off,
			Length:   str.Size,
			FileSize: len(data),
		}
	}

	table := NewStringTable(data[str.Off : str.Off+str.Size])
	for i := range secs {
		name, ok := table.Lookup(secs[i].NameOff)
		secs[i].Name = name
		if !ok {
			secs[i].NameNote = fmt.Sprintf("name offset %d outside string table", secs[i].NameOff)
		}
	}
	return nil
}
