// Package elftest assembles synthetic ELF64 images for tests.
//
// A Builder produces a minimal well-formed image: fixed header, program
// header table, section-header table with the implicit NULL entry, the
// caller's sections, and a trailing name table holding every section name.
// Section content bytes are never written; the image is zero-padded to
// cover declared content ranges. Tests corrupt specific fields afterwards
// with the format package's Put helpers and the offsets recorded in Image.
package elftest

import "github.com/joshuapare/elfmap/internal/format"

// Segment describes one program-header record of a built image.
type Segment struct {
	Type     uint32
	Flags    uint32
	Off      uint64
	VAddr    uint64
	PAddr    uint64
	FileSize uint64
	MemSize  uint64
	Align    uint64
}

// Section describes one section-header record of a built image.
type Section struct {
	Name      string
	Type      uint32
	Flags     uint64
	Addr      uint64
	Off       uint64
	Size      uint64
	Link      uint32
	Info      uint32
	AddrAlign uint64
	EntSize   uint64
}

// Image is an assembled ELF64 buffer plus the layout facts tests need to
// address individual fields.
type Image struct {
	Data    []byte
	PhOff   uint64
	ShOff   uint64
	StrOff  uint64 // placement of the section-name blob
	StrSize uint64
	ShNum   uint16 // includes the NULL entry and the name table itself
}

// SectionRecordOffset returns the buffer offset of section record i, for
// targeted corruption of its fields.
func (img *Image) SectionRecordOffset(i int) int {
	return int(img.ShOff) + i*format.ShdrSize
}

// Builder accumulates the segments and sections of an image to assemble.
type Builder struct {
	typ      uint16
	machine  uint16
	entry    uint64
	segments []Segment
	sections []Section
}

// NewBuilder returns a Builder for a shared-object image on x86-64.
func NewBuilder() *Builder {
	return &Builder{typ: format.ETDyn, machine: 0x3E}
}

// Type sets e_type.
func (b *Builder) Type(t uint16) *Builder {
	b.typ = t
	return b
}

// Machine sets e_machine.
func (b *Builder) Machine(m uint16) *Builder {
	b.machine = m
	return b
}

// Entry sets the entry point address.
func (b *Builder) Entry(e uint64) *Builder {
	b.entry = e
	return b
}

// Segment appends one program-header record.
func (b *Builder) Segment(s Segment) *Builder {
	b.segments = append(b.segments, s)
	return b
}

// Section appends one section-header record after the implicit NULL entry.
func (b *Builder) Section(s Section) *Builder {
	b.sections = append(b.sections, s)
	return b
}

// Build lays out and encodes the image: header at 0, program-header table
// right after, then the section-header table, then the name blob, then zero
// padding up to the furthest declared content byte.
func (b *Builder) Build() *Image {
	phOff := uint64(format.EhdrSize)
	phLen := uint64(len(b.segments)) * format.PhdrSize

	shNum := uint16(len(b.sections)) + 2 // NULL entry + name table
	shOff := phOff + phLen
	shLen := uint64(shNum) * format.ShdrSize

	// Name blob: offset 0 is the empty name for the NULL entry.
	blob := []byte{0}
	nameOffs := make([]uint32, len(b.sections))
	for i, sec := range b.sections {
		nameOffs[i] = uint32(len(blob))
		blob = append(blob, sec.Name...)
		blob = append(blob, 0)
	}
	strNameOff := uint32(len(blob))
	blob = append(blob, ".shstrtab"...)
	blob = append(blob, 0)

	strOff := shOff + shLen
	total := strOff + uint64(len(blob))
	for _, sec := range b.sections {
		if sec.Type == format.SHTNull || sec.Type == format.SHTNobits {
			continue
		}
		if end := sec.Off + sec.Size; end > total {
			total = end
		}
	}

	data := make([]byte, total)
	copy(data, format.Magic)
	data[format.EhdrClassOffset] = format.Class64
	data[format.EhdrDataOffset] = format.Data2LSB
	data[format.EhdrDataOffset+1] = 1 // identification version

	format.PutU16(data, format.EhdrTypeOffset, b.typ)
	format.PutU16(data, format.EhdrMachineOffset, b.machine)
	format.PutU32(data, format.EhdrVersionOffset, 1)
	format.PutU64(data, format.EhdrEntryOffset, b.entry)
	format.PutU64(data, format.EhdrPhOffOffset, phOff)
	format.PutU64(data, format.EhdrShOffOffset, shOff)
	format.PutU16(data, format.EhdrEhSizeOffset, format.EhdrSize)
	format.PutU16(data, format.EhdrPhEntSizeOffset, format.PhdrSize)
	format.PutU16(data, format.EhdrPhNumOffset, uint16(len(b.segments)))
	format.PutU16(data, format.EhdrShEntSizeOffset, format.ShdrSize)
	format.PutU16(data, format.EhdrShNumOffset, shNum)
	format.PutU16(data, format.EhdrShStrNdxOffset, shNum-1)

	for i, seg := range b.segments {
		base := int(phOff) + i*format.PhdrSize
		format.PutU32(data, base+format.PhdrTypeOffset, seg.Type)
		format.PutU32(data, base+format.PhdrFlagsOffset, seg.Flags)
		format.PutU64(data, base+format.PhdrOffOffset, seg.Off)
		format.PutU64(data, base+format.PhdrVAddrOffset, seg.VAddr)
		format.PutU64(data, base+format.PhdrPAddrOffset, seg.PAddr)
		format.PutU64(data, base+format.PhdrFileSizeOffset, seg.FileSize)
		format.PutU64(data, base+format.PhdrMemSizeOffset, seg.MemSize)
		format.PutU64(data, base+format.PhdrAlignOffset, seg.Align)
	}

	// Record 0 stays all zeroes: the NULL entry.
	for i, sec := range b.sections {
		putSection(data, int(shOff)+(i+1)*format.ShdrSize, nameOffs[i], sec)
	}
	putSection(data, int(shOff)+int(shNum-1)*format.ShdrSize, strNameOff, Section{
		Name:      ".shstrtab",
		Type:      format.SHTStrtab,
		Off:       strOff,
		Size:      uint64(len(blob)),
		AddrAlign: 1,
	})

	copy(data[strOff:], blob)

	return &Image{
		Data:    data,
		PhOff:   phOff,
		ShOff:   shOff,
		StrOff:  strOff,
		StrSize: uint64(len(blob)),
		ShNum:   shNum,
	}
}

func putSection(data []byte, base int, nameOff uint32, sec Section) {
	format.PutU32(data, base+format.ShdrNameOffset, nameOff)
	format.PutU32(data, base+format.ShdrTypeOffset, sec.Type)
	format.PutU64(data, base+format.ShdrFlagsOffset, sec.Flags)
	format.PutU64(data, base+format.ShdrAddrOffset, sec.Addr)
	format.PutU64(data, base+format.ShdrOffOffset, sec.Off)
	format.PutU64(data, base+format.ShdrSizeOffset, sec.Size)
	format.PutU32(data, base+format.ShdrLinkOffset, sec.Link)
	format.PutU32(data, base+format.ShdrInfoOffset, sec.Info)
	format.PutU64(data, base+format.ShdrAddrAlignOffset, sec.AddrAlign)
	format.PutU64(data, base+format.ShdrEntSizeOffset, sec.EntSize)
}
