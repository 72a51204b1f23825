// Package format houses the low-level layout constants of the ELF64
// container format. The goal is to keep the byte-level knowledge focused,
// allocation-free where possible, and independent from the public API so
// higher-level packages can orchestrate the data in a more ergonomic form.
//
// Only the little-endian 64-bit variant of the format is described; that is
// the single container this module targets.
package format

var (
	// Magic is the four-byte identification at the start of every ELF image.
	// Layout:
	//   0x00  0x7F 'E' 'L' 'F'
	Magic = []byte{0x7F, 'E', 'L', 'F'}
)

const (
	// MagicSize is the number of identification bytes checked against Magic.
	MagicSize = 4

	// EhdrSize is the size of the fixed ELF64 header in bytes.
	EhdrSize = 64

	// PhdrSize is the on-disk size of one ELF64 program-header entry.
	PhdrSize = 56

	// ShdrSize is the on-disk size of one ELF64 section-header entry.
	ShdrSize = 64
)

// Identification bytes inside e_ident. The diagram below covers the part of
// the identification array the parser inspects.
//
//	Offset  Size  Description
//	------  ----  -------------------------------------
//	 0x00    4    0x7F 'E' 'L' 'F'
//	 0x04    1    Class (1 = 32-bit, 2 = 64-bit)
//	 0x05    1    Data encoding (1 = LSB, 2 = MSB)
//	 0x06    1    Identification version
//	 0x07    1    OS/ABI
const (
	EhdrClassOffset = 0x04
	EhdrDataOffset  = 0x05

	// Class64 marks a 64-bit image; Class32 a 32-bit one.
	Class32 = 1
	Class64 = 2

	// Data2LSB marks little-endian field encoding; Data2MSB big-endian.
	Data2LSB = 1
	Data2MSB = 2
)

// Fixed header field offsets past e_ident. All multi-byte fields are stored
// little-endian.
//
//	Offset  Size  Description
//	------  ----  -------------------------------------
//	 0x10    2    Object file type
//	 0x12    2    Machine
//	 0x14    4    File version
//	 0x18    8    Entry point virtual address
//	 0x20    8    Program-header table file offset
//	 0x28    8    Section-header table file offset
//	 0x30    4    Processor-specific flags
//	 0x34    2    Header size (e_ehsize)
//	 0x36    2    Program-header entry size
//	 0x38    2    Program-header entry count
//	 0x3A    2    Section-header entry size
//	 0x3C    2    Section-header entry count
//	 0x3E    2    Index of the section-name string table
const (
	EhdrTypeOffset      = 0x10
	EhdrMachineOffset   = 0x12
	EhdrVersionOffset   = 0x14
	EhdrEntryOffset     = 0x18
	EhdrPhOffOffset     = 0x20
	EhdrShOffOffset     = 0x28
	EhdrFlagsOffset     = 0x30
	EhdrEhSizeOffset    = 0x34
	EhdrPhEntSizeOffset = 0x36
	EhdrPhNumOffset     = 0x38
	EhdrShEntSizeOffset = 0x3A
	EhdrShNumOffset     = 0x3C
	EhdrShStrNdxOffset  = 0x3E
)

// Program-header entry field offsets (ELF64 ordering: flags precede the
// file offset, unlike ELF32).
const (
	PhdrTypeOffset     = 0x00 // 4
	PhdrFlagsOffset    = 0x04 // 4
	PhdrOffOffset      = 0x08 // 8
	PhdrVAddrOffset    = 0x10 // 8
	PhdrPAddrOffset    = 0x18 // 8
	PhdrFileSizeOffset = 0x20 // 8
	PhdrMemSizeOffset  = 0x28 // 8
	PhdrAlignOffset    = 0x30 // 8
)

// Section-header entry field offsets.
const (
	ShdrNameOffset      = 0x00 // 4, byte offset into the section-name table
	ShdrTypeOffset      = 0x04 // 4
	ShdrFlagsOffset     = 0x08 // 8
	ShdrAddrOffset      = 0x10 // 8
	ShdrOffOffset       = 0x18 // 8
	ShdrSizeOffset      = 0x20 // 8
	ShdrLinkOffset      = 0x28 // 4
	ShdrInfoOffset      = 0x2C // 4
	ShdrAddrAlignOffset = 0x30 // 8
	ShdrEntSizeOffset   = 0x38 // 8
)

// Section types (sh_type).
const (
	SHTNull        = 0  // unused entry, no content
	SHTProgbits    = 1  // program-defined contents
	SHTSymtab      = 2  // symbol table
	SHTStrtab      = 3  // string table
	SHTRela        = 4  // relocations with addends
	SHTHash        = 5  // symbol hash table
	SHTDynamic     = 6  // dynamic-linking information
	SHTNote        = 7  // notes
	SHTNobits      = 8  // occupies memory but no file bytes
	SHTRel         = 9  // relocations without addends
	SHTShlib       = 10 // reserved
	SHTDynsym      = 11 // dynamic-linker symbol table
	SHTInitArray   = 14
	SHTFiniArray   = 15
	SHTPreinitArr  = 16
	SHTGroup       = 17
	SHTSymtabShndx = 18

	SHTGNUHash    = 0x6ffffff6
	SHTGNUVerdef  = 0x6ffffffd
	SHTGNUVerneed = 0x6ffffffe
	SHTGNUVersym  = 0x6fffffff
)

// Section flags (sh_flags).
const (
	SHFWrite           = 0x1
	SHFAlloc           = 0x2
	SHFExecinstr       = 0x4
	SHFMerge           = 0x10
	SHFStrings         = 0x20
	SHFInfoLink        = 0x40
	SHFLinkOrder       = 0x80
	SHFOSNonconforming = 0x100
	SHFGroup           = 0x200
	SHFTLS             = 0x400
	SHFCompressed      = 0x800
)

// Segment types (p_type).
const (
	PTNull    = 0
	PTLoad    = 1
	PTDynamic = 2
	PTInterp  = 3
	PTNote    = 4
	PTShlib   = 5
	PTPhdr    = 6
	PTTLS     = 7

	PTGNUEhFrame  = 0x6474e550
	PTGNUStack    = 0x6474e551
	PTGNURelro    = 0x6474e552
	PTGNUProperty = 0x6474e553
)

// Segment flag bits (p_flags).
const (
	PFExec  = 0x1
	PFWrite = 0x2
	PFRead  = 0x4
)

// Object file types (e_type).
const (
	ETNone = 0
	ETRel  = 1
	ETExec = 2
	ETDyn  = 3
	ETCore = 4
)
