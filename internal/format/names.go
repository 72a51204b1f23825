package format

import (
	"fmt"
	"strings"
)

var sectionTypeNames = map[uint32]string{
	SHTNull:        "NULL",
	SHTProgbits:    "PROGBITS",
	SHTSymtab:      "SYMTAB",
	SHTStrtab:      "STRTAB",
	SHTRela:        "RELA",
	SHTHash:        "HASH",
	SHTDynamic:     "DYNAMIC",
	SHTNote:        "NOTE",
	SHTNobits:      "NOBITS",
	SHTRel:         "REL",
	SHTShlib:       "SHLIB",
	SHTDynsym:      "DYNSYM",
	SHTInitArray:   "INIT_ARRAY",
	SHTFiniArray:   "FINI_ARRAY",
	SHTPreinitArr:  "PREINIT_ARRAY",
	SHTGroup:       "GROUP",
	SHTSymtabShndx: "SYMTAB_SHNDX",
	SHTGNUHash:     "GNU_HASH",
	SHTGNUVerdef:   "GNU_VERDEF",
	SHTGNUVerneed:  "GNU_VERNEED",
	SHTGNUVersym:   "GNU_VERSYM",
}

// SectionTypeName returns the conventional name for a section type, or a
// hex form for values outside the known set.
func SectionTypeName(t uint32) string {
	if name, ok := sectionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(0x%X)", t)
}

var sectionFlagBits = []struct {
	bit  uint64
	name string
}{
	{SHFWrite, "WRITE"},
	{SHFAlloc, "ALLOC"},
	{SHFExecinstr, "EXECINSTR"},
	{SHFMerge, "MERGE"},
	{SHFStrings, "STRINGS"},
	{SHFInfoLink, "INFO_LINK"},
	{SHFLinkOrder, "LINK_ORDER"},
	{SHFOSNonconforming, "OS_NONCONFORMING"},
	{SHFGroup, "GROUP"},
	{SHFTLS, "TLS"},
	{SHFCompressed, "COMPRESSED"},
}

// SectionFlagNames renders sh_flags as a pipe-separated list of flag names.
// Bits outside the known set are kept as a single trailing hex group, and a
// zero value renders as NONE.
func SectionFlagNames(f uint64) string {
	if f == 0 {
		return "NONE"
	}
	var parts []string
	rest := f
	for _, fb := range sectionFlagBits {
		if rest&fb.bit != 0 {
			parts = append(parts, fb.name)
			rest &^= fb.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%X", rest))
	}
	return strings.Join(parts, "|")
}

var segmentTypeNames = map[uint32]string{
	PTNull:        "NULL",
	PTLoad:        "LOAD",
	PTDynamic:     "DYNAMIC",
	PTInterp:      "INTERP",
	PTNote:        "NOTE",
	PTShlib:       "SHLIB",
	PTPhdr:        "PHDR",
	PTTLS:         "TLS",
	PTGNUEhFrame:  "GNU_EH_FRAME",
	PTGNUStack:    "GNU_STACK",
	PTGNURelro:    "GNU_RELRO",
	PTGNUProperty: "GNU_PROPERTY",
}

// SegmentTypeName returns the conventional name for a segment type, or a
// hex form for values outside the known set.
func SegmentTypeName(t uint32) string {
	if name, ok := segmentTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(0x%X)", t)
}

// SegmentFlagString renders p_flags in the usual R/W/E letter form, e.g.
// "RE" for a text segment. A zero value renders as NONE.
func SegmentFlagString(f uint32) string {
	if f == 0 {
		return "NONE"
	}
	var sb strings.Builder
	if f&PFRead != 0 {
		sb.WriteByte('R')
	}
	if f&PFWrite != 0 {
		sb.WriteByte('W')
	}
	if f&PFExec != 0 {
		sb.WriteByte('E')
	}
	if rest := f &^ (PFRead | PFWrite | PFExec); rest != 0 {
		fmt.Fprintf(&sb, "+0x%X", rest)
	}
	return sb.String()
}

var machineNames = map[uint16]string{
	0x02:  "SPARC",
	0x03:  "x86",
	0x08:  "MIPS",
	0x14:  "PowerPC",
	0x15:  "PowerPC64",
	0x16:  "S390",
	0x28:  "ARM",
	0x32:  "IA-64",
	0x3E:  "x86-64",
	0xB7:  "AArch64",
	0xF3:  "RISC-V",
	0x101: "LoongArch",
}

// MachineName returns the architecture name for e_machine, or a hex form
// for values outside the known set.
func MachineName(m uint16) string {
	if name, ok := machineNames[m]; ok {
		return name
	}
	return fmt.Sprintf("unknown(0x%X)", m)
}

var objectTypeNames = map[uint16]string{
	ETNone: "NONE",
	ETRel:  "REL",
	ETExec: "EXEC",
	ETDyn:  "DYN",
	ETCore: "CORE",
}

// ObjectTypeName returns the conventional name for e_type, or a hex form
// for values outside the known set.
func ObjectTypeName(t uint16) string {
	if name, ok := objectTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(0x%X)", t)
}
