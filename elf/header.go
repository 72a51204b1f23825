package elf

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/elfmap/internal/format"
)

// Header holds the decoded fixed ELF64 header fields. It is a plain value;
// nothing in it aliases the parsed buffer.
type Header struct {
	Type      uint16 // object file type (e_type)
	Machine   uint16 // architecture (e_machine)
	Version   uint32 // file version (e_version)
	Entry     uint64 // entry point virtual address
	PhOff     uint64 // program-header table file offset
	ShOff     uint64 // section-header table file offset
	Flags     uint32 // processor-specific flags
	EhSize    uint16 // size of this header on disk
	PhEntSize uint16 // program-header entry size
	PhNum     uint16 // program-header entry count
	ShEntSize uint16 // section-header entry size
	ShNum     uint16 // section-header entry count
	ShStrNdx  uint16 // index of the section-name string table
}

// isELF is a fast check for the leading ELF identification bytes.
func isELF(b []byte) bool {
	if len(b) < format.MagicSize {
		return false
	}
	return bytes.Equal(b[:format.MagicSize], format.Magic)
}

// ParseHeader validates the identification bytes and decodes the fixed
// header. It fails with ErrBadMagic when the signature is missing or the
// identification is not 64-bit little-endian, and with ErrTruncatedHeader
// when the buffer cannot hold the fixed header. Pure: no side effects, no
// reads past the fixed header.
func ParseHeader(b []byte) (*Header, error) {
	if !isELF(b) {
		return nil, ErrBadMagic
	}
	if len(b) < format.EhdrSize {
		return nil, ErrTruncatedHeader
	}
	if class := b[format.EhdrClassOffset]; class != format.Class64 {
		return nil, fmt.Errorf("%w: class %d is not 64-bit", ErrBadMagic, class)
	}
	if enc := b[format.EhdrDataOffset]; enc != format.Data2LSB {
		return nil, fmt.Errorf("%w: encoding %d is not little-endian", ErrBadMagic, enc)
	}

	return &Header{
		Type:      format.ReadU16(b, format.EhdrTypeOffset),
		Machine:   format.ReadU16(b, format.EhdrMachineOffset),
		Version:   format.ReadU32(b, format.EhdrVersionOffset),
		Entry:     format.ReadU64(b, format.EhdrEntryOffset),
		PhOff:     format.ReadU64(b, format.EhdrPhOffOffset),
		ShOff:     format.ReadU64(b, format.EhdrShOffOffset),
		Flags:     format.ReadU32(b, format.EhdrFlagsOffset),
		EhSize:    format.ReadU16(b, format.EhdrEhSizeOffset),
		PhEntSize: format.ReadU16(b, format.EhdrPhEntSizeOffset),
		PhNum:     format.ReadU16(b, format.EhdrPhNumOffset),
		ShEntSize: format.ReadU16(b, format.EhdrShEntSizeOffset),
		ShNum:     format.ReadU16(b, format.EhdrShNumOffset),
		ShStrNdx:  format.ReadU16(b, format.EhdrShStrNdxOffset),
	}, nil
}
