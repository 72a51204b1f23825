package elf

import "github.com/joshuapare/elfmap/internal/format"

// ProgramHeader is one decoded record of the program-header table.
type ProgramHeader struct {
	Type     uint32
	Flags    uint32
	Off      uint64
	VAddr    uint64
	PAddr    uint64
	FileSize uint64
	MemSize  uint64
	Align    uint64
}

// parseProgramHeaders bounds-checks the program-header table declared by h
// and decodes every record. A zero PhNum is legal and yields no segments.
func parseProgramHeaders(data []byte, h *Header) ([]ProgramHeader, error) {
	if h.PhNum == 0 {
		return nil, nil
	}
	if err := checkTable("program header table", h.PhOff, h.PhNum, h.PhEntSize,
		format.PhdrSize, len(data)); err != nil {
		return nil, err
	}

	phs := make([]ProgramHeader, h.PhNum)
	for i := range phs {
		base := int(h.PhOff) + i*int(h.PhEntSize)
		phs[i] = ProgramHeader{
			Type:     format.ReadU32(data, base+format.PhdrTypeOffset),
			Flags:    format.ReadU32(data, base+format.PhdrFlagsOffset),
			Off:      format.ReadU64(data, base+format.PhdrOffOffset),
			VAddr:    format.ReadU64(data, base+format.PhdrVAddrOffset),
			PAddr:    format.ReadU64(data, base+format.PhdrPAddrOffset),
			FileSize: format.ReadU64(data, base+format.PhdrFileSizeOffset),
			MemSize:  format.ReadU64(data, base+format.PhdrMemSizeOffset),
			Align:    format.ReadU64(data, base+format.PhdrAlignOffset),
		}
	}
	return phs, nil
}
