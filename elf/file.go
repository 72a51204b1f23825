package elf

import (
	"github.com/joshuapare/elfmap/region"
)

// File is the parse result for one binary: the display name, the decoded
// header, and the two independent region trees. A File never aliases the
// buffer it was parsed from and is immutable once built.
type File struct {
	Name   string
	Header Header

	// FileTree decomposes file-offset space; its total size is the length
	// of the parsed buffer.
	FileTree *region.Tree

	// VirtualTree decomposes virtual-memory space; its total size is the
	// highest load address any section reaches.
	VirtualTree *region.Tree
}

// Inspect parses a 64-bit little-endian ELF image and builds both region
// trees. It is a pure function of its inputs: the buffer is only read, and
// identical bytes always produce structurally identical trees. On any fatal
// error no File is returned; partial trees never escape.
func Inspect(name string, data []byte) (*File, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if uint64(h.EhSize) > uint64(len(data)) {
		return nil, &BoundsError{Table: "header", Offset: 0, Length: uint64(h.EhSize), FileSize: len(data)}
	}

	phs, err := parseProgramHeaders(data, h)
	if err != nil {
		return nil, err
	}
	secs, err := parseSectionHeaders(data, h)
	if err != nil {
		return nil, err
	}
	if err := resolveSectionNames(data, h, secs); err != nil {
		return nil, err
	}

	fileRegions := extractFileRegions(len(data), h, phs, secs)
	virtRegions, virtTotal := extractVirtualRegions(secs)

	return &File{
		Name:        name,
		Header:      *h,
		FileTree:    region.BuildTree(fileRootName, fileRegions, uint64(len(data))),
		VirtualTree: region.BuildTree(virtualRootName, virtRegions, virtTotal),
	}, nil
}
