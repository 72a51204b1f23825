package elf

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fatal parse failure classes. Callers match them
// with errors.Is.
var (
	// ErrBadMagic means the identification bytes are absent or do not
	// describe a 64-bit little-endian ELF image.
	ErrBadMagic = errors.New("elf: bad magic")

	// ErrTruncatedHeader means the buffer is shorter than the fixed header.
	ErrTruncatedHeader = errors.New("elf: truncated header")

	// ErrMalformedTableBounds means a header-declared offset/count/entry-size
	// combination would read outside the buffer.
	ErrMalformedTableBounds = errors.New("elf: malformed table bounds")
)

// BoundsError carries the diagnostic context of a failed table bounds
// check. It unwraps to ErrMalformedTableBounds.
type BoundsError struct {
	Table    string // table that failed the check
	Offset   uint64 // file offset the header declared
	Length   uint64 // byte length the header declared
	FileSize int    // actual buffer length
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("elf: malformed table bounds: %s (offset 0x%x, length %d, file %d bytes)",
		e.Table, e.Offset, e.Length, e.FileSize)
}

func (e *BoundsError) Unwrap() error { return ErrMalformedTableBounds }

// checkTable validates that count records of entSize bytes each, starting
// at off, lie inside a buffer of bufLen bytes. Records narrower than
// recordSize cannot be decoded, so an undersized entry size fails the
// check too. A zero count always passes: an absent table reads nothing.
func checkTable(table string, off uint64, count, entSize uint16, recordSize, bufLen int) error {
	if count == 0 {
		return nil
	}
	length := uint64(count) * uint64(entSize)
	if int(entSize) < recordSize || off > uint64(bufLen) || length > uint64(bufLen)-off {
		return &BoundsError{Table: table, Offset: off, Length: length, FileSize: bufLen}
	}
	return nil
}
