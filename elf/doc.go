// Package elf parses 64-bit little-endian ELF images into region trees.
//
// # Overview
//
// This package performs a single synchronous pass over an in-memory ELF
// image and decomposes its byte-address space into two hierarchical region
// trees: one over file offsets as stored on disk, and one over virtual
// addresses as the image is mapped at load time. The trees are the final
// artifact; rendering and interaction live in other packages.
//
// # Key Types
//
// The main types provided by this package are:
//
//   - File: the parse result, holding the display name and both trees
//   - Header: the decoded fixed ELF64 header
//   - ProgramHeader, SectionHeader: decoded table records
//   - StringTable: corruption-tolerant resolver for section names
//   - BoundsError: diagnostic context for a failed table bounds check
//
// # File Structure
//
// A 64-bit ELF image consists of:
//
//	[ELF Header - 64B] [Program Header Table] ... sections ... [Section Header Table]
//
// The header declares the placement of both tables; the section-header
// table in turn points at every section's file bytes and load address.
// All such offsets are untrusted and bounds-checked before use.
//
// # Opening a File
//
// The primary entry points are Open and Inspect:
//
//	f, err := elf.Open("/usr/bin/true")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f.FileTree.Root.Walk(func(r *region.Region, depth int) {
//	    fmt.Printf("%*s%s [%d, %d)\n", depth*2, "", r.Name, r.Start, r.End)
//	})
//
// On Unix platforms Open memory-maps the file read-only and releases the
// mapping before returning; nothing in a File aliases the input buffer.
// Inspect accepts an already-materialized byte slice.
//
// # Error Taxonomy
//
// Fatal conditions abort the parse atomically; no partial trees are ever
// returned:
//
//   - ErrBadMagic: identification bytes absent or not 64-bit little-endian ELF
//   - ErrTruncatedHeader: buffer shorter than the fixed header
//   - ErrMalformedTableBounds: a declared table placement escapes the buffer
//
// A section name that cannot be resolved is non-fatal: the region receives
// a placeholder name and a diagnostic note, and parsing continues.
//
// # Dual Spaces
//
// The two trees of one File are independent structures built by two
// separate resolver runs. A section may legitimately appear in only one of
// them: NOBITS sections occupy memory but no file bytes, and unloaded
// sections occupy file bytes but no memory.
package elf
