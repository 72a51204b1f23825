package printer

import (
	"io"

	"github.com/joshuapare/elfmap/elf"
	"github.com/joshuapare/elfmap/region"
)

const (
	DefaultIndentSize = 2
	DefaultMaxDepth   = 0
	DefaultMapWidth   = 80
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable indented text.
	FormatText Format = "text"

	// FormatJSON outputs a JSON envelope.
	FormatJSON Format = "json"

	// FormatMsgpack outputs the same envelope in MessagePack encoding.
	FormatMsgpack Format = "msgpack"

	// FormatMap outputs a proportional byte map, one line per tree level.
	FormatMap Format = "map"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json, msgpack, map).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level (text format only).
	// Default: 2
	IndentSize int

	// MaxDepth limits recursion depth (0 = unlimited).
	// Default: 0 (unlimited)
	MaxDepth int

	// Color enables per-kind coloring of region names (text format only).
	// Output through a non-terminal stays plain regardless.
	// Default: true
	Color bool

	// ShowNotes includes the diagnostic and descriptive notes attached to
	// regions (text format only).
	// Default: true
	ShowNotes bool

	// Width is the number of columns a byte map row spans (map format only).
	// Default: 80
	Width int
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:     FormatText,
		IndentSize: DefaultIndentSize,
		MaxDepth:   DefaultMaxDepth,
		Color:      true,
		ShowNotes:  true,
		Width:      DefaultMapWidth,
	}
}

// Printer handles formatted output of region trees.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a new Printer writing to w.
//
// Example:
//
//	f, _ := elf.Open("/usr/lib/libz.so.1")
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintTree(f.FileTree)
func New(w io.Writer, opts Options) *Printer {
	return &Printer{
		writer: w,
		opts:   opts,
	}
}

// PrintTree prints a single region tree.
func (p *Printer) PrintTree(t *region.Tree) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printTreeJSON(t)
	case FormatMsgpack:
		return p.printTreeMsgpack(t)
	case FormatMap:
		return p.printTreeMap(t)
	case FormatText:
		return p.printTreeText(t)
	default:
		return p.printTreeText(t)
	}
}

// PrintFile prints both of a parsed file's trees: the file-offset space
// followed by the virtual address space.
func (p *Printer) PrintFile(f *elf.File) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printFileJSON(f)
	case FormatMsgpack:
		return p.printFileMsgpack(f)
	case FormatMap:
		return p.printFileMap(f)
	case FormatText:
		return p.printFileText(f)
	default:
		return p.printFileText(f)
	}
}
