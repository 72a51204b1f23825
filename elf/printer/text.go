package printer

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/joshuapare/elfmap/elf"
	"github.com/joshuapare/elfmap/region"
)

var kindColors = map[region.Kind]*color.Color{
	region.KindSyntheticRoot:      color.New(color.Bold),
	region.KindHeader:             color.New(color.FgCyan),
	region.KindProgramHeaderEntry: color.New(color.FgYellow),
	region.KindSectionHeaderEntry: color.New(color.FgBlue),
	region.KindSectionContent:     color.New(color.FgGreen),
}

func (p *Printer) regionName(r *region.Region) string {
	if !p.opts.Color {
		return r.Name
	}
	c, ok := kindColors[r.Kind]
	if !ok {
		return r.Name
	}
	return c.Sprint(r.Name)
}

// printTreeText prints a tree in human-readable text format.
func (p *Printer) printTreeText(t *region.Tree) error {
	return p.printRegionText(t.Root, 0)
}

// printFileText prints both trees, separated by a blank line.
func (p *Printer) printFileText(f *elf.File) error {
	if err := p.printTreeText(f.FileTree); err != nil {
		return err
	}
	fmt.Fprintln(p.writer)
	return p.printTreeText(f.VirtualTree)
}

// printRegionText prints one region line and recurses into its children.
func (p *Printer) printRegionText(r *region.Region, depth int) error {
	if p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth {
		return nil
	}

	indent := strings.Repeat(" ", depth*p.opts.IndentSize)

	fmt.Fprintf(p.writer, "%s[%s] 0x%x..0x%x %s\n",
		indent, p.regionName(r), r.Start, r.End, humanize.Bytes(r.Len()))

	if p.opts.ShowNotes {
		for _, n := range r.Notes {
			fmt.Fprintf(p.writer, "%s  %s: %s\n", indent, n.Label, n.Value)
		}
	}

	for _, child := range r.Children {
		if err := p.printRegionText(child, depth+1); err != nil {
			return err
		}
	}

	return nil
}
