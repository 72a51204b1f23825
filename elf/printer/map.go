package printer

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/joshuapare/elfmap/elf"
	"github.com/joshuapare/elfmap/region"
)

// Byte-map cell markers, one per region kind.
var kindMarkers = map[region.Kind]byte{
	region.KindHeader:             'H',
	region.KindProgramHeaderEntry: 'P',
	region.KindSectionHeaderEntry: 'S',
	region.KindSectionContent:     '#',
}

const mapGap = '.'

const mapLegend = "H header  P program header  S section header  # section content  . gap"

// printTreeMap renders a tree as a proportional byte map: one row per tree
// level, each region covering columns in proportion to its share of the
// space, nested regions on the rows below their parents.
func (p *Printer) printTreeMap(t *region.Tree) error {
	width := p.opts.Width
	if width <= 0 {
		width = DefaultMapWidth
	}

	fmt.Fprintf(p.writer, "%s (%s)\n", t.Root.Name, humanize.Bytes(t.TotalSize))
	if t.TotalSize == 0 || len(t.Root.Children) == 0 {
		fmt.Fprintln(p.writer, "(empty)")
		return nil
	}

	var levels [][]*region.Region
	t.Root.Walk(func(r *region.Region, depth int) {
		if depth == 0 {
			return
		}
		if p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth {
			return
		}
		for len(levels) < depth {
			levels = append(levels, nil)
		}
		levels[depth-1] = append(levels[depth-1], r)
	})

	for _, regs := range levels {
		row := bytes.Repeat([]byte{mapGap}, width)
		for _, r := range regs {
			from, to := mapSpan(r.Start, r.End, t.TotalSize, width)
			marker, ok := kindMarkers[r.Kind]
			if !ok {
				marker = '?'
			}
			for i := from; i < to; i++ {
				row[i] = marker
			}
		}
		fmt.Fprintf(p.writer, "|%s|\n", row)
	}

	fmt.Fprintln(p.writer, mapLegend)
	return nil
}

// printFileMap renders both spaces' maps, separated by a blank line.
func (p *Printer) printFileMap(f *elf.File) error {
	if err := p.printTreeMap(f.FileTree); err != nil {
		return err
	}
	fmt.Fprintln(p.writer)
	return p.printTreeMap(f.VirtualTree)
}

// mapSpan scales a byte range onto [0, width) columns, keeping at least one
// column for any range.
func mapSpan(start, end, total uint64, width int) (int, int) {
	from := int(float64(start) / float64(total) * float64(width))
	to := int(float64(end) / float64(total) * float64(width))
	if from >= width {
		from = width - 1
	}
	if to > width {
		to = width
	}
	if to <= from {
		to = from + 1
	}
	return from, to
}
