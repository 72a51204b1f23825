package printer

import (
	"encoding/json"
	"fmt"

	"github.com/joshuapare/elfmap/elf"
	"github.com/joshuapare/elfmap/region"
)

// treeDoc is the export document for one region tree.
type treeDoc struct {
	Name      string         `json:"name" msgpack:"name"`
	TotalSize uint64         `json:"totalSize" msgpack:"totalSize"`
	Root      *region.Region `json:"root" msgpack:"root"`
}

// fileDoc is the export document for a whole file, holding both spaces.
type fileDoc struct {
	Name    string  `json:"name" msgpack:"name"`
	File    treeDoc `json:"file" msgpack:"file"`
	Virtual treeDoc `json:"virtual" msgpack:"virtual"`
}

func newTreeDoc(t *region.Tree) treeDoc {
	return treeDoc{
		Name:      t.Root.Name,
		TotalSize: t.TotalSize,
		Root:      t.Root,
	}
}

func newFileDoc(f *elf.File) fileDoc {
	return fileDoc{
		Name:    f.Name,
		File:    newTreeDoc(f.FileTree),
		Virtual: newTreeDoc(f.VirtualTree),
	}
}

// printTreeJSON prints one tree as an indented JSON document.
func (p *Printer) printTreeJSON(t *region.Tree) error {
	data, err := json.MarshalIndent(newTreeDoc(t), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}

// printFileJSON prints the whole-file envelope as an indented JSON document.
func (p *Printer) printFileJSON(f *elf.File) error {
	data, err := json.MarshalIndent(newFileDoc(f), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}
