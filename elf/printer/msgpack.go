package printer

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/joshuapare/elfmap/elf"
	"github.com/joshuapare/elfmap/region"
)

// printTreeMsgpack writes one tree's export document in MessagePack form.
func (p *Printer) printTreeMsgpack(t *region.Tree) error {
	data, err := msgpack.Marshal(newTreeDoc(t))
	if err != nil {
		return err
	}
	_, err = p.writer.Write(data)
	return err
}

// printFileMsgpack writes the whole-file envelope in MessagePack form.
func (p *Printer) printFileMsgpack(f *elf.File) error {
	data, err := msgpack.Marshal(newFileDoc(f))
	if err != nil {
		return err
	}
	_, err = p.writer.Write(data)
	return err
}
