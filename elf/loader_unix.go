//go:build linux || darwin

package elf

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"golang.org/x/sys/unix"
)

// Open memory-maps the file at path read-only and parses it. The mapping is
// released before Open returns; the File keeps no reference to it. The
// file's base name becomes the display name.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if st.Size() == 0 {
		return nil, fmt.Errorf("elf: empty file: %s", path)
	}
	size, err := safecast.Conv[int](st.Size())
	if err != nil {
		return nil, fmt.Errorf("elf: %s too large to map: %w", path, err)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("elf: mmap %s: %w", path, err)
	}
	defer func() {
		_ = unix.Munmap(data)
	}()

	return Inspect(filepath.Base(path), data)
}
