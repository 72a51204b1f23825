//go:build !linux && !darwin

package elf

import (
	"fmt"
	"os"
	"path/filepath"
)

// Open reads the file at path into memory and parses it. The file's base
// name becomes the display name.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("elf: empty file: %s", path)
	}
	return Inspect(filepath.Base(path), data)
}
