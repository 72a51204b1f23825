package elf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenMatchesInspect(t *testing.T) {
	img := buildSample()
	path := filepath.Join(t.TempDir(), "sample.so")
	require.NoError(t, os.WriteFile(path, img.Data, 0o644))

	fromDisk, err := Open(path)
	require.NoError(t, err)

	fromMem, err := Inspect("sample.so", img.Data)
	require.NoError(t, err)

	require.Equal(t, "sample.so", fromDisk.Name)
	require.Equal(t, fromMem, fromDisk)
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := Open(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty file")
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestOpenRejectsNonELF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notelf")
	require.NoError(t, os.WriteFile(path, []byte("MZ\x90\x00 definitely not an ELF image"), 0o644))

	_, err := Open(path)
	require.ErrorIs(t, err, ErrBadMagic)
}
