package elf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringTableLookup(t *testing.T) {
	st := NewStringTable([]byte("\x00.text\x00.data\x00"))

	name, ok := st.Lookup(1)
	require.True(t, ok)
	require.Equal(t, ".text", name)

	name, ok = st.Lookup(7)
	require.True(t, ok)
	require.Equal(t, ".data", name)

	name, ok = st.Lookup(0)
	require.True(t, ok)
	require.Equal(t, "", name)
}

func TestStringTableLookupOutOfBounds(t *testing.T) {
	st := NewStringTable([]byte("\x00.text\x00"))

	name, ok := st.Lookup(99)
	require.False(t, ok)
	require.Equal(t, PlaceholderName, name)

	// The first invalid offset is exactly the table length.
	name, ok = st.Lookup(7)
	require.False(t, ok)
	require.Equal(t, PlaceholderName, name)
}

func TestStringTableLookupMissingTerminator(t *testing.T) {
	st := NewStringTable([]byte("\x00abc"))

	name, ok := st.Lookup(1)
	require.True(t, ok)
	require.Equal(t, "abc", name)
}

func TestStringTableEmpty(t *testing.T) {
	st := NewStringTable(nil)

	name, ok := st.Lookup(0)
	require.False(t, ok)
	require.Equal(t, PlaceholderName, name)
}
