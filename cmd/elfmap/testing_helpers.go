package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/elfmap/internal/elftest"
	"github.com/joshuapare/elfmap/internal/format"
)

// testBinaryPath writes a small shared-object image into a temp directory
// and returns its path. The image has one LOAD segment and one .text
// section, so the file view holds seven regions over 1280 bytes and the
// memory view one region ending at 0x1100.
func testBinaryPath(t *testing.T) string {
	t.Helper()

	img := elftest.NewBuilder().
		Entry(0x1040).
		Segment(elftest.Segment{
			Type:     format.PTLoad,
			Flags:    format.PFRead | format.PFExec,
			FileSize: 0x500,
			MemSize:  0x500,
			Align:    0x1000,
		}).
		Section(elftest.Section{
			Name:      ".text",
			Type:      format.SHTProgbits,
			Flags:     format.SHFAlloc | format.SHFExecinstr,
			Addr:      0x1000,
			Off:       0x400,
			Size:      0x100,
			AddrAlign: 16,
		}).
		Build()

	path := filepath.Join(t.TempDir(), "sample.so")
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		t.Fatalf("failed to write test binary: %v", err)
	}
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
