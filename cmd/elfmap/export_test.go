package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestExportJSONToFile(t *testing.T) {
	path := testBinaryPath(t)
	dest := filepath.Join(t.TempDir(), "layout.json")
	exportOut = dest
	defer func() { exportOut = "" }()

	if _, err := captureOutput(t, func() error {
		return runExport([]string{path})
	}); err != nil {
		t.Fatalf("runExport failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	assertJSON(t, string(data))
	assertContains(t, string(data), []string{
		`"sample.so"`, `"ELF file"`, `"Memory image"`,
	})
}

func TestExportMsgpack(t *testing.T) {
	path := testBinaryPath(t)
	dest := filepath.Join(t.TempDir(), "layout.bin")
	exportOut = dest
	exportFormat = "msgpack"
	defer func() {
		exportOut = ""
		exportFormat = "json"
	}()

	if _, err := captureOutput(t, func() error {
		return runExport([]string{path})
	}); err != nil {
		t.Fatalf("runExport failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}

	var doc struct {
		Name string `msgpack:"name"`
		File struct {
			TotalSize uint64 `msgpack:"totalSize"`
		} `msgpack:"file"`
	}
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if doc.Name != "sample.so" {
		t.Errorf("name = %q, want sample.so", doc.Name)
	}
	if doc.File.TotalSize != 1280 {
		t.Errorf("file total = %d, want 1280", doc.File.TotalSize)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	path := testBinaryPath(t)
	exportFormat = "xml"
	defer func() { exportFormat = "json" }()

	if err := runExport([]string{path}); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}
