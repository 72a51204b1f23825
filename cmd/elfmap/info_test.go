package main

import (
	"encoding/json"
	"testing"
)

func TestInfoText(t *testing.T) {
	path := testBinaryPath(t)

	out, err := captureOutput(t, func() error {
		return runInfo([]string{path})
	})
	if err != nil {
		t.Fatalf("runInfo failed: %v", err)
	}

	assertContains(t, out, []string{
		"File: " + path,
		"Class: ELF64, little-endian",
		"Type: DYN (x86-64)",
		"Entry: 0x1040",
		"Program headers: 1 at 0x40",
		"Section headers: 3 at 0x78",
		"1,280 bytes in 7 regions",
		"Memory image: 4,352 bytes in 1 regions",
	})
}

func TestInfoJSON(t *testing.T) {
	path := testBinaryPath(t)
	jsonOut = true
	defer func() { jsonOut = false }()

	out, err := captureOutput(t, func() error {
		return runInfo([]string{path})
	})
	if err != nil {
		t.Fatalf("runInfo failed: %v", err)
	}
	assertJSON(t, out)

	var rep infoReport
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if rep.Type != "DYN" {
		t.Errorf("Type = %q, want DYN", rep.Type)
	}
	if rep.Machine != "x86-64" {
		t.Errorf("Machine = %q, want x86-64", rep.Machine)
	}
	if rep.Entry != "0x1040" {
		t.Errorf("Entry = %q, want 0x1040", rep.Entry)
	}
	if rep.ProgramHeaders != 1 || rep.SectionHeaders != 3 {
		t.Errorf("table counts = %d/%d, want 1/3", rep.ProgramHeaders, rep.SectionHeaders)
	}
	if rep.FileSize != 1280 || rep.FileRegions != 7 {
		t.Errorf("file view = %d bytes in %d regions, want 1280 in 7", rep.FileSize, rep.FileRegions)
	}
	if rep.MemorySize != 4352 || rep.MemoryRegions != 1 {
		t.Errorf("memory view = %d bytes in %d regions, want 4352 in 1", rep.MemorySize, rep.MemoryRegions)
	}
}

func TestInfoMultipleFilesJSON(t *testing.T) {
	first := testBinaryPath(t)
	second := testBinaryPath(t)
	jsonOut = true
	defer func() { jsonOut = false }()

	out, err := captureOutput(t, func() error {
		return runInfo([]string{first, second})
	})
	if err != nil {
		t.Fatalf("runInfo failed: %v", err)
	}

	var reps []infoReport
	if err := json.Unmarshal([]byte(out), &reps); err != nil {
		t.Fatalf("failed to decode reports: %v", err)
	}
	if len(reps) != 2 {
		t.Fatalf("got %d reports, want 2", len(reps))
	}
	if reps[0].File != first || reps[1].File != second {
		t.Errorf("reports out of argument order: %q, %q", reps[0].File, reps[1].File)
	}
}

func TestInfoMissingFile(t *testing.T) {
	_, err := captureOutput(t, func() error {
		return runInfo([]string{"/nonexistent/missing.so"})
	})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
