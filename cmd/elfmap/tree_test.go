package main

import (
	"encoding/json"
	"testing"
)

func TestTreeCommand(t *testing.T) {
	path := testBinaryPath(t)

	tests := []struct {
		name        string
		space       string
		depth       int
		wantContain []string
		wantMissing []string
	}{
		{
			name:  "both spaces",
			space: "both",
			wantContain: []string{
				"[ELF file]", "[Memory image]", "[ELF Header]", "[.text]",
			},
		},
		{
			name:        "file space only",
			space:       "file",
			wantContain: []string{"[ELF file]", "[ELF Header]", "[.text]"},
			wantMissing: []string{"[Memory image]"},
		},
		{
			name:        "memory space only",
			space:       "memory",
			wantContain: []string{"[Memory image]", "[.text]"},
			wantMissing: []string{"[ELF file]", "[ELF Header]"},
		},
		{
			name:        "depth limits nesting",
			space:       "file",
			depth:       1,
			wantContain: []string{"[ELF file]"},
			wantMissing: []string{"[ELF Header]", "[.text]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			treeSpace = tt.space
			treeDepth = tt.depth
			defer func() {
				treeSpace = "both"
				treeDepth = 0
			}()

			out, err := captureOutput(t, func() error {
				return runTree([]string{path})
			})
			if err != nil {
				t.Fatalf("runTree failed: %v", err)
			}
			assertContains(t, out, tt.wantContain)
			assertNotContains(t, out, tt.wantMissing)
		})
	}
}

func TestTreeJSON(t *testing.T) {
	path := testBinaryPath(t)
	jsonOut = true
	defer func() { jsonOut = false }()

	out, err := captureOutput(t, func() error {
		return runTree([]string{path})
	})
	if err != nil {
		t.Fatalf("runTree failed: %v", err)
	}
	assertJSON(t, out)

	var doc struct {
		Name string `json:"name"`
		File struct {
			Name      string `json:"name"`
			TotalSize uint64 `json:"totalSize"`
		} `json:"file"`
		Virtual struct {
			Name      string `json:"name"`
			TotalSize uint64 `json:"totalSize"`
		} `json:"virtual"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if doc.Name != "sample.so" {
		t.Errorf("name = %q, want sample.so", doc.Name)
	}
	if doc.File.Name != "ELF file" || doc.File.TotalSize != 1280 {
		t.Errorf("file tree = %q/%d, want ELF file/1280", doc.File.Name, doc.File.TotalSize)
	}
	if doc.Virtual.Name != "Memory image" || doc.Virtual.TotalSize != 4352 {
		t.Errorf("virtual tree = %q/%d, want Memory image/4352", doc.Virtual.Name, doc.Virtual.TotalSize)
	}
}

func TestTreeRejectsUnknownSpace(t *testing.T) {
	path := testBinaryPath(t)
	treeSpace = "registers"
	defer func() { treeSpace = "both" }()

	if err := runTree([]string{path}); err == nil {
		t.Fatal("expected an error for an unknown space")
	}
}
