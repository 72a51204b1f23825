package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joshuapare/elfmap/elf"
	"github.com/joshuapare/elfmap/region"
)

// ProfileResult represents one parsed binary's measurements.
type ProfileResult struct {
	Path     string
	Size     int64
	Duration time.Duration
	Regions  int
}

var (
	scanDir    = flag.String("dir", "/usr/lib", "Directory to scan for ELF binaries")
	limit      = flag.Int("limit", 0, "Maximum number of binaries to parse (0 = all)")
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()

	results, skipped, err := profileDir(*scanDir, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", *scanDir, err)
		os.Exit(1)
	}

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d binaries (%d non-ELF files skipped)\n", len(results), skipped)
	}

	// Slowest parses first
	sort.Slice(results, func(i, j int) bool {
		return results[i].Duration > results[j].Duration
	})

	report := generateMarkdownReport(results, skipped)

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(report), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		if !*quiet {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
		}
	} else {
		fmt.Fprint(os.Stdout, report)
	}
}

// profileDir parses every regular file under dir, timing each successful
// parse. Files that are not valid ELF64 images are counted, not reported.
func profileDir(dir string, limit int) ([]ProfileResult, int, error) {
	var results []ProfileResult
	skipped := 0

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if limit > 0 && len(results) >= limit {
			return filepath.SkipAll
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		start := time.Now()
		f, err := elf.Open(path)
		if err != nil {
			if errors.Is(err, elf.ErrBadMagic) || errors.Is(err, elf.ErrTruncatedHeader) {
				skipped++
				return nil
			}
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", path, err)
			skipped++
			return nil
		}

		results = append(results, ProfileResult{
			Path:     path,
			Size:     info.Size(),
			Duration: time.Since(start),
			Regions:  countRegions(f),
		})
		return nil
	})
	return results, skipped, err
}

func countRegions(f *elf.File) int {
	n := 0
	count := func(*region.Region, int) { n++ }
	f.FileTree.Root.Walk(count)
	f.VirtualTree.Root.Walk(count)
	return n - 2 // the two synthetic roots
}

func generateMarkdownReport(results []ProfileResult, skipped int) string {
	var b strings.Builder

	b.WriteString("# Inspect Profile\n\n")
	fmt.Fprintf(&b, "Parsed %d binaries, skipped %d non-ELF files.\n\n", len(results), skipped)
	b.WriteString("| Binary | Size (bytes) | Parse time | Regions |\n")
	b.WriteString("|--------|-------------:|-----------:|--------:|\n")

	for _, r := range results {
		fmt.Fprintf(&b, "| %s | %d | %s | %d |\n", r.Path, r.Size, r.Duration, r.Regions)
	}

	var total time.Duration
	var bytes int64
	for _, r := range results {
		total += r.Duration
		bytes += r.Size
	}
	if len(results) > 0 {
		fmt.Fprintf(&b, "\nTotal: %d bytes in %s (%.1f MB/s)\n",
			bytes, total, float64(bytes)/1e6/total.Seconds())
	}

	return b.String()
}
