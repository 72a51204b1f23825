package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/elfmap/elf"
	"github.com/joshuapare/elfmap/internal/format"
	"github.com/joshuapare/elfmap/region"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <binary>...",
		Short: "Validate ELF headers and report layout counts",
		Long: `The info command validates each binary's ELF header and displays its
object type, machine, entry point, table placement, and how many layout
regions the file and memory views contain.

Example:
  elfmap info /usr/lib/libz.so.1
  elfmap info a.out b.out --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

// infoReport is one binary's summary and doubles as the JSON shape.
type infoReport struct {
	File           string `json:"file"`
	Type           string `json:"type"`
	Machine        string `json:"machine"`
	Entry          string `json:"entry"`
	ProgramHeaders uint16 `json:"programHeaders"`
	PhOff          string `json:"programHeaderOffset"`
	SectionHeaders uint16 `json:"sectionHeaders"`
	ShOff          string `json:"sectionHeaderOffset"`
	FileSize       uint64 `json:"fileSize"`
	FileRegions    int    `json:"fileRegions"`
	MemorySize     uint64 `json:"memorySize"`
	MemoryRegions  int    `json:"memoryRegions"`
}

func buildReport(path string, f *elf.File) infoReport {
	return infoReport{
		File:           path,
		Type:           format.ObjectTypeName(f.Header.Type),
		Machine:        format.MachineName(f.Header.Machine),
		Entry:          fmt.Sprintf("0x%x", f.Header.Entry),
		ProgramHeaders: f.Header.PhNum,
		PhOff:          fmt.Sprintf("0x%x", f.Header.PhOff),
		SectionHeaders: f.Header.ShNum,
		ShOff:          fmt.Sprintf("0x%x", f.Header.ShOff),
		FileSize:       f.FileTree.TotalSize,
		FileRegions:    countRegions(f.FileTree),
		MemorySize:     f.VirtualTree.TotalSize,
		MemoryRegions:  countRegions(f.VirtualTree),
	}
}

// countRegions counts mapped regions, excluding the synthetic root.
func countRegions(t *region.Tree) int {
	n := 0
	t.Root.Walk(func(*region.Region, int) {
		n++
	})
	return n - 1
}

func runInfo(args []string) error {
	files, err := parseFiles(context.Background(), args)
	if err != nil {
		return err
	}

	reports := make([]infoReport, len(files))
	for i, f := range files {
		reports[i] = buildReport(args[i], f)
	}

	if jsonOut {
		if len(reports) == 1 {
			return printJSON(reports[0])
		}
		return printJSON(reports)
	}

	p := message.NewPrinter(language.English)
	for i, rep := range reports {
		if i > 0 {
			printInfo("\n")
		}
		printInfo("File: %s\n", rep.File)
		printInfo("  Class: ELF64, little-endian\n")
		printInfo("  Type: %s (%s)\n", rep.Type, rep.Machine)
		printInfo("  Entry: %s\n", rep.Entry)
		printInfo("  Program headers: %s at %s\n", p.Sprintf("%d", rep.ProgramHeaders), rep.PhOff)
		printInfo("  Section headers: %s at %s\n", p.Sprintf("%d", rep.SectionHeaders), rep.ShOff)
		printInfo("  File: %s bytes in %s regions\n",
			p.Sprintf("%d", rep.FileSize), p.Sprintf("%d", rep.FileRegions))
		printInfo("  Memory image: %s bytes in %s regions\n",
			p.Sprintf("%d", rep.MemorySize), p.Sprintf("%d", rep.MemoryRegions))
	}
	return nil
}
