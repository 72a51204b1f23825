package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/elfmap/elf"
	"github.com/joshuapare/elfmap/elf/printer"
)

var (
	treeSpace string
	treeDepth int
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().StringVar(&treeSpace, "space", "both", "Address space to print (file, memory, both)")
	cmd.Flags().IntVar(&treeDepth, "depth", 0, "Maximum nesting depth to print (0 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <binary>...",
		Short: "Print the region tree of each binary",
		Long: `The tree command prints every mapped region as an indented tree, with
nested regions under their containers and diagnostics attached to the
region they describe. With --json each binary prints as one envelope
document.

Example:
  elfmap tree /usr/lib/libz.so.1
  elfmap tree a.out --space=file --depth 2
  elfmap tree a.out b.out --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
}

func runTree(args []string) error {
	if err := validateSpace(treeSpace); err != nil {
		return err
	}

	files, err := parseFiles(context.Background(), args)
	if err != nil {
		return err
	}

	f := printer.FormatText
	if jsonOut {
		f = printer.FormatJSON
	}
	opts := printerOptions(f)
	opts.MaxDepth = treeDepth
	p := printer.New(os.Stdout, opts)

	for i, file := range files {
		if !jsonOut {
			if i > 0 {
				printInfo("\n")
			}
			if len(files) > 1 {
				printInfo("%s:\n", args[i])
			}
		}
		if err := printSpace(p, file, treeSpace); err != nil {
			return err
		}
	}
	return nil
}

// printSpace prints the chosen address space of one parsed binary.
func printSpace(p *printer.Printer, f *elf.File, space string) error {
	switch space {
	case "file":
		return p.PrintTree(f.FileTree)
	case "memory":
		return p.PrintTree(f.VirtualTree)
	default:
		return p.PrintFile(f)
	}
}

func validateSpace(space string) error {
	switch space {
	case "file", "memory", "both":
		return nil
	}
	return fmt.Errorf("unknown space %q (want file, memory, or both)", space)
}
