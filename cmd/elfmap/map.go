package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/joshuapare/elfmap/elf"
	"github.com/joshuapare/elfmap/elf/printer"
)

var (
	mapWidth int
	mapSpace string
)

func init() {
	cmd := newMapCmd()
	cmd.Flags().IntVar(&mapWidth, "width", 0, "Byte map width in columns (0 = terminal width)")
	cmd.Flags().StringVar(&mapSpace, "space", "both", "Address space to map (file, memory, both)")
	rootCmd.AddCommand(cmd)
}

func newMapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "map <binary>",
		Short: "Draw a proportional byte map of a binary",
		Long: `The map command draws each address space as rows of fixed-width cells,
one row per nesting level, so the relative size and position of every
region is visible at a glance.

Example:
  elfmap map /usr/lib/libz.so.1
  elfmap map a.out --space=memory --width 64`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(args)
		},
	}
}

func runMap(args []string) error {
	if err := validateSpace(mapSpace); err != nil {
		return err
	}

	printVerbose("Opening: %s\n", args[0])
	f, err := elf.Open(args[0])
	if err != nil {
		return err
	}

	opts := printerOptions(printer.FormatMap)
	opts.Width = resolveWidth()
	return printSpace(printer.New(os.Stdout, opts), f, mapSpace)
}

// resolveWidth picks the map width from the flag, then config, then the
// terminal.
func resolveWidth() int {
	if mapWidth > 0 {
		return mapWidth
	}
	if cfg.Output.Width > 0 {
		return cfg.Output.Width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 4 {
		// Leave room for the row border columns.
		return w - 2
	}
	return printer.DefaultMapWidth
}
