package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/elfmap/elf"
	"github.com/joshuapare/elfmap/elf/printer"
)

var (
	exportOut    string
	exportFormat string
)

func init() {
	cmd := newExportCmd()
	cmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file path (default stdout)")
	cmd.Flags().StringVar(&exportFormat, "format", "json", "Envelope encoding (json, msgpack)")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <binary>",
		Short: "Export a binary's layout envelope",
		Long: `The export command writes the dual-tree envelope of one binary, holding
the file layout and the memory image side by side, for consumption by
other tools.

Example:
  elfmap export a.out
  elfmap export a.out --format=msgpack --out a.layout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
}

func runExport(args []string) error {
	var pf printer.Format
	switch exportFormat {
	case "json":
		pf = printer.FormatJSON
	case "msgpack":
		pf = printer.FormatMsgpack
	default:
		return fmt.Errorf("unknown export format %q (want json or msgpack)", exportFormat)
	}

	printVerbose("Opening: %s\n", args[0])
	f, err := elf.Open(args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if exportOut != "" {
		out, err = os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOut, err)
		}
		defer out.Close()
	}

	opts := printer.DefaultOptions()
	opts.Format = pf
	if err := printer.New(out, opts).PrintFile(f); err != nil {
		return err
	}
	if exportOut != "" {
		printVerbose("Wrote %s envelope to %s\n", exportFormat, exportOut)
	}
	return nil
}
