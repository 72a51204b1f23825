package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/joshuapare/elfmap/elf"
	"github.com/joshuapare/elfmap/elf/printer"
	"github.com/joshuapare/elfmap/internal/config"
	"github.com/joshuapare/elfmap/internal/logger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool
	cfgFile string

	// Loaded tool configuration, available to every command.
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "elfmap",
	Short: "Map the byte and memory layout of ELF binaries",
	Long: `elfmap parses ELF64 binaries and reports where every header, table
record, and section lives, both inside the file and in the loaded memory
image. Layouts print as indented trees, JSON or MessagePack envelopes, or
proportional byte maps, and can be served over HTTP to external
visualizers.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadDefault()
		}
		if err != nil {
			return err
		}
		if noColor {
			color.NoColor = true
		}
		return logger.Init(logger.Options{
			Enabled: cfg.Log.Enabled,
			LogDir:  cfg.Log.Dir,
			Level:   cfg.Log.SlogLevel(),
		})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "Config file path (default ~/.elfmap/config.toml)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// useColor reports whether output should be colorized.
func useColor() bool {
	return !noColor && cfg.Output.Color && isTerminal(os.Stdout)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// printerOptions assembles printer options from config and global flags.
func printerOptions(f printer.Format) printer.Options {
	opts := printer.DefaultOptions()
	opts.Format = f
	opts.Color = useColor()
	opts.ShowNotes = cfg.Output.Notes
	if cfg.Output.Width > 0 {
		opts.Width = cfg.Output.Width
	}
	return opts
}

// parseFiles opens every path concurrently, keeping results in argument
// order.
func parseFiles(ctx context.Context, paths []string) ([]*elf.File, error) {
	files := make([]*elf.File, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		i, path := i, path
		printVerbose("Opening: %s\n", path)
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			f, err := elf.Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			files[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
