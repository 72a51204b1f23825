package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joshuapare/elfmap/internal/logger"
	"github.com/joshuapare/elfmap/internal/server"
)

var (
	serveAddr  string
	serveRoot  string
	serveWatch bool
)

func init() {
	cmd := newServeCmd()
	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8950)")
	cmd.Flags().StringVar(&serveRoot, "root", "", "Directory to serve binaries from (default from config)")
	cmd.Flags().BoolVar(&serveWatch, "watch", false, "Watch the root directory and push reload events")
	rootCmd.AddCommand(cmd)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `The serve command runs an HTTP API that parses binaries under a root
directory on demand and streams layout envelopes to visualizers. With
--watch, connected clients are told to reload whenever a binary under
the root changes.

Example:
  elfmap serve --root ./build
  elfmap serve --addr :9000 --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	root := cfg.Server.Root
	if serveRoot != "" {
		root = serveRoot
	}
	watch := cfg.Server.Watch
	if cmd.Flags().Changed("watch") {
		watch = serveWatch
	}

	// Foreground service, so log to stderr instead of the log directory.
	level := cfg.Log.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	if err := logger.Init(logger.Options{Enabled: !quiet, Stderr: true, Level: level}); err != nil {
		return err
	}

	s, err := server.New(server.Config{Addr: addr, Root: root, Watch: watch, Log: logger.L})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printInfo("Serving %s on %s\n", root, addr)
	return s.Run(ctx)
}
