package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wmarlow/caliper"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and extract PMI from incoming STEP files",
	Long: `Watch monitors a directory for created or modified STEP files (.step or
.stp) and runs the extraction on each, writing a result file named
<name>.pmi.json (or .pmi.yaml) next to the source, or into --out when
set. Each run is tagged with its own extraction id in the logs.

Watch runs until interrupted. Extraction failures are logged and do not
stop the loop, so a malformed file cannot take down the watcher.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out")
		output, _ := cmd.Flags().GetString("output")

		if output != "json" && output != "yaml" {
			return fmt.Errorf("unsupported output format %q (want json or yaml)", output)
		}
		if outDir != "" {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return watchDirectory(ctx, args[0], outDir, output)
	},
}

func init() {
	watchCmd.Flags().String("out", "", "directory for result files (default: next to the source file)")
	watchCmd.Flags().String("output", "json", "output format: json or yaml")

	rootCmd.AddCommand(watchCmd)
}

// watchDirectory runs the event loop until ctx is cancelled.
func watchDirectory(ctx context.Context, dir, outDir, format string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	slog.Info("watching for STEP files", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			slog.Info("watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !shouldExtract(event) {
				continue
			}
			slog.Debug("file event", "path", event.Name, "op", event.Op.String())
			extractToFile(event.Name, outDir, format)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

// shouldExtract filters events down to created or written STEP files.
func shouldExtract(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	return isStepFile(event.Name)
}

func isStepFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".step", ".stp":
		return true
	}
	return false
}

// extractToFile runs one extraction and writes the result envelope.
// Failures are logged rather than returned: a partially written or
// malformed file will usually succeed on a later Write event.
func extractToFile(path, outDir, format string) {
	runID := uuid.NewString()
	log := slog.With("extraction_id", runID, "file", path)

	result, warnings, err := caliper.Open(path).PMI()
	if err != nil {
		log.Error("extraction failed", "error", err)
		return
	}
	for _, w := range warnings {
		log.Warn(w.Message, "code", w.Code)
	}

	dest := resultPath(path, outDir, format)
	f, err := os.Create(dest)
	if err != nil {
		log.Error("failed to create result file", "error", err)
		return
	}
	defer f.Close()

	env := envelope{ExtractionID: runID, File: path, Result: result}
	if err := writeEnvelope(f, env, format, true); err != nil {
		log.Error("failed to write result", "error", err)
		return
	}

	log.Info("extracted",
		"dest", dest,
		"dimensions", len(result.Dimensions),
		"tolerances", len(result.GeometricTolerances),
		"datums", len(result.Datums),
		"notes", len(result.Notes),
	)
}

// resultPath derives the result file path for a source file: the source
// name with its extension replaced by .pmi.<format>, placed next to the
// source or in outDir when set.
func resultPath(src, outDir, format string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	name := base + ".pmi." + format

	if outDir != "" {
		return filepath.Join(outDir, name)
	}
	return filepath.Join(filepath.Dir(src), name)
}
