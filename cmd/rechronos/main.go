// Command rechronos is the CLI entrypoint for the reChronos file renamer.
//
// It parses flags, validates configuration, and dispatches to the rename
// pipeline, the plan preview, the rollback engine, or target diagnostics.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nminhducit/rechronos/internal/check"
	"github.com/nminhducit/rechronos/internal/config"
	"github.com/nminhducit/rechronos/internal/display"
	"github.com/nminhducit/rechronos/internal/journal"
	"github.com/nminhducit/rechronos/internal/logging"
	"github.com/nminhducit/rechronos/internal/pipeline"
	"github.com/nminhducit/rechronos/internal/rollback"
)

// Exit statuses. Per-file failures and a missing target are distinguished
// so callers can tell a partial batch from a misdirected one.
const (
	exitOK        = 0
	exitPartial   = 1 // Batch completed with per-file errors.
	exitBadTarget = 2 // Target directory or mapping log missing/unreadable.
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build", these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Bootstrap: the logger doesn't exist yet, so errors go directly to
	// stderr via fmt. Once NewLogger succeeds, all output goes through the
	// logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "rechronos: %v\n", err)
		return exitPartial
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "rechronos: %v\n", err)
		return exitPartial
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rechronos: %v\n", err)
		return exitPartial
	}
	defer log.Close()

	display.PrintBanner()
	log.Info("=== reChronos v%s (%s) ===", version, commit)

	switch cfg.Command {
	case config.CommandCheck:
		if err := check.Run(&cfg, log); err != nil {
			return exitBadTarget
		}
		return exitOK

	case config.CommandPreview:
		stats, err := pipeline.Preview(&cfg, log)
		if err != nil {
			log.Error("%v", err)
			return exitBadTarget
		}
		if !stats.Clean() {
			return exitPartial
		}
		return exitOK

	case config.CommandRename:
		if cfg.DryRun {
			log.Warn("DRY RUN — plan is journaled but no files move")
		}
		stats, err := pipeline.Run(&cfg, log)
		if err != nil {
			log.Error("%v", err)
			if errors.Is(err, pipeline.ErrNoTarget) {
				return exitBadTarget
			}
			return exitPartial
		}
		if !stats.Clean() {
			return exitPartial
		}
		return exitOK

	case config.CommandRollback:
		stats, err := rollback.Run(log, cfg.Target, cfg.BatchID)
		if err != nil {
			log.Error("%v", err)
			if errors.Is(err, journal.ErrNoLog) {
				return exitBadTarget
			}
			return exitPartial
		}
		if !stats.Clean() {
			return exitPartial
		}
		return exitOK
	}

	// Unreachable: Validate rejects unknown commands.
	return exitPartial
}
