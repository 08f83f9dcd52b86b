// Package pipeline orchestrates file discovery, plan building, execution,
// and batch summary reporting.
package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nminhducit/rechronos/internal/config"
	"github.com/nminhducit/rechronos/internal/display"
	"github.com/nminhducit/rechronos/internal/journal"
	"github.com/nminhducit/rechronos/internal/logging"
	"github.com/nminhducit/rechronos/internal/metadata"
	"github.com/nminhducit/rechronos/internal/naming"
	"github.com/nminhducit/rechronos/internal/planner"
)

// ErrNoTarget is returned when the target directory does not exist or
// cannot be read. Callers map it to a distinct exit status.
var ErrNoTarget = errors.New("target directory not found")

// Run is the top-level rename entry point: discover files, build the plan,
// apply it (or journal it only, under --dry-run), and report stats.
func Run(cfg *config.Config, log *logging.Logger) (RunStats, error) {
	var stats RunStats

	plan, err := buildPlan(cfg, log, &stats)
	if err != nil {
		return stats, err
	}
	if stats.Found == 0 {
		log.Warn("No eligible files found in %s", cfg.Target)
		return stats, nil
	}

	display.PreviewPlan(plan.Entries, cfg.PreviewLimit)

	logPath := mapLogPath(cfg)
	w, err := journal.OpenWriter(logPath)
	if err != nil {
		return stats, err
	}
	defer w.Close()

	batchID := journal.NewBatchID(time.Now(), cfg.DryRun)
	log.Info("Batch %s → %s", batchID, logPath)

	// Planning failures are part of the batch record too.
	for _, fe := range plan.Errors {
		log.Error("Cannot plan %s: %v", filepath.Base(fe.Path), fe.Err)
		rec := journal.Record{
			BatchID:   batchID,
			Timestamp: time.Now(),
			Src:       fe.Path,
			Action:    journal.ActionError,
		}
		if err := w.Append(rec); err != nil {
			return stats, err
		}
	}

	if err := Execute(log, w, batchID, plan.Entries, cfg.DryRun, &stats); err != nil {
		return stats, err
	}

	logSummary(cfg, log, &stats)
	return stats, nil
}

// Preview builds and prints the plan without journaling or renaming.
func Preview(cfg *config.Config, log *logging.Logger) (RunStats, error) {
	var stats RunStats

	plan, err := buildPlan(cfg, log, &stats)
	if err != nil {
		return stats, err
	}
	if stats.Found == 0 {
		log.Warn("No eligible files found in %s", cfg.Target)
		return stats, nil
	}

	for _, fe := range plan.Errors {
		log.Error("Cannot plan %s: %v", filepath.Base(fe.Path), fe.Err)
	}
	stats.Renamed = len(plan.Entries)
	display.PreviewPlan(plan.Entries, cfg.PreviewLimit)
	logSummary(cfg, log, &stats)
	return stats, nil
}

// buildPlan discovers eligible files under the target and plans their
// renames, filling the discovery/planning side of stats.
func buildPlan(cfg *config.Config, log *logging.Logger, stats *RunStats) (*planner.Plan, error) {
	root, err := filepath.Abs(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoTarget, cfg.Target)
	}

	files, err := Discover(root, cfg.Recursive, cfg.Extensions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTarget, err)
	}

	stats.Found = len(files)
	log.Info("Found %d eligible files", stats.Found)
	log.Debug(cfg.Verbose, "Strategy: %s, recursive: %v, dry-run: %v",
		string(cfg.Strategy), cfg.Recursive, cfg.DryRun)

	gen := naming.Generator{Strategy: cfg.Strategy}
	plan := planner.Build(files, gen, metadata.Extract)

	stats.Conflicts = plan.Conflicts()
	stats.Errors = len(plan.Errors)
	return plan, nil
}

// mapLogPath resolves the mapping log location: explicit override, else the
// default file inside the target directory.
func mapLogPath(cfg *config.Config) string {
	if cfg.MapLogPath != "" {
		return cfg.MapLogPath
	}
	return filepath.Join(cfg.Target, journal.DefaultFileName)
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	verb := "renamed"
	if cfg.DryRun {
		verb = "would rename"
	}
	if cfg.Command == config.CommandPreview {
		verb = "planned"
	}
	log.Info("Done: %d found, %d %s, %d conflicts resolved, %d errors",
		stats.Found, stats.Renamed, verb, stats.Conflicts, stats.Errors)
	if stats.Errors > 0 {
		log.Warn("Completed with per-file errors; see log records above")
	}
}
