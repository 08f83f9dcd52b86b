// Package check provides target diagnostics (the check command): directory
// accessibility and a mapping-log inventory.
package check

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/nminhducit/rechronos/internal/config"
	"github.com/nminhducit/rechronos/internal/journal"
)

// ErrBadTarget is returned when the target is missing or not a directory.
var ErrBadTarget = errors.New("target is not an accessible directory")

// Logger is the minimal logging interface needed by Run.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Run inspects the target directory and its mapping log: whether the
// directory is readable and writable, whether a log exists, and a per-batch
// record inventory. Informational only, except that a bad target returns
// ErrBadTarget so the caller can exit distinctly.
func Run(cfg *config.Config, log Logger) error {
	log.Info("=== Target Check ===")

	fi, err := os.Stat(cfg.Target)
	if err != nil || !fi.IsDir() {
		log.Error("Not an accessible directory: %s", cfg.Target)
		return ErrBadTarget
	}
	log.Success("Directory: %s", cfg.Target)

	if err := checkWritable(cfg.Target); err != nil {
		log.Warn("Directory not writable: %v", err)
	} else {
		log.Success("Writable")
	}

	checkMapLog(cfg, log)
	return nil
}

// checkWritable verifies files can be created in dir by touching and
// removing a probe file.
func checkWritable(dir string) error {
	probe := filepath.Join(dir, ".rechronos_check")
	f, err := os.Create(probe)
	if err != nil {
		return err
	}
	f.Close()
	return os.Remove(probe)
}

// checkMapLog reports the mapping-log location and a per-batch inventory of
// rename, rollback, and error records.
func checkMapLog(cfg *config.Config, log Logger) {
	source := cfg.MapLogPath
	if source == "" {
		source = cfg.Target
	}

	path, err := journal.Resolve(source)
	if err != nil {
		log.Info("No mapping log yet (a rename run creates %s)", journal.DefaultFileName)
		return
	}
	log.Success("Mapping log: %s", path)

	recs, err := journal.ReadAll(path)
	if err != nil {
		log.Error("Mapping log unreadable: %v", err)
		return
	}

	batches := journal.Batches(recs)
	log.Info("Batches recorded: %d", len(batches))
	for _, id := range batches {
		renames := len(journal.BatchRecords(recs, id, journal.ActionRename))
		rollbacks := len(journal.BatchRecords(recs, id, journal.ActionRollback))
		errs := len(journal.BatchRecords(recs, id, journal.ActionError))
		suffix := ""
		if journal.IsDryBatch(id) {
			suffix = " (dry run)"
		}
		log.Info("  %s: %d renamed, %d rolled back, %d errors%s", id, renames, rollbacks, errs, suffix)
	}

	if latest := journal.LatestBatch(recs); latest != "" {
		log.Info("Rollback would target batch %s", latest)
	}
}
