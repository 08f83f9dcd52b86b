package pipeline

import (
	"os"
	"path/filepath"
	"time"

	"github.com/nminhducit/rechronos/internal/journal"
	"github.com/nminhducit/rechronos/internal/logging"
	"github.com/nminhducit/rechronos/internal/planner"
)

// Execute applies plan entries in order and journals each outcome under
// batchID. In a dry run nothing on disk changes but every entry is still
// journaled (under the dry batch id) so the run can be audited.
//
// Per-entry failures (source vanished since planning, destination taken by a
// racing process, rename refused) are journaled as error records and the
// batch continues. A journal write failure is fatal: renaming past a dead
// log would leave completed renames unrecoverable, so Execute stops there.
//
// Each successful rename is appended and synced before the next entry, so a
// crash leaves the log consistent with exactly the renames that happened.
func Execute(log *logging.Logger, w *journal.Writer, batchID string, entries []planner.Entry, dryRun bool, stats *RunStats) error {
	for i, e := range entries {
		stats.Current = i + 1
		srcBase := filepath.Base(e.SourcePath)
		dstBase := filepath.Base(e.DestPath)

		rec := journal.Record{
			BatchID:   batchID,
			Timestamp: time.Now(),
			Src:       e.SourcePath,
			Dst:       e.DestPath,
			Action:    journal.ActionRename,
		}

		if dryRun {
			if err := w.Append(rec); err != nil {
				return err
			}
			log.Success("[DRY] %s → %s", srcBase, dstBase)
			stats.Renamed++
			continue
		}

		if _, err := os.Stat(e.SourcePath); err != nil {
			log.Warn("Skipped missing source: %s", srcBase)
			rec.Action = journal.ActionError
			if err := w.Append(rec); err != nil {
				return err
			}
			stats.Errors++
			continue
		}

		// Planning reserved this name, but another process may have taken
		// it since.
		if _, err := os.Stat(e.DestPath); err == nil {
			log.Error("Destination exists: %s", dstBase)
			rec.Action = journal.ActionError
			if err := w.Append(rec); err != nil {
				return err
			}
			stats.Errors++
			continue
		}

		if err := os.Rename(e.SourcePath, e.DestPath); err != nil {
			log.Error("Rename failed for %s: %v", srcBase, err)
			rec.Action = journal.ActionError
			if err := w.Append(rec); err != nil {
				return err
			}
			stats.Errors++
			continue
		}

		rec.Timestamp = time.Now()
		if err := w.Append(rec); err != nil {
			return err
		}
		log.Success("%s → %s", srcBase, dstBase)
		stats.Renamed++
	}
	return nil
}
