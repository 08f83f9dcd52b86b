// Package rollback reverses a rename batch by replaying its mapping-log
// records newest-first.
package rollback

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nminhducit/rechronos/internal/journal"
	"github.com/nminhducit/rechronos/internal/logging"
)

// Stats reports the rollback outcome: how many of the batch's renames were
// restored.
type Stats struct {
	Restored int
	Total    int
}

// Clean reports whether every entry of the batch was restored.
func (s Stats) Clean() bool { return s.Restored == s.Total }

// Run reverses the renames of one batch recorded in the mapping log at
// logSource (a log file, or a directory holding rename_log.csv). When
// batchID is empty the most recent non-dry batch is chosen by scanning the
// log; the log itself is the source of truth for recency.
//
// Entries are replayed in reverse log order. A destination missing from its
// logged location is reported and skipped; the engine continues with the
// remaining entries. Each restore appends an action=rollback record; the
// original rename records are never touched. A missing or unreadable log is
// operation-fatal (journal.ErrNoLog) with zero filesystem mutation.
func Run(log *logging.Logger, logSource, batchID string) (Stats, error) {
	var stats Stats

	path, err := journal.Resolve(logSource)
	if err != nil {
		return stats, err
	}
	recs, err := journal.ReadAll(path)
	if err != nil {
		return stats, err
	}

	if batchID == "" {
		batchID = journal.LatestBatch(recs)
		if batchID == "" {
			log.Warn("No rename batches recorded in %s", path)
			return stats, nil
		}
	} else if journal.IsDryBatch(batchID) {
		return stats, fmt.Errorf("batch %s is a dry run; nothing to roll back", batchID)
	}

	rows := journal.BatchRecords(recs, batchID, journal.ActionRename)
	stats.Total = len(rows)
	if stats.Total == 0 {
		log.Warn("Batch %s has no rename records", batchID)
		return stats, nil
	}

	log.Info("Rolling back batch %s (%d files)", batchID, stats.Total)

	w, err := journal.OpenWriter(path)
	if err != nil {
		return stats, err
	}
	defer w.Close()

	// Reverse chronological order within the batch: last renamed, first
	// restored.
	for i := len(rows) - 1; i >= 0; i-- {
		entry := rows[i]

		if _, err := os.Stat(entry.Dst); err != nil {
			log.Warn("Cannot restore %s: file not found at logged location", filepath.Base(entry.Dst))
			continue
		}

		target := restoreTarget(log, entry.Src, entry.Dst)
		rec := journal.Record{
			BatchID:   batchID,
			Timestamp: time.Now(),
			Src:       entry.Dst,
			Dst:       target,
			Action:    journal.ActionRollback,
		}

		if err := os.Rename(entry.Dst, target); err != nil {
			log.Error("Failed to restore %s: %v", filepath.Base(entry.Dst), err)
			rec.Action = journal.ActionError
			if err := w.Append(rec); err != nil {
				return stats, err
			}
			continue
		}

		if err := w.Append(rec); err != nil {
			return stats, err
		}
		log.Success("Restored: %s → %s", filepath.Base(entry.Dst), filepath.Base(target))
		stats.Restored++
	}

	log.Info("Rollback complete: %d/%d files restored", stats.Restored, stats.Total)
	return stats, nil
}

// restoreTarget returns the path to restore dst to. Normally the logged
// source path; when something else occupies it now, a free
// "<stem>_restored_N<ext>" sibling is chosen instead.
func restoreTarget(log *logging.Logger, src, dst string) string {
	if _, err := os.Stat(src); err != nil {
		return src
	}
	if src == dst {
		return src
	}

	ext := filepath.Ext(src)
	stem := strings.TrimSuffix(src, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_restored_%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); err != nil {
			log.Warn("Original path occupied; restoring to %s", filepath.Base(candidate))
			return candidate
		}
	}
}
