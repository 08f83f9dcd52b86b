// Package journal persists the mapping log: one CSV row per rename outcome,
// append-only, the sole contract between a rename run and a later rollback.
//
// Layout: header "batch_id,timestamp,src,dst,action", absolute paths,
// ISO-8601 timestamps. Dry runs journal too (so they can be audited) but
// their batch ids carry a "-dry" suffix; rollback ignores such batches.
package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Actions recorded in the log.
const (
	ActionRename   = "rename"
	ActionRollback = "rollback"
	ActionError    = "error"
)

// DefaultFileName is the log filename created inside the target directory.
const DefaultFileName = "rename_log.csv"

const dryBatchSuffix = "-dry"

// ErrNoLog is returned when the mapping log is missing or unreadable.
// Callers treat it as operation-fatal for rollback.
var ErrNoLog = errors.New("mapping log not found")

var header = []string{"batch_id", "timestamp", "src", "dst", "action"}

// Record is one persisted mapping-log row.
type Record struct {
	BatchID   string
	Timestamp time.Time
	Src       string
	Dst       string
	Action    string
}

// Dry reports whether the record belongs to a dry-run batch.
func (r Record) Dry() bool { return IsDryBatch(r.BatchID) }

// IsDryBatch reports whether id denotes a dry-run batch.
func IsDryBatch(id string) bool { return strings.HasSuffix(id, dryBatchSuffix) }

var (
	idMu   sync.Mutex
	lastID uint64
)

// NewBatchID derives a batch id from now (UTC, second resolution). Ids are
// strictly increasing within the process: reusing a second bumps the value
// numerically, so lexicographic order equals chronological order. Dry-run
// batches get the "-dry" suffix.
func NewBatchID(now time.Time, dryRun bool) string {
	idMu.Lock()
	defer idMu.Unlock()

	n, _ := strconv.ParseUint(now.UTC().Format("20060102150405"), 10, 64)
	if n <= lastID {
		n = lastID + 1
	}
	lastID = n

	id := strconv.FormatUint(n, 10)
	if dryRun {
		id += dryBatchSuffix
	}
	return id
}

// Resolve maps a log source argument to a concrete log file path: a
// directory resolves to its rename_log.csv, a file path to itself. Missing
// targets yield ErrNoLog.
func Resolve(logSource string) (string, error) {
	fi, err := os.Stat(logSource)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoLog, logSource)
	}
	if !fi.IsDir() {
		return logSource, nil
	}
	path := filepath.Join(logSource, DefaultFileName)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoLog, path)
	}
	return path, nil
}

// Writer appends records to a mapping log. Each Append is flushed and
// fsynced before returning, so the log never lags the filesystem by more
// than the rename currently in flight.
type Writer struct {
	f   *os.File
	csv *csv.Writer
}

// OpenWriter opens (or creates) the log at path in append mode, writing the
// header when the file is new or empty.
func OpenWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open mapping log: %w", err)
	}
	w := &Writer{f: f, csv: csv.NewWriter(f)}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat mapping log: %w", err)
	}
	if fi.Size() == 0 {
		if err := w.csv.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("write log header: %w", err)
		}
		if err := w.sync(); err != nil {
			f.Close()
			return nil, err
		}
	}
	return w, nil
}

// Append writes one record and forces it to stable storage.
func (w *Writer) Append(rec Record) error {
	row := []string{
		rec.BatchID,
		rec.Timestamp.Format(time.RFC3339),
		rec.Src,
		rec.Dst,
		rec.Action,
	}
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("append mapping log: %w", err)
	}
	return w.sync()
}

func (w *Writer) sync() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flush mapping log: %w", err)
	}
	if err := w.f.Sync(); err != nil {
		return fmt.Errorf("sync mapping log: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	w.csv.Flush()
	return w.f.Close()
}

// ReadAll loads every record from the log at path. A missing file yields
// ErrNoLog. Rows with a wrong column count abort the read; an unparseable
// timestamp is tolerated (left zero) since consumers key on paths and ids.
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoLog, path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read mapping log %s: %w", path, err)
	}

	var recs []Record
	for i, row := range rows {
		if i == 0 && row[0] == header[0] {
			continue
		}
		ts, _ := time.Parse(time.RFC3339, row[1])
		recs = append(recs, Record{
			BatchID:   row[0],
			Timestamp: ts,
			Src:       row[2],
			Dst:       row[3],
			Action:    row[4],
		})
	}
	return recs, nil
}

// LatestBatch returns the most recent non-dry batch id that holds at least
// one rename record, or "" when there is none. Recency is derived from the
// log itself (batch ids sort chronologically), not from any in-memory state.
func LatestBatch(recs []Record) string {
	latest := ""
	for _, r := range recs {
		if r.Action != ActionRename || r.Dry() {
			continue
		}
		if r.BatchID > latest {
			latest = r.BatchID
		}
	}
	return latest
}

// BatchRecords filters recs to those of batchID with the given action,
// preserving log order.
func BatchRecords(recs []Record, batchID, action string) []Record {
	var out []Record
	for _, r := range recs {
		if r.BatchID == batchID && r.Action == action {
			out = append(out, r)
		}
	}
	return out
}

// Batches returns the distinct batch ids in recs, in first-seen order.
func Batches(recs []Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range recs {
		if !seen[r.BatchID] {
			seen[r.BatchID] = true
			out = append(out, r.BatchID)
		}
	}
	return out
}
