package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nminhducit/rechronos/internal/config"
	"github.com/nminhducit/rechronos/internal/journal"
	"github.com/nminhducit/rechronos/internal/logging"
	"github.com/nminhducit/rechronos/internal/planner"
	"github.com/nminhducit/rechronos/internal/timestamp"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	log, err := logging.NewLogger(&cfg)
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log
}

// writeImage creates a plain file (no decodable metadata) with mtime set,
// so resolution falls back to filesystem times.
func writeImage(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func renameConfig(dir string) config.Config {
	cfg := config.DefaultConfig()
	cfg.Command = config.CommandRename
	cfg.Target = dir
	cfg.ColorMode = config.ColorNever
	return cfg
}

// --- Discover ---

func TestDiscover_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.JPG", "a.png", "notes.txt", "c.tiff", journal.DefaultFileName} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644))
	}

	cfg := config.DefaultConfig()
	files, err := Discover(dir, false, cfg.Extensions)
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.JPG"),
		filepath.Join(dir, "c.tiff"),
	}
	assert.Equal(t, want, files, "extension match is case-insensitive, log and non-images excluded, order lexicographic")
}

func TestDiscover_RecursionFlag(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.jpg"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "deep.jpg"), nil, 0o644))

	cfg := config.DefaultConfig()

	flat, err := Discover(dir, false, cfg.Extensions)
	require.NoError(t, err)
	assert.Len(t, flat, 1)

	deep, err := Discover(dir, true, cfg.Extensions)
	require.NoError(t, err)
	assert.Len(t, deep, 2)
}

// --- Run ---

func TestRun_RenamesAndJournals(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2023, 7, 1, 22, 5, 0, 0, time.Local)
	writeImage(t, dir, "vacation.png", mtime)

	cfg := renameConfig(dir)
	stats, err := Run(&cfg, testLogger(t))
	require.NoError(t, err)

	assert.Equal(t, RunStats{Found: 1, Current: 1, Renamed: 1}, stats)
	assert.True(t, stats.Clean())
	assert.FileExists(t, filepath.Join(dir, "IMG_010723_1005PM.png"))
	assert.NoFileExists(t, filepath.Join(dir, "vacation.png"))

	recs, err := journal.ReadAll(filepath.Join(dir, journal.DefaultFileName))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, journal.ActionRename, recs[0].Action)
	assert.Equal(t, filepath.Join(dir, "vacation.png"), recs[0].Src)
	assert.False(t, recs[0].Dry())
}

func TestRun_DryRunLeavesFilesAlone(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2023, 7, 1, 22, 5, 0, 0, time.Local)
	writeImage(t, dir, "vacation.png", mtime)

	cfg := renameConfig(dir)
	cfg.DryRun = true
	stats, err := Run(&cfg, testLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Renamed)
	assert.FileExists(t, filepath.Join(dir, "vacation.png"), "dry run must not move files")

	recs, err := journal.ReadAll(filepath.Join(dir, journal.DefaultFileName))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Dry(), "dry batches are marked so rollback skips them")
}

func TestRun_DryThenRealAreIdentical(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2023, 7, 1, 22, 5, 0, 0, time.Local)
	writeImage(t, dir, "a.jpg", mtime)
	writeImage(t, dir, "b.jpg", mtime) // same mtime: forces a conflict suffix

	logPath := filepath.Join(dir, journal.DefaultFileName)

	dryCfg := renameConfig(dir)
	dryCfg.DryRun = true
	dryStats, err := Run(&dryCfg, testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 1, dryStats.Conflicts)

	recs, err := journal.ReadAll(logPath)
	require.NoError(t, err)
	var planned []string
	for _, r := range recs {
		planned = append(planned, filepath.Base(r.Dst))
	}

	realCfg := renameConfig(dir)
	realStats, err := Run(&realCfg, testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, dryStats.Renamed, realStats.Renamed)
	assert.Equal(t, dryStats.Conflicts, realStats.Conflicts)

	for _, name := range planned {
		assert.FileExists(t, filepath.Join(dir, name),
			"real run must produce exactly the names the dry run planned")
	}
}

func TestRun_EmptyDirectory(t *testing.T) {
	cfg := renameConfig(t.TempDir())
	stats, err := Run(&cfg, testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, RunStats{}, stats)
	assert.NoFileExists(t, filepath.Join(cfg.Target, journal.DefaultFileName),
		"no journal for an empty batch")
}

// --- Execute (per-entry failure handling) ---

func TestExecute_PerEntryFailures(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2024, 3, 5, 9, 30, 0, 0, time.Local)

	good := writeImage(t, dir, "good.jpg", mtime)
	taken := writeImage(t, dir, "taken.jpg", mtime)
	occupied := writeImage(t, dir, "occupied.jpg", mtime)

	entries := []planner.Entry{
		{SourcePath: good, DestPath: filepath.Join(dir, "IMG_good.jpg"),
			Resolved: timestamp.Resolved{Time: mtime, Source: timestamp.SourceModified}},
		{SourcePath: filepath.Join(dir, "vanished.jpg"), DestPath: filepath.Join(dir, "IMG_gone.jpg"),
			Resolved: timestamp.Resolved{Time: mtime, Source: timestamp.SourceModified}},
		{SourcePath: taken, DestPath: occupied, // destination exists on disk
			Resolved: timestamp.Resolved{Time: mtime, Source: timestamp.SourceModified}},
	}

	logPath := filepath.Join(dir, journal.DefaultFileName)
	w, err := journal.OpenWriter(logPath)
	require.NoError(t, err)
	defer w.Close()

	var stats RunStats
	require.NoError(t, Execute(testLogger(t), w, "20250101000000", entries, false, &stats))

	assert.Equal(t, 1, stats.Renamed)
	assert.Equal(t, 2, stats.Errors)
	assert.FileExists(t, filepath.Join(dir, "IMG_good.jpg"))
	assert.FileExists(t, taken, "entry with taken destination must be left in place")

	recs, err := journal.ReadAll(logPath)
	require.NoError(t, err)
	assert.Len(t, journal.BatchRecords(recs, "20250101000000", journal.ActionRename), 1)
	assert.Len(t, journal.BatchRecords(recs, "20250101000000", journal.ActionError), 2)
}

// --- Preview ---

func TestPreview_NoJournalNoMutation(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2023, 7, 1, 22, 5, 0, 0, time.Local)
	writeImage(t, dir, "vacation.png", mtime)

	cfg := renameConfig(dir)
	cfg.Command = config.CommandPreview
	stats, err := Preview(&cfg, testLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Found)
	assert.Equal(t, 1, stats.Renamed)
	assert.FileExists(t, filepath.Join(dir, "vacation.png"))
	assert.NoFileExists(t, filepath.Join(dir, journal.DefaultFileName))
}
