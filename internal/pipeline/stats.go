package pipeline

// RunStats tracks aggregate counters across one rename batch.
type RunStats struct {
	Found     int // Eligible files discovered.
	Current   int // 1-based index of the file being processed.
	Renamed   int // Renames applied (or would-apply, in a dry run).
	Conflicts int // Entries that needed a conflict suffix.
	Errors    int // Per-file failures during planning or execution.
}

// Clean reports whether the batch finished without any per-file error.
// Drives the process exit status.
func (s *RunStats) Clean() bool {
	return s.Errors == 0
}
