package planner

import "github.com/nminhducit/rechronos/internal/timestamp"

// Entry is one planned rename. Source and destination always share a
// directory; only the basename changes.
type Entry struct {
	SourcePath string // absolute
	DestPath   string // absolute
	Resolved   timestamp.Resolved
	// ConflictSuffix is the numeric disambiguator applied to the base name,
	// 0 when none was needed. Assigned in file-discovery order so repeated
	// plans over an unchanged directory are identical.
	ConflictSuffix int
}

// FileError records a per-file planning failure. A failed file is skipped;
// the batch continues.
type FileError struct {
	Path string
	Err  error
}

// Plan is the ordered outcome of one planning pass.
type Plan struct {
	Entries []Entry
	Errors  []FileError
}

// Conflicts counts entries that needed a conflict suffix.
func (p *Plan) Conflicts() int {
	n := 0
	for _, e := range p.Entries {
		if e.ConflictSuffix > 0 {
			n++
		}
	}
	return n
}
