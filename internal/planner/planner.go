// Package planner turns a discovered file list into an ordered rename plan:
// extract candidate timestamps, resolve one per file, and generate unique
// destination names.
package planner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nminhducit/rechronos/internal/naming"
	"github.com/nminhducit/rechronos/internal/timestamp"
)

// ExtractFunc supplies candidate timestamps for a path. Production wiring
// passes metadata.Extract; tests substitute fixed candidates.
type ExtractFunc func(path string) (timestamp.Candidates, error)

// Build produces the rename plan for files (absolute paths, in discovery
// order). Names are claimed per directory from a set pre-seeded with the
// stems already on disk, then extended entry by entry, so intra-batch and
// cross-batch collisions are both resolved before any filesystem write.
//
// A per-file extraction failure is recorded in Plan.Errors and planning
// continues with the remaining files.
func Build(files []string, gen naming.Generator, extract ExtractFunc) *Plan {
	plan := &Plan{}
	sets := make(map[string]*naming.NameSet)

	for _, path := range files {
		dir := filepath.Dir(path)
		set, ok := sets[dir]
		if !ok {
			set = seedDir(dir)
			sets[dir] = set
		}

		cand, err := extract(path)
		if err != nil {
			plan.Errors = append(plan.Errors, FileError{Path: path, Err: err})
			continue
		}
		resolved := timestamp.Resolve(cand)

		name, suffix := gen.Generate(filepath.Ext(path), resolved.Time, set)
		plan.Entries = append(plan.Entries, Entry{
			SourcePath:     path,
			DestPath:       filepath.Join(dir, name),
			Resolved:       resolved,
			ConflictSuffix: suffix,
		})
	}
	return plan
}

// seedDir claims the stem of every existing regular file in dir, so planned
// names never shadow something already on disk.
func seedDir(dir string) *naming.NameSet {
	set := naming.NewNameSet()
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Discovery already walked this directory; losing the seed here
		// only weakens cross-batch collision checks, it cannot corrupt.
		return set
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		set.Add(strings.TrimSuffix(name, filepath.Ext(name)))
	}
	return set
}
