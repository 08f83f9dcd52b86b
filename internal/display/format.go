// Package display renders the banner and plan previews to stdout.
package display

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nminhducit/rechronos/internal/logging"
	"github.com/nminhducit/rechronos/internal/planner"
)

// PreviewPlan writes the first limit planned renames to stdout, a
// truncation line when the plan is longer, and a total.
func PreviewPlan(entries []planner.Entry, limit int) {
	FprintPreview(os.Stdout, entries, limit)
}

// FprintPreview is PreviewPlan writing to an explicit writer (for tests).
func FprintPreview(w io.Writer, entries []planner.Entry, limit int) {
	shown := len(entries)
	if limit > 0 && shown > limit {
		shown = limit
	}

	for i, e := range entries[:shown] {
		fmt.Fprintf(w, "%d. %s → %s%s%s%s\n",
			i+1, filepath.Base(e.SourcePath),
			logging.Green, filepath.Base(e.DestPath), logging.NC,
			sourceTag(e))
	}
	if len(entries) > shown {
		fmt.Fprintf(w, "... and %d more files\n", len(entries)-shown)
	}
	fmt.Fprintf(w, "Total files planned: %d\n", len(entries))
}

// sourceTag annotates an entry with the timestamp source and any conflict
// suffix, e.g. " [capture]" or " [modified, conflict #1]".
func sourceTag(e planner.Entry) string {
	if e.ConflictSuffix > 0 {
		return fmt.Sprintf(" [%s, conflict #%d]", e.Resolved.Source, e.ConflictSuffix)
	}
	return fmt.Sprintf(" [%s]", e.Resolved.Source)
}
