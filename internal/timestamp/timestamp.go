// Package timestamp holds the candidate-timestamp model and the resolution
// policy that picks the single datetime used for renaming.
package timestamp

import "time"

// Source identifies which candidate won resolution. It is carried through
// the plan for diagnostics and journaling.
type Source string

const (
	SourceCapture  Source = "capture"  // Decoded from file content metadata.
	SourceModified Source = "modified" // Filesystem modification time.
	SourceCreated  Source = "created"  // Filesystem creation time.
)

// Candidates is the per-file set of timestamps the extractor could recover.
// Modified and Created are always set (filesystem-guaranteed); Capture is
// valid only when HasCapture is true.
type Candidates struct {
	Capture    time.Time
	HasCapture bool
	Modified   time.Time
	Created    time.Time
}

// Resolved is the single timestamp chosen by [Resolve], tagged with its origin.
type Resolved struct {
	Time   time.Time
	Source Source
}

// Resolve applies the selection policy to a candidate set:
//
//  1. When a capture time exists, prefer it — unless the modified time is
//     strictly earlier, in which case the modified time wins (a modification
//     that predates the claimed capture means the capture tag is stale).
//  2. Without a capture time, take the earlier of modified and created,
//     approximating acquisition time over incidental filesystem touches.
//
// Equal capture and modified times resolve to the capture time. Resolve is
// pure: no I/O, deterministic for a given input.
func Resolve(c Candidates) Resolved {
	if c.HasCapture {
		if c.Modified.Before(c.Capture) {
			return Resolved{Time: c.Modified, Source: SourceModified}
		}
		return Resolved{Time: c.Capture, Source: SourceCapture}
	}
	if c.Created.Before(c.Modified) {
		return Resolved{Time: c.Created, Source: SourceCreated}
	}
	return Resolved{Time: c.Modified, Source: SourceModified}
}
