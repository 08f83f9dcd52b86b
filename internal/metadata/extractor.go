// Package metadata extracts candidate timestamps for a single file: the
// capture time embedded in image metadata plus the filesystem modified and
// created times.
package metadata

import (
	"fmt"
	"os"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/nminhducit/rechronos/internal/timestamp"
)

// Extract returns the candidate timestamps for path. The capture time is
// decoded from the file content itself (EXIF in JPEG/TIFF containers); the
// container is recognized by structure, so a mislabeled extension decodes
// fine and a non-image simply yields no capture time. Absent or undecodable
// capture metadata is a normal outcome, not an error.
//
// An error is returned only when the file cannot be stat'd or opened, which
// aborts planning for this file alone.
func Extract(path string) (timestamp.Candidates, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return timestamp.Candidates{}, fmt.Errorf("stat %s: %w", path, err)
	}

	modified, created := statTimes(fi)
	c := timestamp.Candidates{Modified: modified, Created: created}

	f, err := os.Open(path)
	if err != nil {
		return timestamp.Candidates{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return c, nil
	}
	dt, err := x.DateTime()
	if err != nil {
		return c, nil
	}

	c.Capture = dt
	c.HasCapture = true
	return c, nil
}
