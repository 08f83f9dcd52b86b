//go:build !linux

package metadata

import (
	"os"
	"time"
)

// statTimes returns the modified and created times for fi. Platforms without
// a portable creation time fall back to the modification time, which keeps
// the resolver's min(modified, created) rule a no-op there.
func statTimes(fi os.FileInfo) (modified, created time.Time) {
	return fi.ModTime(), fi.ModTime()
}
