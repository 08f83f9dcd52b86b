//go:build linux

package metadata

import (
	"os"
	"syscall"
	"time"
)

// statTimes returns the modified and created times for fi. Linux exposes no
// true birth time through os.FileInfo, so the inode change time stands in for
// creation, matching how the log and naming policy treat "created".
func statTimes(fi os.FileInfo) (modified, created time.Time) {
	modified = fi.ModTime()
	created = modified
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		created = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
	return modified, created
}
