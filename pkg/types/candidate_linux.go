//go:build linux

package types

import (
	"os"
	"syscall"
	"time"
)

// creationTime extracts the inode change time as the closest stand-in for
// a creation timestamp on Linux. It is only consulted when the modification
// time is unavailable.
func creationTime(info os.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}
	return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
}
