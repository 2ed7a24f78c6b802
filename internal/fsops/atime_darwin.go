//go:build darwin

package fsops

import (
	"os"
	"syscall"
	"time"
)

// AccessTime extracts the last access time from a stat result.
func AccessTime(info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec)
	}
	return info.ModTime()
}
