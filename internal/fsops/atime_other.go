//go:build !linux && !darwin

package fsops

import (
	"os"
	"time"
)

// AccessTime falls back to the modification time on platforms where the
// stat result carries no portable access time.
func AccessTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
