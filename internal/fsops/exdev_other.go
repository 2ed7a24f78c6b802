//go:build !unix

package fsops

// Without a portable cross-device signal the rename error is surfaced as-is.
func isCrossDevice(err error) bool {
	return false
}
