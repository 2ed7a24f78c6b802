package collection

import (
	"strconv"
	"strings"
)

var sizeSuffixes = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

// HumanSize renders a byte count with binary prefixes: two decimal places
// with trailing zeros trimmed, e.g. "999 B", "1.5 KiB", "12 MiB".
func HumanSize(n int64) string {
	size := float64(n)
	i := 0
	for size >= 1024 && i < len(sizeSuffixes)-1 {
		size /= 1024
		i++
	}
	s := strconv.FormatFloat(size, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + " " + sizeSuffixes[i]
}
