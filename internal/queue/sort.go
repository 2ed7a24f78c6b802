package queue

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"

	"github.com/imgsift/imgsift/internal/collection"
)

// Criterion names a queue sort key.
type Criterion string

const (
	ByAccessTime Criterion = "atime"
	ByModTime    Criterion = "mtime"
	ByName       Criterion = "name"
	BySize       Criterion = "size"
	ByRandom     Criterion = "random"
)

// Criteria lists every valid sort criterion.
func Criteria() []Criterion {
	return []Criterion{ByAccessTime, ByModTime, ByName, BySize, ByRandom}
}

// ParseCriterion validates a user-supplied criterion name.
func ParseCriterion(s string) (Criterion, error) {
	c := Criterion(strings.ToLower(s))
	for _, valid := range Criteria() {
		if c == valid {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid sort criterion %q: must be one of atime, mtime, name, size, random", s)
}

var (
	ascendingPattern  = regexp.MustCompile(`^(a|asc|ascend|ascending)$`)
	descendingPattern = regexp.MustCompile(`^(d|desc|descend|descending)$`)
)

// ParseOrder maps a user-supplied order word onto the descending flag.
// Both orders accept progressively longer prefixes: "a", "asc", "ascend",
// "ascending" and the matching descending forms.
func ParseOrder(s string) (bool, error) {
	lower := strings.ToLower(s)
	switch {
	case ascendingPattern.MatchString(lower):
		return false, nil
	case descendingPattern.MatchString(lower):
		return true, nil
	default:
		return false, fmt.Errorf("invalid sort order %q: must be ascending or descending", s)
	}
}

// Sort orders the pending queue by criterion. The user-facing front of the
// queue is the tail of the slice, so the slice is stored in the opposite of
// the requested direction: an ascending sort for the user is a descending
// sort of the storage. Equal keys keep their relative order. ByRandom
// reshuffles freshly on every call.
func (q *Queue) Sort(criterion Criterion, descending bool) {
	if criterion == ByRandom {
		rand.Shuffle(len(q.pending), func(i, j int) {
			q.pending[i], q.pending[j] = q.pending[j], q.pending[i]
		})
		return
	}

	less := lessFunc(criterion)
	sort.SliceStable(q.pending, func(i, j int) bool {
		if descending {
			return less(q.pending[i], q.pending[j])
		}
		return less(q.pending[j], q.pending[i])
	})
}

func lessFunc(criterion Criterion) func(a, b *collection.Collection) bool {
	switch criterion {
	case ByAccessTime:
		return func(a, b *collection.Collection) bool { return a.AccessTime.Before(b.AccessTime) }
	case ByModTime:
		return func(a, b *collection.Collection) bool { return a.ModTime.Before(b.ModTime) }
	case BySize:
		return func(a, b *collection.Collection) bool { return a.SizeBytes < b.SizeBytes }
	default:
		return func(a, b *collection.Collection) bool { return a.Name < b.Name }
	}
}
