package queue

import (
	"fmt"
	"testing"
	"time"

	"github.com/imgsift/imgsift/internal/collection"
)

func TestParseCriterion(t *testing.T) {
	tests := []struct {
		in      string
		want    Criterion
		wantErr bool
	}{
		{"name", ByName, false},
		{"SIZE", BySize, false},
		{"atime", ByAccessTime, false},
		{"mtime", ByModTime, false},
		{"random", ByRandom, false},
		{"newest", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCriterion(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCriterion(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCriterion(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in         string
		descending bool
		wantErr    bool
	}{
		{"a", false, false},
		{"asc", false, false},
		{"ascend", false, false},
		{"ascending", false, false},
		{"Ascending", false, false},
		{"d", true, false},
		{"desc", true, false},
		{"descend", true, false},
		{"descending", true, false},
		{"ascdescending", false, true},
		{"up", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		got, err := ParseOrder(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOrder(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.descending {
			t.Errorf("ParseOrder(%q) = %v, want %v", tt.in, got, tt.descending)
		}
	}
}

func TestSortByNameAscendingServesAlphabetically(t *testing.T) {
	b := col("/src/b.jpg", 2, stamp)
	c := col("/src/c.jpg", 3, stamp)
	a := col("/src/a.jpg", 1, stamp)
	q, _ := newTestQueue(b, c, a)

	q.Sort(ByName, false)

	// The front lives at the tail, so an ascending sort stores the queue
	// in descending order.
	want := []string{"c.jpg", "b.jpg", "a.jpg"}
	for i, name := range want {
		if q.pending[i].Name != name {
			t.Errorf("pending[%d] = %s, want %s", i, q.pending[i].Name, name)
		}
	}
	if got := q.Peek(); got != a {
		t.Errorf("Peek() = %v, want %v first", got, a)
	}

	q.Skip()
	if got := q.Peek(); got != b {
		t.Errorf("Peek() after one skip = %v, want %v", got, b)
	}
	q.Skip()
	if got := q.Peek(); got != c {
		t.Errorf("Peek() after two skips = %v, want %v", got, c)
	}
}

func TestSortBySizeDescendingServesLargestFirst(t *testing.T) {
	q, _ := newTestQueue(
		col("/src/small.jpg", 10, stamp),
		col("/src/large.jpg", 300, stamp),
		col("/src/medium.jpg", 20, stamp),
	)

	q.Sort(BySize, true)

	if got := q.Peek(); got.Name != "large.jpg" {
		t.Errorf("Peek() = %s, want large.jpg", got.Name)
	}
	if q.pending[0].Name != "small.jpg" {
		t.Errorf("pending[0] = %s, want small.jpg last in line", q.pending[0].Name)
	}
}

func TestSortByTimeUsesTheRightStamp(t *testing.T) {
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	first := col("/src/first.jpg", 1, old)
	second := col("/src/second.jpg", 1, mid)
	third := col("/src/third.jpg", 1, recent)
	second.AccessTime = recent
	third.AccessTime = old

	q, _ := newTestQueue(second, third, first)

	q.Sort(ByModTime, false)
	if got := q.Peek(); got != first {
		t.Errorf("Peek() after mtime sort = %v, want the oldest %v", got, first)
	}

	q.Sort(ByAccessTime, false)
	if got := q.Peek(); got != third {
		t.Errorf("Peek() after atime sort = %v, want the least recently read %v", got, third)
	}
}

func TestSortIsStableForEqualKeys(t *testing.T) {
	a := col("/src/a.jpg", 50, stamp)
	b := col("/src/b.jpg", 50, stamp)
	c := col("/src/c.jpg", 50, stamp)
	q, _ := newTestQueue(a, b, c)

	q.Sort(BySize, false)

	want := []*collection.Collection{a, b, c}
	for i := range want {
		if q.pending[i] != want[i] {
			t.Errorf("pending[%d] = %v, equal keys did not keep their order", i, q.pending[i])
		}
	}
}

func TestSortRandomReshuffles(t *testing.T) {
	q, _ := newTestQueue()
	for i := 0; i < 32; i++ {
		q.pending = append(q.pending, col(fmt.Sprintf("/src/%02d.jpg", i), int64(i), stamp))
	}

	before := append([]string(nil), names(q)...)
	q.Sort(ByRandom, false)
	after := names(q)

	if len(after) != len(before) {
		t.Fatalf("shuffle changed queue length: %d -> %d", len(before), len(after))
	}
	same := true
	for i := range before {
		if before[i] != after[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Sort(ByRandom) left 32 items in their exact original order")
	}
}

func names(q *Queue) []string {
	out := make([]string, len(q.pending))
	for i, c := range q.pending {
		out[i] = c.Name
	}
	return out
}
