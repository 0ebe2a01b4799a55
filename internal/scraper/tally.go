package scraper

import (
	"strconv"

	"github.com/brogergvhs/docscrape/internal/results"
)

// StatusTally counts PEP statuses over a fixed set of known names.
type StatusTally struct {
	order  []string
	counts map[string]int
}

func NewStatusTally(statuses []string) *StatusTally {
	t := &StatusTally{
		order:  make([]string, 0, len(statuses)),
		counts: make(map[string]int, len(statuses)),
	}
	for _, s := range statuses {
		if _, dup := t.counts[s]; dup {
			continue
		}
		t.order = append(t.order, s)
		t.counts[s] = 0
	}
	return t
}

// FoldStatuses tallies observed into a fresh StatusTally and returns the
// values that were not known.
func FoldStatuses(known, observed []string) (*StatusTally, []string) {
	t := NewStatusTally(known)
	var unknown []string
	for _, s := range observed {
		if !t.Add(s) {
			unknown = append(unknown, s)
		}
	}
	return t, unknown
}

// Add reports false and counts nothing for an unknown status.
func (t *StatusTally) Add(status string) bool {
	if _, ok := t.counts[status]; !ok {
		return false
	}
	t.counts[status]++
	return true
}

func (t *StatusTally) Count(status string) int {
	return t.counts[status]
}

func (t *StatusTally) Total() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

// Table lists every known status in construction order, then the total.
func (t *StatusTally) Table() *results.Table {
	table := results.New("Status", "Count")
	for _, s := range t.order {
		_ = table.Append(s, strconv.Itoa(t.counts[s]))
	}
	_ = table.Append("Total", strconv.Itoa(t.Total()))
	return table
}
