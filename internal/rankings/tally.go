package rankings

import "sort"

// DefaultLimit is the number of entries kept in every ranking.
const DefaultLimit = 10

// Entry is one ranked label and its occurrence count.
type Entry struct {
	Label string
	Count int64
}

// Tally counts label occurrences and remembers the order in which labels were
// first seen. A Tally is not safe for concurrent use; each bucket owns its own.
type Tally struct {
	counts map[string]int64
	order  []string
}

func NewTally() *Tally {
	return &Tally{counts: make(map[string]int64)}
}

// Add records one occurrence of label.
func (t *Tally) Add(label string) {
	if _, seen := t.counts[label]; !seen {
		t.order = append(t.order, label)
	}
	t.counts[label]++
}

// Len returns the number of distinct labels.
func (t *Tally) Len() int {
	return len(t.order)
}

// Count returns the occurrences recorded for label.
func (t *Tally) Count(label string) int64 {
	return t.counts[label]
}

// Top returns at most limit entries sorted by count descending. Labels with
// equal counts keep first-seen order. Never returns nil.
func (t *Tally) Top(limit int) []Entry {
	entries := make([]Entry, 0, len(t.order))
	for _, label := range t.order {
		entries = append(entries, Entry{Label: label, Count: t.counts[label]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Rank tallies labels and returns the top DefaultLimit entries.
func Rank(labels []string) []Entry {
	tally := NewTally()
	for _, label := range labels {
		tally.Add(label)
	}
	return tally.Top(DefaultLimit)
}
