// Package ledger holds the habit ledger: habit definitions, the per-day
// completion log, and the views derived from them.
package ledger

import (
	"slices"
	"time"
)

// Habit is a named task tracked once per calendar day.
type Habit struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Retired   bool // hidden from the daily view, still resolvable from history
}

// DayLog is what happened on one calendar date.
type DayLog struct {
	Completed []string // habit IDs, no duplicates, first-completion order
	Note      string
}

// EmptyDayLog is the value of every date that has never been written.
// Readers and writers both start from it, so a missing date and an
// empty log are indistinguishable.
func EmptyDayLog() DayLog {
	return DayLog{Completed: []string{}}
}

// Has reports whether habitID is in the completed set.
func (d DayLog) Has(habitID string) bool {
	return slices.Contains(d.Completed, habitID)
}

// IsEmpty reports whether the log carries no completions and no note.
func (d DayLog) IsEmpty() bool {
	return len(d.Completed) == 0 && d.Note == ""
}

func (d DayLog) clone() DayLog {
	out := DayLog{Note: d.Note, Completed: make([]string, len(d.Completed))}
	copy(out.Completed, d.Completed)
	return out
}

// toggled returns a copy of d with habitID flipped in the completed set.
func (d DayLog) toggled(habitID string) (DayLog, bool) {
	out := DayLog{Note: d.Note, Completed: make([]string, 0, len(d.Completed)+1)}
	found := false
	for _, id := range d.Completed {
		if id == habitID {
			found = true
			continue
		}
		out.Completed = append(out.Completed, id)
	}
	if !found {
		out.Completed = append(out.Completed, habitID)
	}
	return out, !found
}

// Progress is today's completion ratio over active habits.
type Progress struct {
	Completed int
	Total     int
	Percent   int // 0-100, rounded half up
}

// HistoryEntry pairs a date with its log.
type HistoryEntry struct {
	Date string
	Log  DayLog
}

// Stats summarizes the ledger size.
type Stats struct {
	Habits  int
	Active  int
	Retired int
	Days    int
}

// percentOf rounds 100*completed/total half up. total must be positive.
func percentOf(completed, total int) int {
	return (200*completed + total) / (2 * total)
}
