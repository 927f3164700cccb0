// Package clock derives the current calendar date and watches for the
// local date rolling over.
package clock

import (
	"context"
	"time"

	"github.com/theirongolddev/routine/internal/ledger"
)

// DefaultInterval is how often the watcher re-reads the wall clock.
const DefaultInterval = 60 * time.Second

const minInterval = time.Second

// Clock reads the wall clock.
type Clock struct {
	now func() time.Time
}

// New returns a Clock backed by time.Now.
func New() Clock {
	return Clock{now: time.Now}
}

// NewWithFunc returns a Clock backed by now.
func NewWithFunc(now func() time.Time) Clock {
	return Clock{now: now}
}

// Now returns the current time.
func (c Clock) Now() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

// Today returns the local calendar date as YYYY-MM-DD.
func (c Clock) Today() string {
	return ledger.DateOf(c.Now())
}

// Watcher reports local date changes. It only reads the clock.
type Watcher struct {
	clock    Clock
	interval time.Duration
	last     string
}

// NewWatcher returns a watcher that starts from the current date.
// Intervals below one second are raised to one second.
func NewWatcher(c Clock, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if interval < minInterval {
		interval = minInterval
	}
	return &Watcher{clock: c, interval: interval, last: c.Today()}
}

// Interval returns the effective polling interval.
func (w *Watcher) Interval() time.Duration {
	return w.interval
}

// Today returns the date most recently observed.
func (w *Watcher) Today() string {
	return w.last
}

// Check re-reads the clock and reports the new date if it changed.
func (w *Watcher) Check() (string, bool) {
	current := w.clock.Today()
	if current == w.last {
		return current, false
	}
	w.last = current
	return current, true
}

// Run polls until ctx is canceled, calling onChange with each new date.
func (w *Watcher) Run(ctx context.Context, onChange func(today string)) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if today, changed := w.Check(); changed {
				onChange(today)
			}
		}
	}
}
