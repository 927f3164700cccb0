package ledger

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultKey is the slot the ledger is stored under.
const DefaultKey = "routine_tracker_data"

// Store owns the ledger. Every mutation rewrites the whole ledger through
// the persistence port before it becomes visible to readers.
type Store struct {
	mu sync.Mutex

	port  Persistence
	key   string
	now   func() time.Time
	newID func() string

	habits []Habit
	logs   map[string]DayLog

	loadErr error
}

// Option configures a Store.
type Option func(*Store)

// WithKey stores the ledger under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock sets the time source used for habit creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc sets the habit identifier generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Open builds a Store from whatever the port holds. A read or parse
// failure never fails Open: the store starts empty and LoadErr reports why.
func Open(port Persistence, opts ...Option) *Store {
	s := &Store{
		port:  port,
		key:   DefaultKey,
		now:   time.Now,
		newID: uuid.NewString,
		logs:  make(map[string]DayLog),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := port.Load(s.key)
	if err != nil {
		s.loadErr = fmt.Errorf("%w: %w", ErrPersistenceRead, err)
		return s
	}
	if len(data) == 0 {
		return s
	}

	habits, logs, err := decodeLedger(data, false)
	if err != nil {
		s.loadErr = fmt.Errorf("%w: %w", ErrPersistenceRead, err)
		return s
	}
	s.habits, s.logs = habits, logs
	return s
}

// LoadErr returns the error Open recovered from, if any.
func (s *Store) LoadErr() error {
	return s.loadErr
}

// Key returns the slot key the ledger is persisted under.
func (s *Store) Key() string {
	return s.key
}

// commit persists the next state and only then swaps it in.
// Callers hold s.mu.
func (s *Store) commit(habits []Habit, logs map[string]DayLog) error {
	data, err := encodeLedger(habits, logs, false)
	if err != nil {
		return fmt.Errorf("%w: encoding ledger: %w", ErrPersistenceWrite, err)
	}
	if err := s.port.Save(s.key, data); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}
	s.habits, s.logs = habits, logs
	return nil
}

// CreateHabit appends a new active habit.
func (s *Store) CreateHabit(name string) (Habit, error) {
	if strings.TrimSpace(name) == "" {
		return Habit{}, fmt.Errorf("%w: habit name is empty", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h := Habit{
		ID:        s.newID(),
		Name:      name,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	habits := append(slices.Clone(s.habits), h)
	if err := s.commit(habits, s.logs); err != nil {
		return Habit{}, err
	}
	return h, nil
}

// RetireHabit hides a habit from the active view. Unknown IDs are ignored.
// Day logs that reference the habit are left alone.
func (s *Store) RetireHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.habits, func(h Habit) bool { return h.ID == id })
	if idx < 0 || s.habits[idx].Retired {
		return nil
	}

	habits := slices.Clone(s.habits)
	habits[idx].Retired = true
	return s.commit(habits, s.logs)
}

// ToggleCompletion flips habitID on date and reports whether it is now
// completed. The habit does not have to exist.
func (s *Store) ToggleCompletion(date, habitID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := s.logs[date]
	if !ok {
		day = EmptyDayLog()
	}
	next, completed := day.toggled(habitID)

	logs := maps.Clone(s.logs)
	logs[date] = next
	if err := s.commit(s.habits, logs); err != nil {
		return day.Has(habitID), err
	}
	return completed, nil
}

// SetNote replaces the note for date verbatim.
func (s *Store) SetNote(date, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := s.logs[date]
	if !ok {
		day = EmptyDayLog()
	}
	day = day.clone()
	day.Note = text

	logs := maps.Clone(s.logs)
	logs[date] = day
	return s.commit(s.habits, logs)
}

// Habits returns every habit, retired ones included, in creation order.
func (s *Store) Habits() []Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.habits)
}

// ActiveHabits returns the non-retired habits in creation order.
func (s *Store) ActiveHabits() []Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked()
}

func (s *Store) activeLocked() []Habit {
	active := make([]Habit, 0, len(s.habits))
	for _, h := range s.habits {
		if !h.Retired {
			active = append(active, h)
		}
	}
	return active
}

// Habit looks up a habit by ID, retired or not.
func (s *Store) Habit(id string) (Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}

// DayLog returns the log for date, or EmptyDayLog if none was written.
// It never creates an entry.
func (s *Store) DayLog(date string) DayLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	day, ok := s.logs[date]
	if !ok {
		return EmptyDayLog()
	}
	return day.clone()
}

// TodayProgress counts today's completions among active habits.
func (s *Store) TodayProgress(today string) Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.activeLocked()
	p := Progress{Total: len(active)}
	if p.Total == 0 {
		return p
	}

	day, ok := s.logs[today]
	if !ok {
		day = EmptyDayLog()
	}
	for _, h := range active {
		if day.Has(h.ID) {
			p.Completed++
		}
	}
	p.Percent = percentOf(p.Completed, p.Total)
	return p
}

// HistoryEntries lists every written date except excludeDate, newest first.
func (s *Store) HistoryEntries(excludeDate string) []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]HistoryEntry, 0, len(s.logs))
	for date, day := range s.logs {
		if date == excludeDate {
			continue
		}
		entries = append(entries, HistoryEntry{Date: date, Log: day.clone()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries
}

// Stats returns habit and day counts.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Habits: len(s.habits), Days: len(s.logs)}
	for _, h := range s.habits {
		if h.Retired {
			st.Retired++
		} else {
			st.Active++
		}
	}
	return st
}

// ExportSnapshot serializes the full ledger as indented JSON.
func (s *Store) ExportSnapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return encodeLedger(s.habits, s.logs, true)
}

// ImportSnapshot replaces the whole ledger with the one in blob.
// On any error the current ledger is kept as is.
func (s *Store) ImportSnapshot(blob []byte) error {
	habits, logs, err := decodeLedger(blob, true)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(habits, logs)
}

// ValidateSnapshot reports whether blob would be accepted by ImportSnapshot
// without touching any store.
func ValidateSnapshot(blob []byte) error {
	_, _, err := decodeLedger(blob, true)
	return err
}
