package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/routine/internal/ledger"
)

var (
	errHabitNotFound  = errors.New("no habit matches")
	errHabitAmbiguous = errors.New("more than one habit matches")
)

// resolveHabit finds the habit a user argument refers to. It tries, in order:
// exact id, case-insensitive name among active habits, unique name prefix
// among active habits, unique id prefix among all habits.
func resolveHabit(s *ledger.Store, arg string) (ledger.Habit, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return ledger.Habit{}, fmt.Errorf("%w: empty argument", errHabitNotFound)
	}

	if h, ok := s.Habit(arg); ok {
		return h, nil
	}

	active := s.ActiveHabits()
	lower := strings.ToLower(arg)

	if h, err := pickOne(arg, active, func(h ledger.Habit) bool {
		return strings.EqualFold(h.Name, arg)
	}); !errors.Is(err, errHabitNotFound) {
		return h, err
	}

	if h, err := pickOne(arg, active, func(h ledger.Habit) bool {
		return strings.HasPrefix(strings.ToLower(h.Name), lower)
	}); !errors.Is(err, errHabitNotFound) {
		return h, err
	}

	return pickOne(arg, s.Habits(), func(h ledger.Habit) bool {
		return strings.HasPrefix(h.ID, arg)
	})
}

func pickOne(arg string, habits []ledger.Habit, match func(ledger.Habit) bool) (ledger.Habit, error) {
	var found []ledger.Habit
	for _, h := range habits {
		if match(h) {
			found = append(found, h)
		}
	}
	switch len(found) {
	case 0:
		return ledger.Habit{}, fmt.Errorf("%w %q", errHabitNotFound, arg)
	case 1:
		return found[0], nil
	}
	names := make([]string, len(found))
	for i, h := range found {
		names[i] = fmt.Sprintf("%s (%s)", h.Name, h.ID)
	}
	return ledger.Habit{}, fmt.Errorf("%w %q: %s", errHabitAmbiguous, arg, strings.Join(names, ", "))
}

// resolveToggleTarget is resolveHabit for done. An id no habit owns still
// resolves when some day log references it, so imported history stays editable.
func resolveToggleTarget(s *ledger.Store, arg string) (ledger.Habit, error) {
	h, err := resolveHabit(s, arg)
	if !errors.Is(err, errHabitNotFound) {
		return h, err
	}
	for _, e := range s.HistoryEntries("") {
		if e.Log.Has(arg) {
			return ledger.Habit{ID: arg, Name: "unknown habit"}, nil
		}
	}
	return h, err
}
