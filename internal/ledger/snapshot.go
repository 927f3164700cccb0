package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// createdAtLayout matches the millisecond ISO timestamps of existing backups.
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

type wireHabit struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	IsDeleted bool   `json:"is_deleted"`
}

type wireDayLog struct {
	CompletedHabitIDs []string `json:"completed_habit_ids"`
	Note              string   `json:"note"`
}

type wireLedger struct {
	Habits []wireHabit            `json:"habits"`
	Logs   map[string]wireDayLog `json:"logs"`
}

func encodeLedger(habits []Habit, logs map[string]DayLog, indent bool) ([]byte, error) {
	w := wireLedger{
		Habits: make([]wireHabit, 0, len(habits)),
		Logs:   make(map[string]wireDayLog, len(logs)),
	}
	for _, h := range habits {
		w.Habits = append(w.Habits, wireHabit{
			ID:        h.ID,
			Name:      h.Name,
			CreatedAt: h.CreatedAt.UTC().Format(createdAtLayout),
			IsDeleted: h.Retired,
		})
	}
	for date, d := range logs {
		ids := d.Completed
		if ids == nil {
			ids = []string{}
		}
		w.Logs[date] = wireDayLog{CompletedHabitIDs: ids, Note: d.Note}
	}

	if indent {
		return json.MarshalIndent(w, "", "  ")
	}
	return json.Marshal(w)
}

// decodeLedger parses a serialized ledger. In strict mode both top-level
// fields must be present and non-null; otherwise a missing field is
// read as empty, which is how a stored slot from an older write is treated.
func decodeLedger(data []byte, strict bool) ([]Habit, map[string]DayLog, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	habitsRaw, hasHabits := present(raw, "habits")
	logsRaw, hasLogs := present(raw, "logs")
	if strict && (!hasHabits || !hasLogs) {
		return nil, nil, fmt.Errorf("%w: snapshot needs both \"habits\" and \"logs\"", ErrFormat)
	}

	var wh []wireHabit
	if hasHabits {
		if err := json.Unmarshal(habitsRaw, &wh); err != nil {
			return nil, nil, fmt.Errorf("%w: habits: %v", ErrFormat, err)
		}
	}
	var wl map[string]wireDayLog
	if hasLogs {
		if err := json.Unmarshal(logsRaw, &wl); err != nil {
			return nil, nil, fmt.Errorf("%w: logs: %v", ErrFormat, err)
		}
	}

	habits := make([]Habit, 0, len(wh))
	for _, h := range wh {
		created, _ := time.Parse(time.RFC3339, h.CreatedAt)
		habits = append(habits, Habit{
			ID:        h.ID,
			Name:      h.Name,
			CreatedAt: created,
			Retired:   h.IsDeleted,
		})
	}

	logs := make(map[string]DayLog, len(wl))
	for date, d := range wl {
		logs[date] = DayLog{Completed: dedupe(d.CompletedHabitIDs), Note: d.Note}
	}

	return habits, logs, nil
}

func present(raw map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
