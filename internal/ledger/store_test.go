package ledger

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"
)

func newTestStore(t *testing.T) (*Store, MemorySlots) {
	t.Helper()
	slots := MemorySlots{}
	n := 0
	s := Open(slots,
		WithClock(func() time.Time { return time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC) }),
		WithIDFunc(func() string {
			n++
			return fmt.Sprintf("h%d", n)
		}),
	)
	if err := s.LoadErr(); err != nil {
		t.Fatalf("LoadErr on empty slots = %v", err)
	}
	return s, slots
}

func mustCreate(t *testing.T, s *Store, name string) Habit {
	t.Helper()
	h, err := s.CreateHabit(name)
	if err != nil {
		t.Fatalf("CreateHabit(%q): %v", name, err)
	}
	return h
}

func TestCreateHabit_RejectsBlankNames(t *testing.T) {
	s, slots := newTestStore(t)

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := s.CreateHabit(name); !errors.Is(err, ErrValidation) {
			t.Fatalf("CreateHabit(%q) err = %v, want ErrValidation", name, err)
		}
	}
	if len(s.Habits()) != 0 {
		t.Fatalf("habits = %d, want 0", len(s.Habits()))
	}
	if len(slots) != 0 {
		t.Fatal("rejected create should not persist anything")
	}
}

func TestCreateHabit_AppendsAndPersists(t *testing.T) {
	s, slots := newTestStore(t)

	a := mustCreate(t, s, "Exercise")
	b := mustCreate(t, s, "Read")

	if a.ID == b.ID {
		t.Fatalf("ids should be unique, both %q", a.ID)
	}
	if a.Retired || b.Retired {
		t.Fatal("new habits should be active")
	}
	if a.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not set")
	}

	reopened := Open(slots)
	got := reopened.Habits()
	if len(got) != 2 || got[0].Name != "Exercise" || got[1].Name != "Read" {
		t.Fatalf("reopened habits = %+v, want Exercise then Read", got)
	}
	if !got[0].CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("CreatedAt = %v, want %v", got[0].CreatedAt, a.CreatedAt)
	}
}

func TestRetireHabit_KeepsHistory(t *testing.T) {
	s, _ := newTestStore(t)
	a := mustCreate(t, s, "Exercise")
	b := mustCreate(t, s, "Read")

	if _, err := s.ToggleCompletion("2024-01-09", a.ID); err != nil {
		t.Fatal(err)
	}
	before := s.DayLog("2024-01-09")

	if err := s.RetireHabit(a.ID); err != nil {
		t.Fatalf("RetireHabit: %v", err)
	}

	active := s.ActiveHabits()
	if len(active) != 1 || active[0].ID != b.ID {
		t.Fatalf("active = %+v, want only %s", active, b.ID)
	}
	if len(s.Habits()) != 2 {
		t.Fatalf("habits = %d, want 2 (retired habits stay)", len(s.Habits()))
	}
	h, ok := s.Habit(a.ID)
	if !ok || !h.Retired {
		t.Fatalf("Habit(%s) = %+v, %v; want retired habit", a.ID, h, ok)
	}
	if after := s.DayLog("2024-01-09"); !reflect.DeepEqual(before, after) {
		t.Fatalf("day log changed by retire: %+v -> %+v", before, after)
	}
}

func TestRetireHabit_UnknownIsNoop(t *testing.T) {
	s, slots := newTestStore(t)
	mustCreate(t, s, "Exercise")
	saved := string(slots[DefaultKey])

	if err := s.RetireHabit("nope"); err != nil {
		t.Fatalf("RetireHabit(unknown) = %v, want nil", err)
	}
	if len(s.ActiveHabits()) != 1 {
		t.Fatal("unknown retire changed the active view")
	}
	if string(slots[DefaultKey]) != saved {
		t.Fatal("unknown retire rewrote the slot")
	}
}

func TestToggleCompletion_Parity(t *testing.T) {
	s, _ := newTestStore(t)

	for calls := 1; calls <= 6; calls++ {
		date := fmt.Sprintf("2024-02-%02d", calls)
		var last bool
		for i := 0; i < calls; i++ {
			done, err := s.ToggleCompletion(date, "h1")
			if err != nil {
				t.Fatal(err)
			}
			last = done
		}
		want := calls%2 == 1
		if got := s.DayLog(date).Has("h1"); got != want {
			t.Fatalf("%d toggles: Has = %v, want %v", calls, got, want)
		}
		if last != want {
			t.Fatalf("%d toggles: last return = %v, want %v", calls, last, want)
		}
	}
}

func TestToggleCompletion_TwiceRestores(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.ToggleCompletion("2024-01-10", "h1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleCompletion("2024-01-10", "h1"); err != nil {
		t.Fatal(err)
	}
	if s.DayLog("2024-01-10").Has("h1") {
		t.Fatal("h1 still completed after two toggles")
	}
}

func TestToggleCompletion_AcceptsUnknownAndRetiredIDs(t *testing.T) {
	s, _ := newTestStore(t)
	h := mustCreate(t, s, "Exercise")
	if err := s.RetireHabit(h.ID); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{h.ID, "ghost"} {
		done, err := s.ToggleCompletion("2024-01-10", id)
		if err != nil || !done {
			t.Fatalf("ToggleCompletion(%q) = %v, %v; want true, nil", id, done, err)
		}
	}
	if got := s.DayLog("2024-01-10").Completed; !reflect.DeepEqual(got, []string{h.ID, "ghost"}) {
		t.Fatalf("completed = %v", got)
	}
}

func TestToggleCompletion_ConcurrentTogglesAreNotLost(t *testing.T) {
	s, _ := newTestStore(t)

	const workers = 8
	const perWorker = 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			id := fmt.Sprintf("h%d", w)
			for i := 0; i < perWorker; i++ {
				if _, err := s.ToggleCompletion("2024-01-10", id); err != nil {
					t.Error(err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	// perWorker is odd, so every habit ends completed.
	if got := len(s.DayLog("2024-01-10").Completed); got != workers {
		t.Fatalf("completed = %d, want %d", got, workers)
	}
}

func TestSetNote_Verbatim(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.ToggleCompletion("2024-01-10", "h1"); err != nil {
		t.Fatal(err)
	}

	note := "  long day\n\twith whitespace  "
	if err := s.SetNote("2024-01-10", note); err != nil {
		t.Fatal(err)
	}
	day := s.DayLog("2024-01-10")
	if day.Note != note {
		t.Fatalf("note = %q, want %q", day.Note, note)
	}
	if !day.Has("h1") {
		t.Fatal("SetNote dropped completions")
	}

	if err := s.SetNote("2024-01-11", "fresh"); err != nil {
		t.Fatal(err)
	}
	if got := s.DayLog("2024-01-11"); got.Note != "fresh" || len(got.Completed) != 0 {
		t.Fatalf("lazily created log = %+v", got)
	}
}

func TestTodayProgress(t *testing.T) {
	s, _ := newTestStore(t)
	exercise := mustCreate(t, s, "Exercise")
	mustCreate(t, s, "Read")

	if _, err := s.ToggleCompletion("2024-01-10", exercise.ID); err != nil {
		t.Fatal(err)
	}

	got := s.TodayProgress("2024-01-10")
	want := Progress{Completed: 1, Total: 2, Percent: 50}
	if got != want {
		t.Fatalf("TodayProgress = %+v, want %+v", got, want)
	}
}

func TestTodayProgress_IgnoresRetiredAndUnknownCompletions(t *testing.T) {
	s, _ := newTestStore(t)
	a := mustCreate(t, s, "A")
	b := mustCreate(t, s, "B")
	mustCreate(t, s, "C")

	for _, id := range []string{a.ID, b.ID, "ghost"} {
		if _, err := s.ToggleCompletion("2024-01-10", id); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.RetireHabit(b.ID); err != nil {
		t.Fatal(err)
	}

	got := s.TodayProgress("2024-01-10")
	want := Progress{Completed: 1, Total: 2, Percent: 50}
	if got != want {
		t.Fatalf("TodayProgress = %+v, want %+v", got, want)
	}
}

func TestTodayProgress_NoActiveHabits(t *testing.T) {
	s, _ := newTestStore(t)
	for _, id := range []string{"x", "y"} {
		if _, err := s.ToggleCompletion("2024-01-10", id); err != nil {
			t.Fatal(err)
		}
	}

	got := s.TodayProgress("2024-01-10")
	if got.Percent != 0 || got.Total != 0 || got.Completed != 0 {
		t.Fatalf("TodayProgress = %+v, want zero value", got)
	}
}

func TestPercentOf_RoundsHalfUp(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{3, 8, 38},
		{1, 2, 50},
		{1, 200, 1},
		{1, 201, 0},
		{5, 5, 100},
	}
	for _, tt := range tests {
		if got := percentOf(tt.completed, tt.total); got != tt.want {
			t.Errorf("percentOf(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestHistoryEntries_OrderAndExclusion(t *testing.T) {
	s, _ := newTestStore(t)
	for _, date := range []string{"2024-01-09", "2024-01-11", "2023-12-31", "2024-01-10"} {
		if _, err := s.ToggleCompletion(date, "h1"); err != nil {
			t.Fatal(err)
		}
	}
	// Written and then emptied again: still listed.
	if _, err := s.ToggleCompletion("2024-01-09", "h1"); err != nil {
		t.Fatal(err)
	}

	entries := s.HistoryEntries("2024-01-10")
	var dates []string
	for _, e := range entries {
		dates = append(dates, e.Date)
	}
	want := []string{"2024-01-11", "2024-01-09", "2023-12-31"}
	if !reflect.DeepEqual(dates, want) {
		t.Fatalf("dates = %v, want %v", dates, want)
	}
	if !entries[1].Log.IsEmpty() {
		t.Fatalf("2024-01-09 log = %+v, want empty", entries[1].Log)
	}
}

func TestReadsNeverCreateLogs(t *testing.T) {
	s, slots := newTestStore(t)
	mustCreate(t, s, "Exercise")
	saved := string(slots[DefaultKey])

	_ = s.TodayProgress("2024-01-10")
	_ = s.HistoryEntries("2024-01-10")
	_ = s.DayLog("2024-01-10")

	if n := len(s.HistoryEntries("")); n != 0 {
		t.Fatalf("history entries = %d, want 0", n)
	}
	if s.Stats().Days != 0 {
		t.Fatal("reads created a day log")
	}
	if string(slots[DefaultKey]) != saved {
		t.Fatal("reads rewrote the slot")
	}
}

func TestOpen_RecoversFromCorruptSlot(t *testing.T) {
	slots := MemorySlots{DefaultKey: []byte("{not json")}
	s := Open(slots)

	if !errors.Is(s.LoadErr(), ErrPersistenceRead) {
		t.Fatalf("LoadErr = %v, want ErrPersistenceRead", s.LoadErr())
	}
	if len(s.Habits()) != 0 || len(s.HistoryEntries("")) != 0 {
		t.Fatal("corrupt slot should yield an empty ledger")
	}
	if _, err := s.CreateHabit("Fresh start"); err != nil {
		t.Fatalf("store unusable after recovery: %v", err)
	}
}

func TestOpen_RecoversFromLoadError(t *testing.T) {
	port := PersistenceFuncs{
		LoadFunc: func(string) ([]byte, error) { return nil, errors.New("disk gone") },
	}
	s := Open(port)
	if !errors.Is(s.LoadErr(), ErrPersistenceRead) {
		t.Fatalf("LoadErr = %v, want ErrPersistenceRead", s.LoadErr())
	}
	if len(s.Habits()) != 0 {
		t.Fatal("want empty ledger")
	}
}

func TestOpen_MissingFieldsReadAsEmpty(t *testing.T) {
	slots := MemorySlots{DefaultKey: []byte(`{"habits":[{"id":"1","name":"Walk","created_at":"2024-01-01T00:00:00.000Z","is_deleted":false}]}`)}
	s := Open(slots)
	if s.LoadErr() != nil {
		t.Fatalf("LoadErr = %v", s.LoadErr())
	}
	if len(s.ActiveHabits()) != 1 {
		t.Fatalf("active = %d, want 1", len(s.ActiveHabits()))
	}
	if len(s.HistoryEntries("")) != 0 {
		t.Fatal("want no logs")
	}
}

func TestWithKey(t *testing.T) {
	slots := MemorySlots{}
	s := Open(slots, WithKey("other"))
	mustCreate(t, s, "Exercise")

	if _, ok := slots["other"]; !ok {
		t.Fatal("ledger not saved under custom key")
	}
	if _, ok := slots[DefaultKey]; ok {
		t.Fatal("ledger also saved under default key")
	}
}

func TestWriteFailure_LeavesMemoryUntouched(t *testing.T) {
	fail := false
	slots := MemorySlots{}
	port := PersistenceFuncs{
		LoadFunc: slots.Load,
		SaveFunc: func(key string, data []byte) error {
			if fail {
				return errors.New("read-only filesystem")
			}
			return slots.Save(key, data)
		},
	}
	s := Open(port)
	h := mustCreate(t, s, "Exercise")

	fail = true
	if _, err := s.CreateHabit("Read"); !errors.Is(err, ErrPersistenceWrite) {
		t.Fatalf("CreateHabit err = %v, want ErrPersistenceWrite", err)
	}
	done, err := s.ToggleCompletion("2024-01-10", h.ID)
	if !errors.Is(err, ErrPersistenceWrite) {
		t.Fatalf("ToggleCompletion err = %v, want ErrPersistenceWrite", err)
	}
	if done {
		t.Fatal("failed toggle reported completion")
	}
	if err := s.SetNote("2024-01-10", "x"); !errors.Is(err, ErrPersistenceWrite) {
		t.Fatalf("SetNote err = %v, want ErrPersistenceWrite", err)
	}

	if len(s.Habits()) != 1 || s.Stats().Days != 0 {
		t.Fatalf("memory changed despite failed writes: %+v", s.Stats())
	}
}
