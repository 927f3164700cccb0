package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/routine/internal/ledger"
)

func openTemp(t *testing.T) (*Slots, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "routine.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestLoad_MissingKeyIsNil(t *testing.T) {
	s, _ := openTemp(t)

	data, err := s.Load("absent")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if data != nil {
		t.Fatalf("Load(absent) = %q, want nil", data)
	}
	if _, ok, err := s.UpdatedAt("absent"); ok || err != nil {
		t.Fatalf("UpdatedAt(absent) = %v, %v", ok, err)
	}
}

func TestSave_Overwrites(t *testing.T) {
	s, _ := openTemp(t)

	if err := s.Save("k", []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("k", []byte("second")); err != nil {
		t.Fatal(err)
	}

	data, err := s.Load("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Fatalf("Load = %q, want second", data)
	}

	at, ok, err := s.UpdatedAt("k")
	if err != nil || !ok {
		t.Fatalf("UpdatedAt = %v, %v", ok, err)
	}
	if time.Since(at) > time.Minute {
		t.Fatalf("UpdatedAt = %v, too old", at)
	}
}

func TestReopen_KeepsData(t *testing.T) {
	s, path := openTemp(t)
	if err := s.Save("k", []byte(`{"habits":[],"logs":{}}`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Second open re-runs migrations against an up-to-date schema.
	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = again.Close() }()

	data, err := again.Load("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"habits":[],"logs":{}}` {
		t.Fatalf("Load after reopen = %q", data)
	}
}

func TestSlots_BacksLedger(t *testing.T) {
	s, path := openTemp(t)

	led := ledger.Open(s)
	h, err := led.CreateHabit("Exercise")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := led.ToggleCompletion("2024-01-10", h.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	again, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = again.Close() }()

	reloaded := ledger.Open(again)
	if reloaded.LoadErr() != nil {
		t.Fatalf("LoadErr = %v", reloaded.LoadErr())
	}
	if got := reloaded.TodayProgress("2024-01-10"); got.Completed != 1 || got.Total != 1 {
		t.Fatalf("progress after reload = %+v", got)
	}
}
