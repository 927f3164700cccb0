package clock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeTime struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeTime) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeTime) set(t time.Time) {
	f.mu.Lock()
	f.t = t
	f.mu.Unlock()
}

func TestWatcherCheck(t *testing.T) {
	ft := &fakeTime{t: time.Date(2024, 1, 10, 23, 59, 0, 0, time.Local)}
	w := NewWatcher(NewWithFunc(ft.now), time.Minute)

	if w.Today() != "2024-01-10" {
		t.Fatalf("Today = %q, want 2024-01-10", w.Today())
	}
	if _, changed := w.Check(); changed {
		t.Fatal("Check reported a change without one")
	}

	ft.set(time.Date(2024, 1, 10, 23, 59, 59, 0, time.Local))
	if _, changed := w.Check(); changed {
		t.Fatal("time of day alone should not change the date")
	}

	ft.set(time.Date(2024, 1, 11, 0, 0, 1, 0, time.Local))
	today, changed := w.Check()
	if !changed || today != "2024-01-11" {
		t.Fatalf("Check = %q, %v; want 2024-01-11, true", today, changed)
	}
	if _, changed := w.Check(); changed {
		t.Fatal("same date reported twice")
	}
}

func TestNewWatcherIntervalFloor(t *testing.T) {
	c := New()
	tests := []struct {
		in, want time.Duration
	}{
		{0, DefaultInterval},
		{-time.Second, DefaultInterval},
		{10 * time.Millisecond, time.Second},
		{90 * time.Second, 90 * time.Second},
	}
	for _, tt := range tests {
		if got := NewWatcher(c, tt.in).Interval(); got != tt.want {
			t.Errorf("NewWatcher(%v).Interval() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWatcherRun_FiresOnRolloverAndStops(t *testing.T) {
	ft := &fakeTime{t: time.Date(2024, 1, 10, 23, 59, 0, 0, time.Local)}
	w := NewWatcher(NewWithFunc(ft.now), time.Second)

	changes := make(chan string, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(today string) { changes <- today })
	}()

	ft.set(time.Date(2024, 1, 11, 0, 0, 5, 0, time.Local))

	select {
	case got := <-changes:
		if got != "2024-01-11" {
			t.Fatalf("onChange(%q), want 2024-01-11", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the rollover")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}

	select {
	case extra := <-changes:
		t.Fatalf("unexpected extra change %q", extra)
	default:
	}
}
