package ledger

import (
	"errors"
	"testing"
	"time"
)

func TestDateOf_UsesLocalZone(t *testing.T) {
	orig := time.Local
	defer func() { time.Local = orig }()
	time.Local = time.FixedZone("UTC-5", -5*3600)

	// 03:00 UTC is still the previous evening five hours west.
	ts := time.Date(2024, 1, 10, 3, 0, 0, 0, time.UTC)
	if got := DateOf(ts); got != "2024-01-09" {
		t.Fatalf("DateOf = %q, want 2024-01-09", got)
	}
}

func TestParseDate(t *testing.T) {
	valid := []string{"2024-01-10", "2024-02-29", "1999-12-31"}
	for _, s := range valid {
		if got, err := ParseDate(s); err != nil || got != s {
			t.Errorf("ParseDate(%q) = %q, %v", s, got, err)
		}
	}

	invalid := []string{"", "2024-1-10", "2023-02-29", "10/01/2024", "2024-01-10T00:00:00Z", "today"}
	for _, s := range invalid {
		if _, err := ParseDate(s); !errors.Is(err, ErrValidation) {
			t.Errorf("ParseDate(%q) err = %v, want ErrValidation", s, err)
		}
	}
}

func TestBackupFileName(t *testing.T) {
	if got := BackupFileName("2024-01-10"); got != "tracker_backup_2024-01-10.json" {
		t.Fatalf("BackupFileName = %q", got)
	}
}

func TestEmptyDayLog(t *testing.T) {
	d := EmptyDayLog()
	if !d.IsEmpty() || d.Completed == nil {
		t.Fatalf("EmptyDayLog = %#v", d)
	}
	if d.Has("anything") {
		t.Fatal("empty log has a completion")
	}
}
