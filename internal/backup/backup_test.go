package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/routine/internal/ledger"
)

type failingExporter struct{}

func (failingExporter) ExportSnapshot() ([]byte, error) {
	return nil, errors.New("boom")
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	src := ledger.Open(ledger.MemorySlots{})
	if _, err := src.CreateHabit("Exercise"); err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(t.TempDir(), "backups")
	path, n, err := Write(src, dir, "2024-01-10")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "tracker_backup_2024-01-10.json" {
		t.Fatalf("path = %q", path)
	}
	if n == 0 {
		t.Fatal("Write reported zero bytes")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}

	data, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(data) != n {
		t.Fatalf("Read %d bytes, wrote %d", len(data), n)
	}

	dst := ledger.Open(ledger.MemorySlots{})
	if err := dst.ImportSnapshot(data); err != nil {
		t.Fatalf("ImportSnapshot: %v", err)
	}
	if got := dst.Habits(); len(got) != 1 || got[0].Name != "Exercise" {
		t.Fatalf("imported habits = %+v", got)
	}
}

func TestWrite_ExportFailure(t *testing.T) {
	if _, _, err := Write(failingExporter{}, t.TempDir(), "2024-01-10"); err == nil {
		t.Fatal("Write succeeded with a failing exporter")
	}
}

func TestRead_Missing(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("Read succeeded on a missing file")
	}
}
