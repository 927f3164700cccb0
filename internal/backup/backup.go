// Package backup moves ledger snapshots between the store and backup files.
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/theirongolddev/routine/internal/ledger"
)

// MaxSize bounds how much of a backup file is read on import.
const MaxSize = 32 << 20

// ErrTooLarge is returned when a backup file exceeds MaxSize.
var ErrTooLarge = errors.New("backup file too large")

// Exporter is the part of the ledger store an export needs.
type Exporter interface {
	ExportSnapshot() ([]byte, error)
}

// Write exports the ledger to dir/tracker_backup_<today>.json and returns the
// written path and size. An existing file for the same day is replaced.
func Write(s Exporter, dir, today string) (string, int, error) {
	data, err := s.ExportSnapshot()
	if err != nil {
		return "", 0, fmt.Errorf("exporting ledger: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("creating backup dir: %w", err)
	}

	path := filepath.Join(dir, ledger.BackupFileName(today))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", 0, fmt.Errorf("writing backup: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", 0, fmt.Errorf("writing backup: %w", err)
	}
	return path, len(data), nil
}

// Read loads a backup file for import. Content is not validated here.
func Read(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening backup: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}
	if len(data) > MaxSize {
		return nil, fmt.Errorf("%s: %w", path, ErrTooLarge)
	}
	return data, nil
}
