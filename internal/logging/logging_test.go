package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "routine.log")

	l, err := New(path, "debug")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug("habit toggled")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"habit toggled"`) {
		t.Fatalf("log file = %q", data)
	}
}

func TestNew_UnknownLevelIsInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routine.log")

	l, err := New(path, "chatty")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug("hidden")
	l.Info("shown")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Fatalf("log file = %q", data)
	}
}

func TestNewOrNop_BadPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	l := NewOrNop(filepath.Join(blocker, "sub", "routine.log"), "info")
	if l == nil {
		t.Fatal("NewOrNop returned nil")
	}
	l.Info("goes nowhere")
}
