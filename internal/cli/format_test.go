package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDateLong(t *testing.T) {
	if got := FormatDateLong("2024-01-10"); got != "Wednesday, January 10" {
		t.Fatalf("FormatDateLong = %q", got)
	}
	if got := FormatDateLong("garbage"); got != "garbage" {
		t.Fatalf("FormatDateLong(garbage) = %q", got)
	}
	if got := DateWeekday("2024-01-10"); got != "Wed" {
		t.Fatalf("DateWeekday = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"Exercise", 10, "Exercise"},
		{"Exercise", 5, "Exer…"},
		{"日本語テキスト", 3, "日本…"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0f8fad5b-d9cb-469f-a165-70867728950e"); got != "0f8fad5b" {
		t.Fatalf("ShortID = %q", got)
	}
	if got := ShortID("h1"); got != "h1" {
		t.Fatalf("ShortID(h1) = %q", got)
	}
}

func TestRenderProgressBar(t *testing.T) {
	out := RenderProgressBar(1, 2, 50, 10)
	plain := stripANSI(out)
	if !strings.Contains(plain, "█████░░░░░") {
		t.Fatalf("bar = %q", plain)
	}
	if !strings.Contains(plain, "1/2 50%") {
		t.Fatalf("bar = %q, want ratio and percent", plain)
	}

	empty := stripANSI(RenderProgressBar(0, 0, 0, 4))
	if !strings.Contains(empty, "░░░░") || !strings.Contains(empty, "0/0 0%") {
		t.Fatalf("empty bar = %q", empty)
	}
}

func TestRenderTable_AlignsWideGlyphs(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"", "Habit"},
		Rows: [][]string{
			{FormatCheck(true), "Exercise"},
			{FormatCheck(false), "Read"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Fatalf("line %d width = %d, want %d: %q", i, w, want, stripANSI(line))
		}
	}
}

func TestRenderNote(t *testing.T) {
	if RenderNote("") != "" {
		t.Fatal("empty note should render nothing")
	}
	plain := stripANSI(RenderNote("one\ntwo"))
	if strings.Count(plain, "│") != 2 {
		t.Fatalf("note = %q", plain)
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
