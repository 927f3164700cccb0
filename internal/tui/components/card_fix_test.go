package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/routine/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}

	// Padding under the short card must still carry styling.
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no ANSI codes: %q", i, lines[i])
		}
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "A", 30)
	tallCard := ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20)

	joined := CardRow([]string{tallCard, shortCard})
	for i, line := range strings.Split(joined, "\n") {
		if w := lipgloss.Width(line); w != 50 {
			t.Errorf("line %d width = %d, want 50", i, w)
		}
	}
}

func TestLayoutRow(t *testing.T) {
	tests := []struct {
		total, n int
		want     []int
	}{
		{10, 3, []int{4, 3, 3}},
		{9, 3, []int{3, 3, 3}},
		{5, 0, nil},
	}
	for _, tt := range tests {
		got := LayoutRow(tt.total, tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("LayoutRow(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("LayoutRow(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
			}
		}
	}
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]int{0, 1, 2, 4}, theme.Active.Done)
	if got := lipgloss.Width(out); got != 4 {
		t.Fatalf("sparkline width = %d, want 4", got)
	}
	if !strings.Contains(out, "█") || !strings.Contains(out, "▁") {
		t.Fatalf("sparkline = %q", out)
	}
	if Sparkline(nil, theme.Active.Done) != "" {
		t.Fatal("empty sparkline should render nothing")
	}
}

func TestColorForPct(t *testing.T) {
	theme.SetActive("flexoki-dark")
	if ColorForPct(100) != theme.Active.Done {
		t.Fatal("100% should use the done color")
	}
	if ColorForPct(50) != theme.Active.Accent {
		t.Fatal("50% should use the accent color")
	}
	if ColorForPct(0) != theme.Active.TextMuted {
		t.Fatal("0% should be muted")
	}
}

func TestTabVisualWidthMatchesRender(t *testing.T) {
	for active := range Tabs {
		bar := RenderTabBar(active, 0)
		want := 0
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}
		want += len(Tabs) - 1
		if got := lipgloss.Width(bar); got != want {
			t.Fatalf("active=%d: bar width = %d, want %d", active, got, want)
		}
	}
}
