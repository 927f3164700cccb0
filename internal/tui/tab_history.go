package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/routine/internal/cli"
	"github.com/theirongolddev/routine/internal/ledger"
	"github.com/theirongolddev/routine/internal/tui/components"
	"github.com/theirongolddev/routine/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// trendDays is how many past days the history sparkline covers.
const trendDays = 30

// historyState holds the History tab scroll position.
type historyState struct {
	offset int // index of the first entry shown
}

func (a App) updateHistoryKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g":
		a.historyState.offset = 0
	default:
		return a, nil, false
	}
	return a, nil, true
}

// habitNames returns the display names of ids known to the ledger, in
// completion order. Unknown ids are skipped.
func habitNames(s *ledger.Store, ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if h, ok := s.Habit(id); ok {
			names = append(names, h.Name)
		}
	}
	return names
}

// completionTrend returns completed counts for the calendar days before
// today, oldest first. It spans at most n days and starts no earlier than
// the oldest entry. Days without a log count as zero.
func completionTrend(entries []ledger.HistoryEntry, today string, n int) []int {
	end, err := time.Parse(ledger.DateLayout, today)
	if err != nil || len(entries) == 0 || n <= 0 {
		return nil
	}
	oldest, err := time.Parse(ledger.DateLayout, entries[len(entries)-1].Date)
	if err != nil {
		oldest = end.AddDate(0, 0, -n)
	}

	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		counts[e.Date] = len(e.Log.Completed)
	}

	days := min(n, int(end.Sub(oldest).Hours()/24))
	if days <= 0 {
		return nil
	}
	out := make([]int, days)
	for i := range out {
		out[i] = counts[end.AddDate(0, 0, i-days).Format(ledger.DateLayout)]
	}
	return out
}

func (a App) renderHistoryTab(cw, h int) string {
	t := theme.Active
	entries := a.store.HistoryEntries(a.today)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if len(entries) == 0 {
		return components.ContentCard("History", mutedStyle.Render("No past days recorded yet."), cw)
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	doneDot := lipgloss.NewStyle().Foreground(t.Done).Background(t.Surface)
	emptyDot := lipgloss.NewStyle().Foreground(t.Pending).Background(t.Surface)
	namesStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Italic(true)
	innerW := components.CardInnerWidth(cw)

	var b strings.Builder

	if trend := completionTrend(entries, a.today, trendDays); len(trend) > 0 {
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Last %d days", len(trend)),
			components.Sparkline(trend, t.Done),
			cw,
		))
		b.WriteString("\n")
	}

	offset := a.historyState.offset
	if offset >= len(entries) {
		offset = len(entries) - 1
	}

	// Each entry takes up to three lines plus a blank separator.
	visible := (h - lipgloss.Height(b.String()) - 3) / 4
	if visible < 1 {
		visible = 1
	}
	end := min(offset+visible, len(entries))

	var body strings.Builder
	for i := offset; i < end; i++ {
		e := entries[i]
		n := len(e.Log.Completed)

		dot := emptyDot.Render("●")
		if n > 0 {
			dot = doneDot.Render("●")
		}
		body.WriteString(dot)
		body.WriteString(dateStyle.Render(" " + cli.DateWeekday(e.Date) + " " + e.Date))
		body.WriteString(countStyle.Render(fmt.Sprintf("  %d completed", n)))
		body.WriteString("\n")

		if names := habitNames(a.store, e.Log.Completed); len(names) > 0 {
			body.WriteString(namesStyle.Render("  " + cli.Truncate(strings.Join(names, ", "), innerW-2)))
			body.WriteString("\n")
		}
		if e.Log.Note != "" {
			firstLine, _, _ := strings.Cut(e.Log.Note, "\n")
			body.WriteString(noteStyle.Render("  " + cli.Truncate(firstLine, innerW-2)))
			body.WriteString("\n")
		}
		if i < end-1 {
			body.WriteString("\n")
		}
	}
	body.WriteString("\n")
	body.WriteString(dimStyle.Render(fmt.Sprintf("%d–%d of %d  [j/k] scroll", offset+1, end, len(entries))))

	b.WriteString(components.ContentCard("History", body.String(), cw))
	return b.String()
}
