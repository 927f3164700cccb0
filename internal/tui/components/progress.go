package components

import (
	"fmt"

	"github.com/theirongolddev/routine/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForPct returns the bar color for a completion percentage: muted below
// half, accent from half, done-green at 100.
func ColorForPct(pct int) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 100:
		return t.Done
	case pct >= 50:
		return t.Accent
	default:
		return t.TextMuted
	}
}

// CompletionBar renders "████░░░░ 1/2 50%" using a bubbles progress bar.
func CompletionBar(completed, total, pct, width int) string {
	t := theme.Active

	barW := width - 12
	if barW < 4 {
		barW = 4
	}

	color := ColorForPct(pct)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	ratio := 0.0
	if total > 0 {
		ratio = float64(completed) / float64(total)
	}

	spaceStyle := lipgloss.NewStyle().Background(t.Surface)
	countStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)

	return bar.ViewAs(ratio) +
		spaceStyle.Render(" ") +
		countStyle.Render(fmt.Sprintf("%d/%d", completed, total)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%d%%", pct))
}
