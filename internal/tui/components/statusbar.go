package components

import (
	"github.com/theirongolddev/routine/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Flash is a one-line notification shown in the status bar.
type Flash struct {
	Text string
	Err  bool
}

// RenderStatusBar renders the bottom status bar: key hints or the current
// flash on the left, the current date and last-save age on the right.
func RenderStatusBar(width int, flash Flash, today, savedAgo string) string {
	t := theme.Active

	base := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	left := base.Render(" [?]help  [q]uit")
	if flash.Text != "" {
		color := t.Done
		if flash.Err {
			color = t.Danger
		}
		left = base.Render(" ") + lipgloss.NewStyle().
			Foreground(color).
			Background(t.Surface).
			Bold(true).
			Render(flash.Text)
	}

	right := today
	if savedAgo != "" {
		right += " · saved " + savedAgo
	}
	right = base.Render(right + " ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	gap := base.Width(padding).Render("")

	return left + gap + right
}
