package components

import (
	"strings"

	"github.com/theirongolddev/routine/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders one block per value, scaled to the largest value.
// Zero values render as the lowest block in the pending color.
func Sparkline(values []int, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := 0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	on := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	off := lipgloss.NewStyle().Foreground(t.Pending).Background(t.Surface)

	var buf strings.Builder
	for _, v := range values {
		if v <= 0 {
			buf.WriteString(off.Render(string(sparkBlocks[0])))
			continue
		}
		idx := v * (len(sparkBlocks) - 1) / peak
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		buf.WriteString(on.Render(string(sparkBlocks[idx])))
	}
	return buf.String()
}
