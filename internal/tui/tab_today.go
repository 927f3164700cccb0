package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/routine/internal/cli"
	"github.com/theirongolddev/routine/internal/ledger"
	"github.com/theirongolddev/routine/internal/tui/components"
	"github.com/theirongolddev/routine/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// todayState tracks the Today tab.
type todayState struct {
	cursor int

	adding bool
	input  textinput.Model

	editingNote bool
	note        textarea.Model
}

func (a *App) clampTodayCursor() {
	n := len(a.store.ActiveHabits())
	if a.todayState.cursor >= n {
		a.todayState.cursor = n - 1
	}
	if a.todayState.cursor < 0 {
		a.todayState.cursor = 0
	}
}

func (a App) selectedHabit() (ledger.Habit, bool) {
	active := a.store.ActiveHabits()
	if a.todayState.cursor < 0 || a.todayState.cursor >= len(active) {
		return ledger.Habit{}, false
	}
	return active[a.todayState.cursor], true
}

func (a App) updateTodayKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.moveCursor(1)
		return a, nil, true
	case "k", "up":
		a.moveCursor(-1)
		return a, nil, true
	case " ", "enter":
		h, ok := a.selectedHabit()
		if !ok {
			return a, nil, true
		}
		done, err := a.store.ToggleCompletion(a.today, h.ID)
		msg := fmt.Sprintf("Completed %s", h.Name)
		if !done {
			msg = fmt.Sprintf("Unchecked %s", h.Name)
		}
		if err == nil {
			a.log.Debug("habit toggled", zap.String("habit", h.ID), zap.String("date", a.today), zap.Bool("done", done))
		}
		return a, a.flashResult(msg, err, "Could not save"), true
	case "a":
		a.todayState.adding = true
		a.todayState.input = newLineInput("New habit name")
		a.todayState.input.Focus()
		return a, a.todayState.input.Cursor.BlinkCmd(), true
	case "x":
		h, ok := a.selectedHabit()
		if !ok {
			return a, nil, true
		}
		id, name := h.ID, h.Name
		cmd := a.openConfirm(
			"Remove from daily view? (History will be kept)",
			name,
			func(a *App) tea.Cmd {
				err := a.store.RetireHabit(id)
				a.clampTodayCursor()
				if err == nil {
					a.log.Info("habit retired", zap.String("habit", id))
				}
				return a.flashResult("Removed "+name+" from daily view", err, "Could not remove habit")
			},
		)
		return a, cmd, true
	case "n":
		a.todayState.editingNote = true
		a.todayState.note = newNoteArea(a.store.DayLog(a.today).Note, components.CardInnerWidth(a.contentWidth()))
		return a, a.todayState.note.Focus(), true
	}
	return a, nil, false
}

func (a App) updateAddInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(a.todayState.input.Value())
		a.todayState.adding = false
		h, err := a.store.CreateHabit(name)
		if err == nil {
			a.log.Info("habit created", zap.String("habit", h.ID))
			a.todayState.cursor = len(a.store.ActiveHabits()) - 1
		}
		return a, a.flashResult("Added "+name, err, "Could not add habit")
	case "esc":
		a.todayState.adding = false
		return a, nil
	}

	var cmd tea.Cmd
	a.todayState.input, cmd = a.todayState.input.Update(msg)
	return a, cmd
}

func (a App) updateNoteInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		a.todayState.editingNote = false
		err := a.store.SetNote(a.today, a.todayState.note.Value())
		return a, a.flashResult("Note saved", err, "Could not save note")
	case "esc":
		a.todayState.editingNote = false
		return a, nil
	}

	var cmd tea.Cmd
	a.todayState.note, cmd = a.todayState.note.Update(msg)
	return a, cmd
}

func (a App) renderTodayTab(cw int) string {
	t := theme.Active
	progress := a.store.TodayProgress(a.today)
	active := a.store.ActiveHabits()
	log := a.store.DayLog(a.today)

	dateStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	doneMark := lipgloss.NewStyle().Foreground(t.Done).Background(t.Surface).Bold(true)
	pendingMark := lipgloss.NewStyle().Foreground(t.Pending).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	doneRowStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Strikethrough(true)
	cursorStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Bold(true)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	innerW := components.CardInnerWidth(cw)

	// Header: date and progress
	var head strings.Builder
	head.WriteString(dateStyle.Render(cli.FormatDateLong(a.today)))
	head.WriteString("\n\n")
	head.WriteString(components.CompletionBar(progress.Completed, progress.Total, progress.Percent, innerW))

	// Habit list
	var list strings.Builder
	if len(active) == 0 {
		list.WriteString(mutedStyle.Render("No habits yet. Press "))
		list.WriteString(dateStyle.Render("a"))
		list.WriteString(mutedStyle.Render(" to add one."))
	}
	for i, h := range active {
		done := log.Has(h.ID)
		mark := pendingMark.Render(cli.FormatCheck(false))
		if done {
			mark = doneMark.Render(cli.FormatCheck(true))
		}
		name := cli.Truncate(h.Name, innerW-4)

		if i == a.todayState.cursor {
			line := cursorStyle.Render("▸ ") + mark + selectedStyle.Render(" "+name)
			if pad := innerW - lipgloss.Width(line); pad > 0 {
				line += selectedStyle.Render(strings.Repeat(" ", pad))
			}
			list.WriteString(line)
		} else {
			style := rowStyle
			if done {
				style = doneRowStyle
			}
			list.WriteString(rowStyle.Render("  ") + mark + rowStyle.Render(" ") + style.Render(name))
		}
		list.WriteString("\n")
	}

	if a.todayState.adding {
		list.WriteString("\n")
		list.WriteString(mutedStyle.Render("New habit: "))
		list.WriteString(a.todayState.input.View())
		list.WriteString("\n")
		list.WriteString(dimStyle.Render("[Enter] add  [Esc] cancel"))
	} else {
		list.WriteString("\n")
		list.WriteString(dimStyle.Render("[space] toggle  [a] add  [x] remove  [n] note"))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Today", head.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard(fmt.Sprintf("Habits (%d)", len(active)), list.String(), cw))
	b.WriteString("\n")

	if a.todayState.editingNote {
		body := a.todayState.note.View() + "\n" + dimStyle.Render("[ctrl+s] save  [Esc] cancel")
		b.WriteString(components.FocusCard("Note", body, cw))
	} else {
		note := log.Note
		if note == "" {
			note = dimStyle.Render("No note for today.")
		} else {
			note = mutedStyle.Italic(true).Render(note)
		}
		b.WriteString(components.ContentCard("Note", note, cw))
	}

	return b.String()
}

// describeErr returns a short user-facing reason for a ledger error.
func describeErr(err error) string {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		return "habit name cannot be empty"
	case errors.Is(err, ledger.ErrFormat):
		return "not a valid backup file"
	case errors.Is(err, ledger.ErrPersistenceWrite):
		return "storage unavailable"
	}
	return err.Error()
}
