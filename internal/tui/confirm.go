package tui

import (
	"github.com/theirongolddev/routine/internal/tui/components"
	"github.com/theirongolddev/routine/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// confirmState is a pending yes/no question. It lives behind a pointer so
// the huh form can keep writing to ok while App is passed by value.
type confirmState struct {
	form     *huh.Form
	ok       bool
	onAccept func(a *App) tea.Cmd
}

func newConfirm(title, description string, width int, onAccept func(a *App) tea.Cmd) *confirmState {
	c := &confirmState{onAccept: onAccept}
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&c.ok)
	if description != "" {
		field = field.Description(description)
	}
	c.form = huh.NewForm(huh.NewGroup(field)).
		WithShowHelp(false).
		WithWidth(width)
	return c
}

// openConfirm shows a dialog and returns its init command.
func (a *App) openConfirm(title, description string, onAccept func(a *App) tea.Cmd) tea.Cmd {
	a.confirm = newConfirm(title, description, a.dialogWidth(), onAccept)
	return a.confirm.form.Init()
}

func (a App) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		a.confirm = nil
		return a, nil
	}

	form, cmd := a.confirm.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.confirm.form = f
	}

	switch a.confirm.form.State {
	case huh.StateCompleted:
		c := a.confirm
		a.confirm = nil
		if c.ok && c.onAccept != nil {
			return a, c.onAccept(&a)
		}
		return a, nil
	case huh.StateAborted:
		a.confirm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) renderConfirm(cw, h int) string {
	t := theme.Active
	card := components.FocusCard("Confirm", a.confirm.form.View(), a.dialogWidth()+4)
	return lipgloss.Place(cw, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
