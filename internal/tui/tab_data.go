package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/routine/internal/backup"
	"github.com/theirongolddev/routine/internal/cli"
	"github.com/theirongolddev/routine/internal/ledger"
	"github.com/theirongolddev/routine/internal/tui/components"
	"github.com/theirongolddev/routine/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

const (
	dataActionExport = iota
	dataActionImport
	dataActionTheme
	dataActionCount // sentinel
)

// dataState tracks the Data tab state.
type dataState struct {
	cursor    int
	importing bool
	input     textinput.Model
}

func (a App) updateDataKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.moveCursor(1)
		return a, nil, true
	case "k", "up":
		a.moveCursor(-1)
		return a, nil, true
	case "enter":
		switch a.dataState.cursor {
		case dataActionExport:
			return a, a.exportBackup(), true
		case dataActionImport:
			a.dataState.importing = true
			a.dataState.input = newLineInput(ledger.BackupFileName(a.today))
			a.dataState.input.Focus()
			return a, a.dataState.input.Cursor.BlinkCmd(), true
		case dataActionTheme:
			return a, a.cycleTheme(), true
		}
	}
	return a, nil, false
}

func (a *App) exportBackup() tea.Cmd {
	path, n, err := backup.Write(a.store, a.backupDir, a.today)
	if err != nil {
		a.log.Warn("export failed", zap.Error(err))
		return a.setFlash(components.Flash{Text: "Export failed: " + err.Error(), Err: true})
	}
	a.log.Info("ledger exported", zap.String("path", path), zap.Int("bytes", n))
	return a.setFlash(components.Flash{
		Text: fmt.Sprintf("Exported to %s (%s)", path, humanize.Bytes(uint64(n))),
	})
}

func (a App) updateImportInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.dataState.importing = false
		path := strings.TrimSpace(a.dataState.input.Value())
		if path == "" {
			return a, nil
		}
		data, err := backup.Read(path)
		if err != nil {
			a.log.Warn("import read failed", zap.Error(err))
			return a, a.setFlash(components.Flash{Text: "Import failed: " + err.Error(), Err: true})
		}
		if err := ledger.ValidateSnapshot(data); err != nil {
			a.log.Warn("import rejected", zap.Error(err))
			return a, a.setFlash(components.Flash{Text: "Invalid backup file. Current data kept.", Err: true})
		}
		cmd := a.openConfirm(
			"This will overwrite your current data. Continue?",
			path,
			func(a *App) tea.Cmd { return a.importBackup(path, data) },
		)
		return a, cmd
	case "esc":
		a.dataState.importing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.dataState.input, cmd = a.dataState.input.Update(msg)
	return a, cmd
}

func (a *App) importBackup(path string, data []byte) tea.Cmd {
	err := a.store.ImportSnapshot(data)
	a.clampTodayCursor()
	a.historyState.offset = 0
	if err == nil {
		a.log.Info("ledger imported", zap.String("path", path))
	}
	if errors.Is(err, ledger.ErrFormat) {
		a.log.Warn("import rejected", zap.Error(err))
		return a.setFlash(components.Flash{Text: "Invalid backup file. Current data kept.", Err: true})
	}
	st := a.store.Stats()
	return a.flashResult(fmt.Sprintf("Imported %d habits, %d days", st.Habits, st.Days), err, "Import failed")
}

func (a *App) cycleTheme() tea.Cmd {
	next := theme.Next(theme.Active.Name)
	theme.SetActive(next.Name)
	if a.saveTheme != nil {
		if err := a.saveTheme(next.Name); err != nil {
			a.log.Warn("saving theme failed", zap.Error(err))
			return a.setFlash(components.Flash{Text: "Theme " + next.Name + " (not saved)", Err: true})
		}
	}
	return a.setFlash(components.Flash{Text: "Theme " + next.Name})
}

func (a App) renderDataTab(cw int) string {
	t := theme.Active
	st := a.store.Stats()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	innerW := components.CardInnerWidth(cw)

	b := strings.Builder{}
	b.WriteString(components.StatCardRow([]components.Stat{
		{Label: "Habits", Value: cli.FormatNumber(int64(st.Habits))},
		{Label: "Active", Value: cli.FormatNumber(int64(st.Active))},
		{Label: "Retired", Value: cli.FormatNumber(int64(st.Retired)), Hint: "kept in history"},
		{Label: "Days logged", Value: cli.FormatNumber(int64(st.Days))},
	}, cw))
	b.WriteString("\n")

	actions := []struct{ label, value string }{
		{"Export backup", a.backupDir + "/" + ledger.BackupFileName(a.today)},
		{"Import backup", "replace all data from a file"},
		{"Theme", t.Name},
	}

	var form strings.Builder
	for i, act := range actions {
		if i == dataActionImport && a.dataState.importing {
			form.WriteString(markerStyle.Render("▸ "))
			form.WriteString(selectedLabelStyle.Render(fmt.Sprintf("%-16s ", act.label)))
			form.WriteString(a.dataState.input.View())
			form.WriteString("\n")
			continue
		}
		if i == a.dataState.cursor {
			line := markerStyle.Render("▸ ") +
				selectedLabelStyle.Render(fmt.Sprintf("%-16s ", act.label)) +
				selectedStyle.Render(act.value)
			if pad := innerW - lipgloss.Width(line); pad > 0 {
				line += selectedStyle.Render(strings.Repeat(" ", pad))
			}
			form.WriteString(line)
		} else {
			form.WriteString(valueStyle.Render("  "))
			form.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", act.label)))
			form.WriteString(valueStyle.Render(act.value))
		}
		form.WriteString("\n")
	}
	form.WriteString("\n")
	if a.dataState.importing {
		form.WriteString(dimStyle.Render("[Enter] choose file  [Esc] cancel"))
	} else {
		form.WriteString(dimStyle.Render("[j/k] navigate  [Enter] run"))
	}

	b.WriteString(components.ContentCard("Data", form.String(), cw))
	return b.String()
}
