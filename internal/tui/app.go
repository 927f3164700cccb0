// Package tui provides the interactive Bubble Tea dashboard for routine.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/routine/internal/clock"
	"github.com/theirongolddev/routine/internal/ledger"
	"github.com/theirongolddev/routine/internal/tui/components"
	"github.com/theirongolddev/routine/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// DayChangedMsg is sent when the local date rolls over.
type DayChangedMsg struct {
	Date string
}

type flashExpiredMsg struct {
	seq int
}

const (
	tabToday = iota
	tabHistory
	tabData
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 120
	minContentHeight = 5
	flashDuration    = 4 * time.Second
)

// Options configures the dashboard.
type Options struct {
	Store     *ledger.Store
	Clock     clock.Clock
	BackupDir string
	Theme     string

	// SavedAt reports when the ledger slot was last written. Optional.
	SavedAt func() (time.Time, bool)

	// SaveTheme persists a theme change. Optional.
	SaveTheme func(name string) error

	Logger *zap.Logger
}

// App is the root Bubble Tea model.
type App struct {
	store     *ledger.Store
	clock     clock.Clock
	backupDir string
	savedAt   func() (time.Time, bool)
	saveTheme func(string) error
	log       *zap.Logger

	today     string
	lastSaved time.Time

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	flash    components.Flash
	flashSeq int

	// Per-tab state
	todayState   todayState
	historyState historyState
	dataState    dataState

	// Active confirmation dialog, nil when none
	confirm *confirmState
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.BackupDir == "" {
		opts.BackupDir = "."
	}
	if opts.Theme != "" {
		theme.SetActive(opts.Theme)
	}

	a := App{
		store:     opts.Store,
		clock:     opts.Clock,
		backupDir: opts.BackupDir,
		savedAt:   opts.SavedAt,
		saveTheme: opts.SaveTheme,
		log:       opts.Logger,
		today:     opts.Clock.Today(),
	}
	a.refreshSavedAt()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	var cmds []tea.Cmd
	cmds = append(cmds, tea.EnableMouseCellMotion)
	if err := a.store.LoadErr(); err != nil {
		cmds = append(cmds, func() tea.Msg {
			return flashMsg{components.Flash{Text: "Stored data was unreadable; starting empty", Err: true}}
		})
	}
	return tea.Batch(cmds...)
}

// flashMsg asks the app to show a flash from outside Update.
type flashMsg struct {
	flash components.Flash
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.confirm != nil {
			a.confirm.form = a.confirm.form.WithWidth(a.dialogWidth())
		}
		if a.todayState.editingNote {
			a.todayState.note.SetWidth(components.CardInnerWidth(a.contentWidth()))
		}
		return a, nil

	case DayChangedMsg:
		a.today = msg.Date
		a.clampTodayCursor()
		a.historyState.offset = 0
		a.log.Info("day changed", zap.String("date", msg.Date))
		return a, nil

	case flashMsg:
		return a, a.setFlash(msg.flash)

	case flashExpiredMsg:
		if msg.seq == a.flashSeq {
			a.flash = components.Flash{}
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.confirm != nil || a.editing() {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// Confirmation dialogs and text editors intercept all keys
		if a.confirm != nil {
			return a.updateConfirm(msg)
		}
		if a.todayState.adding {
			return a.updateAddInput(msg)
		}
		if a.todayState.editingNote {
			return a.updateNoteInput(msg)
		}
		if a.dataState.importing {
			return a.updateImportInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch a.activeTab {
		case tabToday:
			if m, cmd, ok := a.updateTodayKeys(key); ok {
				return m, cmd
			}
		case tabHistory:
			if m, cmd, ok := a.updateHistoryKeys(key); ok {
				return m, cmd
			}
		case tabData:
			if m, cmd, ok := a.updateDataKeys(key); ok {
				return m, cmd
			}
		}

		if key == "q" {
			return a, tea.Quit
		}

		switch key {
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if r := []rune(key); len(r) == 1 {
				if idx := components.TabIdxByKey(r[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.) to whatever has focus
	if a.confirm != nil {
		return a.updateConfirm(msg)
	}
	var cmd tea.Cmd
	switch {
	case a.todayState.adding:
		a.todayState.input, cmd = a.todayState.input.Update(msg)
	case a.todayState.editingNote:
		a.todayState.note, cmd = a.todayState.note.Update(msg)
	case a.dataState.importing:
		a.dataState.input, cmd = a.dataState.input.Update(msg)
	}
	return a, cmd
}

func (a App) editing() bool {
	return a.todayState.adding || a.todayState.editingNote || a.dataState.importing
}

func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case tabToday:
		a.todayState.cursor += delta
		a.clampTodayCursor()
	case tabHistory:
		last := len(a.store.HistoryEntries(a.today)) - 1
		a.historyState.offset = max(0, min(a.historyState.offset+delta, last))
	case tabData:
		a.dataState.cursor += delta
		a.dataState.cursor = max(0, min(a.dataState.cursor, dataActionCount-1))
	}
}

// setFlash shows f in the status bar and schedules its removal.
func (a *App) setFlash(f components.Flash) tea.Cmd {
	a.flashSeq++
	a.flash = f
	seq := a.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}

// flashResult turns the outcome of a mutation into exactly one flash.
func (a *App) flashResult(success string, err error, failure string) tea.Cmd {
	if err != nil {
		a.log.Warn(failure, zap.Error(err))
		return a.setFlash(components.Flash{Text: failure + ": " + describeErr(err), Err: true})
	}
	a.refreshSavedAt()
	return a.setFlash(components.Flash{Text: success})
}

func (a *App) refreshSavedAt() {
	if a.savedAt == nil {
		return
	}
	if t, ok := a.savedAt(); ok {
		a.lastSaved = t
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) dialogWidth() int {
	w := a.contentWidth() - 8
	if w > 60 {
		w = 60
	}
	if w < 30 {
		w = 30
	}
	return w
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  routine needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"t h d", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Move cursor / scroll"},
		}},
		{"Today", []struct{ key, desc string }{
			{"space ⏎", "Toggle habit"},
			{"a", "Add habit"},
			{"x", "Remove from daily view"},
			{"n", "Edit today's note (ctrl+s saves)"},
		}},
		{"Data", []struct{ key, desc string }{
			{"⏎", "Run selected action"},
		}},
		{"General", []struct{ key, desc string }{
			{"esc", "Cancel"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	savedAgo := ""
	if !a.lastSaved.IsZero() {
		savedAgo = humanize.Time(a.lastSaved)
	}
	statusBar := components.RenderStatusBar(w, a.flash, a.today, savedAgo)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabToday:
		content = a.renderTodayTab(cw)
	case tabHistory:
		content = a.renderHistoryTab(cw, contentH)
	case tabData:
		content = a.renderDataTab(cw)
	}

	if a.confirm != nil {
		content = a.renderConfirm(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func newLineInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func newNoteArea(value string, width int) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "How did today go?"
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetWidth(width)
	ta.SetHeight(5)
	ta.SetValue(value)
	return ta
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
