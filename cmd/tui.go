package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/routine/internal/clock"
	"github.com/theirongolddev/routine/internal/config"
	"github.com/theirongolddev/routine/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	key := s.ledger.Key()
	app := tui.NewApp(tui.Options{
		Store:     s.ledger,
		Clock:     s.clock,
		BackupDir: s.cfg.BackupDir(),
		Theme:     s.cfg.Appearance.Theme,
		SavedAt: func() (time.Time, bool) {
			t, ok, err := s.slots.UpdatedAt(key)
			if err != nil {
				s.log.Warn("reading save time", zap.Error(err))
			}
			return t, ok
		},
		SaveTheme: func(name string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.Appearance.Theme = name
			return config.Save(cfg)
		},
		Logger: s.log,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := clock.NewWatcher(s.clock, s.cfg.DayCheckInterval())
	go func() {
		_ = watcher.Run(ctx, func(today string) {
			p.Send(tui.DayChangedMsg{Date: today})
		})
	}()

	s.log.Info("dashboard started", zap.Duration("day_check", watcher.Interval()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
