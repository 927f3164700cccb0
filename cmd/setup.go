package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/routine/internal/config"
	"github.com/theirongolddev/routine/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	themeName := cfg.Appearance.Theme
	backupDir := cfg.General.BackupDir
	interval := strconv.Itoa(cfg.General.DayCheckIntervalSec)

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
			huh.NewInput().
				Title("Backup directory").
				Description("Where exports are written. Empty means the current directory.").
				Value(&backupDir),
			huh.NewInput().
				Title("Day check interval (seconds)").
				Description("How often the dashboard looks for a new day.").
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return errors.New("enter a whole number of seconds, at least 1")
					}
					return nil
				}).
				Value(&interval),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	cfg.Appearance.Theme = themeName
	cfg.General.BackupDir = strings.TrimSpace(backupDir)
	cfg.General.DayCheckIntervalSec, _ = strconv.Atoi(strings.TrimSpace(interval))

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Saved to %s\n", config.Path())
	fmt.Fprintln(out, "  Run `routine setup` anytime to reconfigure.")
	fmt.Fprintln(out)
	return nil
}
