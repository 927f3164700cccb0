package cmd

import (
	"fmt"

	"github.com/theirongolddev/routine/internal/cli"
	"github.com/theirongolddev/routine/internal/config"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration and ledger stats",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()
	cfg := s.cfg
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Database:       %s\n", cfg.DBPath())
	fmt.Fprintf(out, "    Storage key:    %s\n", cfg.General.StorageKey)
	fmt.Fprintf(out, "    Backup dir:     %s\n", cfg.BackupDir())
	fmt.Fprintf(out, "    Day check:      every %s\n", cfg.DayCheckInterval())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Log]")
	fmt.Fprintf(out, "    Level: %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "    File:  %s\n", cfg.LogPath())
	fmt.Fprintln(out)

	st := s.ledger.Stats()
	fmt.Fprintln(out, "  [Ledger]")
	fmt.Fprintf(out, "    Habits:      %s (%d active, %d retired)\n",
		cli.FormatNumber(int64(st.Habits)), st.Active, st.Retired)
	fmt.Fprintf(out, "    Days logged: %s\n", cli.FormatNumber(int64(st.Days)))
	if t, ok, err := s.slots.UpdatedAt(s.ledger.Key()); err == nil && ok {
		fmt.Fprintf(out, "    Last saved:  %s\n", humanize.Time(t))
	} else {
		fmt.Fprintln(out, "    Last saved:  never")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `routine setup` to reconfigure.")
	return nil
}
