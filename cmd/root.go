// Package cmd implements the routine CLI commands.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/routine/internal/cli"
	"github.com/theirongolddev/routine/internal/clock"
	"github.com/theirongolddev/routine/internal/config"
	"github.com/theirongolddev/routine/internal/ledger"
	"github.com/theirongolddev/routine/internal/logging"
	"github.com/theirongolddev/routine/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagDataDir string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:          "routine",
	Short:        "Daily habit tracker",
	Long:         "Track daily habits: check them off, note how the day went, and review your history.",
	RunE:         runToday,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding the ledger database (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings and decoration")
}

// session bundles everything a command needs to work on the ledger.
type session struct {
	cfg    config.Config
	log    *zap.Logger
	slots  *store.Slots
	ledger *ledger.Store
	clock  clock.Clock
}

// openSession loads config, opens the slot database and the ledger in it.
// A corrupt stored ledger is recovered to an empty one and reported as a warning.
func openSession(stderr io.Writer) (*session, error) {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintln(stderr, cli.RenderWarn("  "+err.Error()+"; using defaults"))
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}

	log := logging.NewOrNop(cfg.LogPath(), cfg.Log.Level)

	slots, err := store.Open(cfg.DBPath())
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	ls := ledger.Open(slots, ledger.WithKey(cfg.General.StorageKey))
	if err := ls.LoadErr(); err != nil {
		log.Warn("stored ledger unreadable, starting empty",
			zap.String("key", ls.Key()), zap.Error(err))
		if !flagQuiet {
			fmt.Fprintln(stderr, cli.RenderWarn("  Stored data was unreadable; starting with an empty ledger."))
		}
	}

	return &session{
		cfg:    cfg,
		log:    log,
		slots:  slots,
		ledger: ls,
		clock:  clock.New(),
	}, nil
}

func (s *session) Close() {
	_ = s.log.Sync()
	_ = s.slots.Close()
}

func (s *session) today() string {
	return s.clock.Today()
}

// dateFlag returns the validated --date value, or today when unset.
func (s *session) dateFlag(v string) (string, error) {
	if v == "" {
		return s.today(), nil
	}
	return ledger.ParseDate(v)
}
