package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/theirongolddev/routine/internal/backup"
	"github.com/theirongolddev/routine/internal/clock"
	"github.com/theirongolddev/routine/internal/config"
	"github.com/theirongolddev/routine/internal/ledger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagWatchPIDFile  string
	flagWatchInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stay running and write a backup each time the day rolls over",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

var watchStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a watcher is running",
	Args:  cobra.NoArgs,
	RunE:  runWatchStatus,
}

var watchStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running watcher",
	Args:  cobra.NoArgs,
	RunE:  runWatchStop,
}

func init() {
	defaultPID := filepath.Join(config.StateDir(), "watch.pid")

	watchCmd.PersistentFlags().StringVar(&flagWatchPIDFile, "pid-file", defaultPID, "PID file path")
	watchCmd.Flags().DurationVar(&flagWatchInterval, "interval", 0, "Day check interval (default from config)")

	watchCmd.AddCommand(watchStatusCmd)
	watchCmd.AddCommand(watchStopCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if err := ensureWatcherNotRunning(flagWatchPIDFile); err != nil {
		return err
	}

	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := os.MkdirAll(filepath.Dir(flagWatchPIDFile), 0o750); err != nil {
		return fmt.Errorf("create watcher directory: %w", err)
	}
	if err := writePID(flagWatchPIDFile, os.Getpid()); err != nil {
		return err
	}
	defer func() { _ = os.Remove(flagWatchPIDFile) }()

	interval := flagWatchInterval
	if interval <= 0 {
		interval = s.cfg.DayCheckInterval()
	}
	w := clock.NewWatcher(s.clock, interval)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Watching for day changes every %s (today is %s)\n", w.Interval(), w.Today())
	fmt.Fprintf(out, "  Backups go to %s\n", s.cfg.BackupDir())
	fmt.Fprintf(out, "  Stop with: routine watch stop --pid-file %s\n", flagWatchPIDFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	s.log.Info("watcher started", zap.Duration("interval", w.Interval()), zap.String("today", w.Today()))
	err = w.Run(ctx, func(today string) {
		rolloverBackup(s, today, out)
	})
	s.log.Info("watcher stopped")
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// rolloverBackup writes the backup for a new day. The ledger is re-read from
// the database first since other commands may have changed it meanwhile.
func rolloverBackup(s *session, today string, out io.Writer) {
	fresh := ledger.Open(s.slots, ledger.WithKey(s.cfg.General.StorageKey))
	if err := fresh.LoadErr(); err != nil {
		s.log.Warn("rollover skipped, ledger unreadable", zap.String("date", today), zap.Error(err))
		fmt.Fprintf(out, "  %s: ledger unreadable, no backup written\n", today)
		return
	}

	path, n, err := backup.Write(fresh, s.cfg.BackupDir(), today)
	if err != nil {
		s.log.Warn("rollover backup failed", zap.String("date", today), zap.Error(err))
		fmt.Fprintf(out, "  %s: backup failed: %v\n", today, err)
		return
	}
	s.log.Info("rollover backup written", zap.String("date", today), zap.String("path", path), zap.Int("bytes", n))
	if !flagQuiet {
		fmt.Fprintf(out, "  %s: wrote %s\n", today, path)
	}
}

func runWatchStatus(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	pid, err := readPID(flagWatchPIDFile)
	if err != nil {
		fmt.Fprintln(out, "  Watcher: not running (pid file not found)")
		return nil
	}
	if !processAlive(pid) {
		fmt.Fprintf(out, "  Watcher: stale pid file (pid %d not alive)\n", pid)
		return nil
	}
	fmt.Fprintf(out, "  Watcher: running (pid %d)\n", pid)
	return nil
}

func runWatchStop(cmd *cobra.Command, _ []string) error {
	pid, err := readPID(flagWatchPIDFile)
	if err != nil {
		return errors.New("watcher is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find watcher process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal watcher process: %w", err)
	}

	deadline := time.Now().Add(8 * time.Second)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			_ = os.Remove(flagWatchPIDFile)
			fmt.Fprintf(cmd.OutOrStdout(), "  Stopped watcher (pid %d)\n", pid)
			return nil
		}
		time.Sleep(150 * time.Millisecond)
	}
	return fmt.Errorf("watcher (pid %d) did not exit in time", pid)
}

func ensureWatcherNotRunning(pidFile string) error {
	pid, err := readPID(pidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if processAlive(pid) {
		return fmt.Errorf("watcher already running (pid %d)", pid)
	}
	_ = os.Remove(pidFile)
	return nil
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600)
}

func readPID(path string) (int, error) {
	//nolint:gosec // pid path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", path)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
