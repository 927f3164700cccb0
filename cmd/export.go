package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/theirongolddev/routine/internal/backup"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup of all habits and days",
	Long: "Write a JSON backup to tracker_backup_<date>.json in the backup directory.\n" +
		"Use --out - to write to stdout or --out DIR to pick another directory.",
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output directory, or - for stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	if flagExportOut == "-" {
		data, err := s.ledger.ExportSnapshot()
		if err != nil {
			return err
		}
		_, err = out.Write(append(data, '\n'))
		return err
	}

	dir := s.cfg.BackupDir()
	if flagExportOut != "" {
		dir = flagExportOut
	}
	path, n, err := backup.Write(s.ledger, dir, s.today())
	if err != nil {
		return err
	}
	s.log.Info("ledger exported", zap.String("path", path), zap.Int("bytes", n))

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	fmt.Fprintf(out, "  Exported %s to %s\n", humanize.Bytes(uint64(n)), path)
	if st := s.ledger.Stats(); !flagQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %d habits, %d days\n", st.Habits, st.Days)
	}
	return nil
}
