package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/routine/internal/backup"
	"github.com/theirongolddev/routine/internal/ledger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagImportYes bool

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace all data with a backup file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&flagImportYes, "yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := backup.Read(args[0])
	if err != nil {
		return err
	}

	if err := ledger.ValidateSnapshot(data); err != nil {
		s.log.Warn("import rejected", zap.String("path", args[0]), zap.Error(err))
		return fmt.Errorf("invalid backup file, current data kept: %w", err)
	}

	out := cmd.OutOrStdout()
	if !flagImportYes {
		ok, err := confirm("This will overwrite your current data. Continue?", args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "  Cancelled")
			return nil
		}
	}

	if err := s.ledger.ImportSnapshot(data); err != nil {
		s.log.Warn("import rejected", zap.String("path", args[0]), zap.Error(err))
		if errors.Is(err, ledger.ErrFormat) {
			return fmt.Errorf("invalid backup file, current data kept: %w", err)
		}
		return err
	}
	s.log.Info("ledger imported", zap.String("path", args[0]))

	st := s.ledger.Stats()
	fmt.Fprintf(out, "  Imported %d habits and %d days\n", st.Habits, st.Days)
	return nil
}
