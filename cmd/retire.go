package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagRetireYes bool

var retireCmd = &cobra.Command{
	Use:     "retire HABIT",
	Aliases: []string{"rm"},
	Short:   "Remove a habit from the daily view (history is kept)",
	Args:    cobra.ExactArgs(1),
	RunE:    runRetire,
}

func init() {
	retireCmd.Flags().BoolVarP(&flagRetireYes, "yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(retireCmd)
}

func runRetire(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	h, err := resolveHabit(s.ledger, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if h.Retired {
		fmt.Fprintf(out, "  %s is already retired\n", h.Name)
		return nil
	}

	if !flagRetireYes {
		ok, err := confirm("Remove from daily view? (History will be kept)", h.Name)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "  Cancelled")
			return nil
		}
	}

	if err := s.ledger.RetireHabit(h.ID); err != nil {
		return err
	}
	s.log.Info("habit retired", zap.String("habit", h.ID))
	fmt.Fprintf(out, "  Removed %s from daily view\n", h.Name)
	return nil
}
