package cmd

import (
	"fmt"

	"github.com/theirongolddev/routine/internal/cli"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagDoneDate string

var doneCmd = &cobra.Command{
	Use:   "done HABIT",
	Short: "Toggle a habit's completion for a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

func init() {
	doneCmd.Flags().StringVar(&flagDoneDate, "date", "", "Day to toggle, YYYY-MM-DD (default today)")
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	date, err := s.dateFlag(flagDoneDate)
	if err != nil {
		return err
	}
	h, err := resolveToggleTarget(s.ledger, args[0])
	if err != nil {
		return err
	}

	done, err := s.ledger.ToggleCompletion(date, h.ID)
	if err != nil {
		return err
	}
	s.log.Debug("habit toggled",
		zap.String("habit", h.ID), zap.String("date", date), zap.Bool("done", done))

	out := cmd.OutOrStdout()
	if done {
		fmt.Fprintf(out, "  %s %s done for %s\n", cli.RenderDone(cli.FormatCheck(true)), h.Name, date)
	} else {
		fmt.Fprintf(out, "  %s %s unchecked for %s\n", cli.FormatCheck(false), h.Name, date)
	}

	p := s.ledger.TodayProgress(date)
	if !flagQuiet {
		fmt.Fprintln(out, "  "+cli.RenderProgressBar(p.Completed, p.Total, p.Percent, 20))
	}
	return nil
}
