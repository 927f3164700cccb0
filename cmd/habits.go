package cmd

import (
	"fmt"

	"github.com/theirongolddev/routine/internal/cli"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var flagHabitsAll bool

var habitsCmd = &cobra.Command{
	Use:   "habits",
	Short: "List habits",
	Args:  cobra.NoArgs,
	RunE:  runHabits,
}

func init() {
	habitsCmd.Flags().BoolVarP(&flagHabitsAll, "all", "a", false, "Include retired habits")
	rootCmd.AddCommand(habitsCmd)
}

func runHabits(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	habits := s.ledger.ActiveHabits()
	if flagHabitsAll {
		habits = s.ledger.Habits()
	}

	out := cmd.OutOrStdout()
	if len(habits) == 0 {
		fmt.Fprintln(out, "\n  No habits found.")
		return nil
	}

	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		status := cli.RenderDone("active")
		if h.Retired {
			status = cli.RenderMuted("retired")
		}
		rows = append(rows, []string{
			cli.ShortID(h.ID),
			h.Name,
			status,
			humanize.Time(h.CreatedAt),
		})
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Habit", "Status", "Created"},
		Rows:    rows,
	}))
	return nil
}
