package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/routine/internal/cli"
	"github.com/theirongolddev/routine/internal/ledger"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Past days, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 14, "Number of days to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	entries := s.ledger.HistoryEntries(s.today())
	total := len(entries)
	if flagHistoryLimit > 0 && len(entries) > flagHistoryLimit {
		entries = entries[:flagHistoryLimit]
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "\n  No past days recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		note, _, _ := strings.Cut(e.Log.Note, "\n")
		rows = append(rows, []string{
			e.Date,
			cli.DateWeekday(e.Date),
			cli.FormatNumber(int64(len(e.Log.Completed))),
			cli.Truncate(strings.Join(historyNames(s.ledger, e.Log.Completed), ", "), 40),
			cli.Truncate(note, 30),
		})
	}

	fmt.Fprintln(out)
	if !flagQuiet {
		fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("HISTORY  %d of %d days", len(entries), total)))
		fmt.Fprintln(out)
	}
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Done", "Habits", "Note"},
		Rows:    rows,
		Right:   []int{2},
	}))
	return nil
}

// historyNames maps completed ids to names; ids with no habit show as
// "unknown habit".
func historyNames(l *ledger.Store, ids []string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		if h, ok := l.Habit(id); ok {
			names[i] = h.Name
		} else {
			names[i] = "unknown habit"
		}
	}
	return names
}
