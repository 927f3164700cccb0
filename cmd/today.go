package cmd

import (
	"fmt"
	"io"

	"github.com/theirongolddev/routine/internal/cli"
	"github.com/theirongolddev/routine/internal/ledger"

	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's habits and progress",
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runToday(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	printDay(cmd.OutOrStdout(), s.ledger, s.today())
	return nil
}

// printDay renders the checklist, progress and note for date.
func printDay(out io.Writer, l *ledger.Store, date string) {
	active := l.ActiveHabits()
	log := l.DayLog(date)
	p := l.TodayProgress(date)

	fmt.Fprintln(out)
	if !flagQuiet {
		fmt.Fprintln(out, cli.RenderTitle("TODAY  "+cli.FormatDateLong(date)))
		fmt.Fprintln(out)
	}

	if len(active) == 0 {
		fmt.Fprintln(out, "  No habits yet. Add one with `routine add NAME`.")
		return
	}

	rows := make([][]string, 0, len(active))
	for _, h := range active {
		name := h.Name
		if log.Has(h.ID) {
			name = cli.RenderDone(name)
		}
		rows = append(rows, []string{cli.FormatCheck(log.Has(h.ID)), name, cli.ShortID(h.ID)})
	}
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers: []string{"", "Habit", "ID"},
		Rows:    rows,
	}))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  "+cli.RenderProgressBar(p.Completed, p.Total, p.Percent, 30))

	if log.Note != "" {
		fmt.Fprintln(out)
		fmt.Fprint(out, cli.RenderNote(log.Note))
	}
	fmt.Fprintln(out)
}
