package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagNoteDate  string
	flagNoteClear bool
)

var noteCmd = &cobra.Command{
	Use:   "note TEXT...",
	Short: "Set the note for a day",
	RunE:  runNote,
}

func init() {
	noteCmd.Flags().StringVar(&flagNoteDate, "date", "", "Day to annotate, YYYY-MM-DD (default today)")
	noteCmd.Flags().BoolVar(&flagNoteClear, "clear", false, "Remove the note")
	rootCmd.AddCommand(noteCmd)
}

func runNote(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	switch {
	case flagNoteClear && len(args) > 0:
		return errors.New("--clear takes no text")
	case !flagNoteClear && len(args) == 0:
		return errors.New("note text required (use --clear to remove a note)")
	}

	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	date, err := s.dateFlag(flagNoteDate)
	if err != nil {
		return err
	}
	if err := s.ledger.SetNote(date, text); err != nil {
		return err
	}

	if flagNoteClear {
		fmt.Fprintf(cmd.OutOrStdout(), "  Cleared note for %s\n", date)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "  Saved note for %s\n", date)
	}
	return nil
}
