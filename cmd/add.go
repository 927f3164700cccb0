package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/routine/internal/cli"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var addCmd = &cobra.Command{
	Use:   "add NAME...",
	Short: "Create a habit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	name := strings.TrimSpace(strings.Join(args, " "))
	h, err := s.ledger.CreateHabit(name)
	if err != nil {
		return err
	}
	s.log.Info("habit created", zap.String("habit", h.ID))

	fmt.Fprintf(cmd.OutOrStdout(), "  Added %s %s\n", h.Name, cli.RenderMuted("("+cli.ShortID(h.ID)+")"))
	return nil
}
