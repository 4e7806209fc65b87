package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace a comment's text",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runEdit,
	}
}

func runEdit(cmd *cobra.Command, args []string) error {
	c, err := newAPIClient().EditComment(cmd.Context(), args[0], strings.Join(args[1:], " "))
	if err != nil {
		return fmt.Errorf("editing comment: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), c)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Comment updated.")
	printComment(cmd.OutOrStdout(), c)
	return nil
}
