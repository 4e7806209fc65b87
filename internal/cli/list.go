package cli

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <postId>",
		Short: "List comments on a post",
		Long:  "List every comment on a post in the order they were stored.",
		Args:  cobra.ExactArgs(1),
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	postID, err := parsePostID(args[0])
	if err != nil {
		return err
	}

	comments, err := newAPIClient().ListPostComments(cmd.Context(), postID)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), comments)
	}

	return printCommentTable(cmd.OutOrStdout(), comments)
}
