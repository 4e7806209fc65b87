package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/comments/internal/client"
)

func newAddCmd() *cobra.Command {
	var replyTo string

	cmd := &cobra.Command{
		Use:   "add <postId> <author> <text>",
		Short: "Add a comment to a post",
		Long:  "Add a comment to a post. Words after the author are joined into the comment text.",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args, replyTo)
		},
	}

	cmd.Flags().StringVar(&replyTo, "reply-to", "", "ID of the comment being replied to")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string, replyTo string) error {
	postID, err := parsePostID(args[0])
	if err != nil {
		return err
	}

	c, err := newAPIClient().CreateComment(cmd.Context(), client.CreateRequest{
		Text:      strings.Join(args[2:], " "),
		Author:    args[1],
		PostID:    postID,
		ReplyToID: replyTo,
	})
	if err != nil {
		return fmt.Errorf("adding comment: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), c)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Comment added.")
	printComment(cmd.OutOrStdout(), c)
	return nil
}

func parsePostID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid post ID: %s", s)
	}
	return id, nil
}
