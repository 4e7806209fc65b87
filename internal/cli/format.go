package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/evcraddock/comments/internal/comment"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printComment prints a single comment in text format.
func printComment(w io.Writer, c *comment.Comment) {
	fmt.Fprintf(w, "Comment %s\n", c.ID)
	fmt.Fprintf(w, "  Post:     %d\n", c.PostID)
	fmt.Fprintf(w, "  Author:   %s\n", c.Author)
	if c.ReplyToID != "" {
		fmt.Fprintf(w, "  Reply to: %s\n", c.ReplyToID)
	}
	fmt.Fprintf(w, "  Created:  %s\n", formatMillis(c.CreatedOn))
	if c.ModifiedOn != c.CreatedOn {
		fmt.Fprintf(w, "  Modified: %s\n", formatMillis(c.ModifiedOn))
	}
	fmt.Fprintf(w, "  %s\n", c.Text)
}

// printCommentTable prints a list of comments as a formatted table.
func printCommentTable(out io.Writer, comments []*comment.Comment) error {
	if len(comments) == 0 {
		fmt.Fprintln(out, "No comments.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tAUTHOR\tCREATED\tREPLY TO\tTEXT"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t------\t-------\t--------\t----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, c := range comments {
		reply := "-"
		if c.ReplyToID != "" {
			reply = c.ReplyToID
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Author, formatMillis(c.CreatedOn), reply, truncate(c.Text, 50)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d comments\n", len(comments))
	return nil
}

// formatMillis renders epoch milliseconds as UTC minutes.
func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04")
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
