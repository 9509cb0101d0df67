package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/search5/openband/internal/band"
	"github.com/search5/openband/internal/cli"
)

var commentsAll bool

// commentsCmd represents the comments command group.
var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Read and write post comments",
	Long: `Read and write comments on a band post.

Examples:
  openband comments list BAND_KEY POST_KEY                # First page
  openband comments list BAND_KEY POST_KEY --all          # Every page
  openband comments create BAND_KEY POST_KEY "text"       # Add a comment
  openband comments delete BAND_KEY POST_KEY COMMENT_KEY  # Delete one`,
}

var commentsListCmd = &cobra.Command{
	Use:   "list BAND_KEY POST_KEY",
	Short: "List comments on a post",
	Args:  cobra.ExactArgs(2),
	RunE:  runCommentsList,
}

var commentsCreateCmd = &cobra.Command{
	Use:   "create BAND_KEY POST_KEY BODY",
	Short: "Add a comment to a post",
	Args:  cobra.ExactArgs(3),
	RunE:  runCommentsCreate,
}

var commentsDeleteCmd = &cobra.Command{
	Use:   "delete BAND_KEY POST_KEY COMMENT_KEY",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(3),
	RunE:  runCommentsDelete,
}

func init() {
	commentsListCmd.Flags().BoolVar(&commentsAll, "all", false, "follow pagination until the listing is exhausted")

	commentsCmd.AddCommand(commentsListCmd)
	commentsCmd.AddCommand(commentsCreateCmd)
	commentsCmd.AddCommand(commentsDeleteCmd)
	rootCmd.AddCommand(commentsCmd)
}

// collectComments walks the comment listing like collectPosts does for posts.
func collectComments(cmd *cobra.Command, client *band.Client, b *band.Band, postKey string) ([]*band.Comment, error) {
	var all []*band.Comment
	var cursor *band.Paging

	for {
		comments, next, err := client.Comments(cmd.Context(), b, postKey, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, comments...)
		if !commentsAll || !next.HasNext() {
			return all, nil
		}
		cursor = next
	}
}

func runCommentsList(cmd *cobra.Command, args []string) error {
	client, err := buildClient()
	if err != nil {
		return err
	}

	comments, err := collectComments(cmd, client, &band.Band{Key: args[0]}, args[1])
	if err != nil {
		return err
	}

	if len(comments) == 0 {
		cli.EmptyMessage("No comments found")
		return nil
	}

	t := cli.NewTable(os.Stdout)
	t.AppendHeader(table.Row{"COMMENT KEY", "AUTHOR", "CREATED", "BODY"})
	for _, c := range comments {
		t.AppendRow(table.Row{
			c.CommentKey,
			c.Author.Name,
			cli.FormatTime(c.CreatedAt),
			cli.Truncate(c.Body, 60),
		})
	}
	t.Render()
	return nil
}

func runCommentsCreate(cmd *cobra.Command, args []string) error {
	client, err := buildClient()
	if err != nil {
		return err
	}

	if err := client.WriteComment(cmd.Context(), &band.Band{Key: args[0]}, args[1], args[2]); err != nil {
		return err
	}

	infoPrint("%s Comment added.\n", cli.Checkmark())
	return nil
}

func runCommentsDelete(cmd *cobra.Command, args []string) error {
	client, err := buildClient()
	if err != nil {
		return err
	}

	b := &band.Band{Key: args[0]}
	// The deletion rule needs the comment's author, so find it in the
	// listing first.
	comment, err := findComment(cmd, client, b, args[1], args[2])
	if err != nil {
		return err
	}
	if err := client.DeleteComment(cmd.Context(), comment); err != nil {
		return err
	}

	infoPrint("%s Comment deleted: %s\n", cli.Checkmark(), args[2])
	return nil
}

func findComment(cmd *cobra.Command, client *band.Client, b *band.Band, postKey, commentKey string) (*band.Comment, error) {
	var cursor *band.Paging
	for {
		comments, next, err := client.Comments(cmd.Context(), b, postKey, cursor)
		if err != nil {
			return nil, err
		}
		for _, c := range comments {
			if c.CommentKey == commentKey {
				return c, nil
			}
		}
		if !next.HasNext() {
			return nil, fmt.Errorf("comment %s not found on post %s", commentKey, postKey)
		}
		cursor = next
	}
}
