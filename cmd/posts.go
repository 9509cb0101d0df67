package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/search5/openband/internal/band"
	"github.com/search5/openband/internal/cli"
)

// Post-specific flags
var (
	postsAll    bool
	postsAfter  string
	postsPush   bool
	postsOutput string
)

// postsCmd represents the posts command group.
var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Read and write band posts",
	Long: `Read and write posts on a band's board.

Examples:
  openband posts list BAND_KEY             # First page of posts
  openband posts list BAND_KEY --all       # Walk every page
  openband posts get BAND_KEY POST_KEY     # One post with full detail
  openband posts create BAND_KEY "text"    # Write a post
  openband posts delete BAND_KEY POST_KEY  # Delete a post`,
}

var postsListCmd = &cobra.Command{
	Use:   "list BAND_KEY",
	Short: "List posts on a band's board",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsList,
}

var postsGetCmd = &cobra.Command{
	Use:   "get BAND_KEY POST_KEY",
	Short: "Show one post with full detail",
	Args:  cobra.ExactArgs(2),
	RunE:  runPostsGet,
}

var postsCreateCmd = &cobra.Command{
	Use:   "create BAND_KEY CONTENT",
	Short: "Write a post",
	Args:  cobra.ExactArgs(2),
	RunE:  runPostsCreate,
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete BAND_KEY POST_KEY",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(2),
	RunE:  runPostsDelete,
}

func init() {
	postsListCmd.Flags().BoolVar(&postsAll, "all", false, "follow pagination until the listing is exhausted")
	postsListCmd.Flags().StringVar(&postsAfter, "after", "", "resume listing from this cursor position")
	postsListCmd.Flags().StringVarP(&postsOutput, "output", "o", "table", "output format (table, json)")
	postsCreateCmd.Flags().BoolVar(&postsPush, "push", false, "send a push notification to band members")

	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsGetCmd)
	postsCmd.AddCommand(postsCreateCmd)
	postsCmd.AddCommand(postsDeleteCmd)
	rootCmd.AddCommand(postsCmd)
}

// collectPosts walks the listing, one page by default or all pages with
// --all, replaying each returned cursor into the next request.
func collectPosts(cmd *cobra.Command, client *band.Client, b *band.Band) ([]*band.Post, error) {
	var all []*band.Post
	var cursor *band.Paging
	if postsAfter != "" {
		cursor = &band.Paging{NextParams: map[string]string{"after": postsAfter}}
	}

	for {
		posts, next, err := client.Posts(cmd.Context(), b, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, posts...)
		if !postsAll || !next.HasNext() {
			return all, nil
		}
		cursor = next
	}
}

func runPostsList(cmd *cobra.Command, args []string) error {
	if err := cli.ValidateOutputFormat(postsOutput); err != nil {
		return err
	}

	client, err := buildClient()
	if err != nil {
		return err
	}

	posts, err := collectPosts(cmd, client, &band.Band{Key: args[0]})
	if err != nil {
		return err
	}

	if cli.OutputFormat(postsOutput) == cli.OutputFormatJSON {
		type postOut struct {
			PostKey      string `json:"post_key"`
			Author       string `json:"author"`
			Content      string `json:"content"`
			CreatedAt    string `json:"created_at"`
			CommentCount int    `json:"comment_count"`
		}
		out := make([]postOut, 0, len(posts))
		for _, p := range posts {
			out = append(out, postOut{
				PostKey:      p.PostKey,
				Author:       p.Author.Name,
				Content:      p.Content,
				CreatedAt:    cli.FormatTime(p.CreatedAt),
				CommentCount: p.CommentCount,
			})
		}
		return cli.PrintJSON(out)
	}

	if len(posts) == 0 {
		cli.EmptyMessage("No posts found")
		return nil
	}

	t := cli.NewTable(os.Stdout)
	t.AppendHeader(table.Row{"POST KEY", "AUTHOR", "CREATED", "COMMENTS", "CONTENT"})
	for _, p := range posts {
		t.AppendRow(table.Row{
			p.PostKey,
			p.Author.Name,
			cli.FormatTime(p.CreatedAt),
			strconv.Itoa(p.CommentCount),
			cli.Truncate(p.Content, 60),
		})
	}
	t.Render()
	return nil
}

func runPostsGet(cmd *cobra.Command, args []string) error {
	client, err := buildClient()
	if err != nil {
		return err
	}

	post, err := client.PostDetail(cmd.Context(), &band.Band{Key: args[0]}, args[1])
	if err != nil {
		return err
	}

	t := cli.NewTable(os.Stdout)
	t.AppendHeader(table.Row{"KEY", "VALUE"})
	t.AppendRow(table.Row{"post_key", post.PostKey})
	t.AppendRow(table.Row{"author", post.Author.Name})
	t.AppendRow(table.Row{"created_at", cli.FormatTime(post.CreatedAt)})
	t.AppendRow(table.Row{"comments", strconv.Itoa(post.CommentCount)})
	t.AppendRow(table.Row{"emotions", strconv.Itoa(post.EmotionCount)})
	if post.PostReadCount >= 0 {
		t.AppendRow(table.Row{"reads", strconv.Itoa(post.PostReadCount)})
	}
	t.AppendRow(table.Row{"photos", strconv.Itoa(len(post.Photos))})
	t.Render()

	fmt.Println()
	fmt.Println(post.Content)
	return nil
}

func runPostsCreate(cmd *cobra.Command, args []string) error {
	client, err := buildClient()
	if err != nil {
		return err
	}

	postKey, err := client.WritePost(cmd.Context(), &band.Band{Key: args[0]}, args[1], postsPush)
	if err != nil {
		return err
	}

	infoPrint("%s Post created: %s\n", cli.Checkmark(), postKey)
	return nil
}

func runPostsDelete(cmd *cobra.Command, args []string) error {
	client, err := buildClient()
	if err != nil {
		return err
	}

	b := &band.Band{Key: args[0]}
	// The deletion rule needs the post's author, so fetch the detail first.
	post, err := client.PostDetail(cmd.Context(), b, args[1])
	if err != nil {
		return err
	}
	if err := client.DeletePost(cmd.Context(), post); err != nil {
		return err
	}

	infoPrint("%s Post deleted: %s\n", cli.Checkmark(), args[1])
	return nil
}
