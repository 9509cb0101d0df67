package band

import (
	"context"
	"net/url"
)

// Comments lists a page of a post's comments. Cursor semantics match Posts.
func (c *Client) Comments(ctx context.Context, b *Band, postKey string, cursor *Paging) ([]*Comment, *Paging, error) {
	params := url.Values{}
	params.Set("band_key", b.Key)
	params.Set("post_key", postKey)
	cursor.apply(params)

	env, err := c.get(ctx, "/v2/band/post/comments", params)
	if err != nil {
		return nil, nil, err
	}

	var data struct {
		Items  []commentJSON `json:"items"`
		Paging *pagingJSON   `json:"paging"`
	}
	if err := decodeResultData(env, &data); err != nil {
		return nil, nil, err
	}

	comments := make([]*Comment, 0, len(data.Items))
	for _, cj := range data.Items {
		comments = append(comments, newComment(cj, postKey, b))
	}
	return comments, nextPaging(data.Paging), nil
}

// WriteComment adds a comment to a post. Requires the commenting
// capability; its absence fails locally with a *PermissionError and no
// request is issued.
func (c *Client) WriteComment(ctx context.Context, b *Band, postKey, body string) error {
	if err := c.requireCapability(ctx, b, CapCommenting); err != nil {
		return err
	}

	params := url.Values{}
	params.Set("band_key", b.Key)
	params.Set("post_key", postKey)
	params.Set("body", body)

	_, err := c.post(ctx, "/v2/band/post/comment/create", params)
	return err
}

// DeleteComment removes a comment. The acting identity must be the
// comment's author, or the band must grant contents_deletion.
func (c *Client) DeleteComment(ctx context.Context, comment *Comment) error {
	b := comment.Band()
	if err := c.mayDelete(ctx, b, comment.Author); err != nil {
		return err
	}

	params := url.Values{}
	params.Set("band_key", b.Key)
	params.Set("post_key", comment.PostKey)
	params.Set("comment_key", comment.CommentKey)

	_, err := c.post(ctx, "/v2/band/post/comment/remove", params)
	return err
}
