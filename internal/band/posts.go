package band

import (
	"context"
	"net/url"
	"strconv"
)

// Posts lists a page of the band's posts. A non-nil cursor (from a previous
// page's Paging) is merged verbatim into the request. The returned Paging is
// nil once the listing is exhausted.
func (c *Client) Posts(ctx context.Context, b *Band, cursor *Paging) ([]*Post, *Paging, error) {
	params := url.Values{}
	params.Set("band_key", b.Key)
	params.Set("locale", c.locale)
	cursor.apply(params)

	env, err := c.get(ctx, "/v2/band/posts", params)
	if err != nil {
		return nil, nil, err
	}

	var data struct {
		Items  []postJSON  `json:"items"`
		Paging *pagingJSON `json:"paging"`
	}
	if err := decodeResultData(env, &data); err != nil {
		return nil, nil, err
	}

	posts := make([]*Post, 0, len(data.Items))
	for _, pj := range data.Items {
		posts = append(posts, newPost(pj, b))
	}
	return posts, nextPaging(data.Paging), nil
}

// PostDetail fetches a single post with its full detail, including the read
// count the listing omits.
func (c *Client) PostDetail(ctx context.Context, b *Band, postKey string) (*Post, error) {
	params := url.Values{}
	params.Set("band_key", b.Key)
	params.Set("post_key", postKey)

	env, err := c.get(ctx, "/v2/band/post", params)
	if err != nil {
		return nil, err
	}

	var data struct {
		Post postJSON `json:"post"`
	}
	if err := decodeResultData(env, &data); err != nil {
		return nil, err
	}
	// Some deployments return the post fields at the top level of
	// result_data rather than under "post".
	if data.Post.PostKey == "" {
		var flat postJSON
		if err := decodeResultData(env, &flat); err != nil {
			return nil, err
		}
		data.Post = flat
	}
	return newPost(data.Post, b), nil
}

// WritePost creates a post on the band's board and returns the new post
// key. Requires the posting capability; its absence fails locally with a
// *PermissionError and no request is issued.
func (c *Client) WritePost(ctx context.Context, b *Band, content string, doPush bool) (string, error) {
	if err := c.requireCapability(ctx, b, CapPosting); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("band_key", b.Key)
	params.Set("content", content)
	params.Set("do_push", strconv.FormatBool(doPush))

	env, err := c.post(ctx, "/v2.2/band/post/create", params)
	if err != nil {
		return "", err
	}

	var data struct {
		PostKey string `json:"post_key"`
	}
	if err := decodeResultData(env, &data); err != nil {
		return "", err
	}
	return data.PostKey, nil
}

// DeletePost removes a post. The acting identity must be the post's author,
// or the band must grant contents_deletion.
func (c *Client) DeletePost(ctx context.Context, post *Post) error {
	b := post.Band()
	if err := c.mayDelete(ctx, b, post.Author); err != nil {
		return err
	}

	params := url.Values{}
	params.Set("band_key", b.Key)
	params.Set("post_key", post.PostKey)

	_, err := c.post(ctx, "/v2/band/post/remove", params)
	return err
}
