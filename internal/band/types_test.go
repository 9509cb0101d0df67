package band

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsTime(t *testing.T) {
	assert.True(t, msTime(0).IsZero())
	assert.Equal(t, time.UnixMilli(1443413526000), msTime(1443413526000))
}

func TestNewPost_FromListingPayload(t *testing.T) {
	raw := `{
		"post_key": "p1",
		"content": "trail report",
		"author": {"name": "Jordan", "role": "leader", "user_key": "u1"},
		"created_at": 1443413526000,
		"comment_count": 2,
		"emotion_count": 5,
		"photos": [{"photo_key": "ph1", "url": "http://p", "width": 640, "height": 480,
			"author": {"name": "Jordan", "user_key": "u1"}, "created_at": 1443413526000}],
		"latest_comments": [{"body": "great", "author": {"name": "Sam", "user_key": "u2"},
			"created_at": 1443413527000}]
	}`

	var j postJSON
	require.NoError(t, json.Unmarshal([]byte(raw), &j))

	b := &Band{Key: "b1"}
	post := newPost(j, b)

	assert.Equal(t, "p1", post.PostKey)
	assert.Equal(t, "trail report", post.Content)
	assert.Equal(t, "Jordan", post.Author.Name)
	assert.True(t, post.Author.IsLeader())
	assert.Equal(t, time.UnixMilli(1443413526000), post.CreatedAt)
	assert.Equal(t, 2, post.CommentCount)
	assert.Same(t, b, post.Band())

	// Listings do not carry the read count.
	assert.Equal(t, -1, post.PostReadCount)

	require.Len(t, post.Photos, 1)
	assert.Equal(t, 640, post.Photos[0].Width)

	// Inline comments inherit the post key and the band reference.
	require.Len(t, post.LatestComments, 1)
	assert.Equal(t, "p1", post.LatestComments[0].PostKey)
	assert.Same(t, b, post.LatestComments[0].Band())
}

func TestNewPost_ExplicitReadCountZero(t *testing.T) {
	var j postJSON
	require.NoError(t, json.Unmarshal([]byte(`{"post_key":"p1","post_read_count":0}`), &j))
	assert.Equal(t, 0, newPost(j, nil).PostReadCount)
}

func TestField_DeclaredNames(t *testing.T) {
	joined := time.UnixMilli(1443413526000)

	tests := []struct {
		holder interface {
			Field(string) (any, error)
		}
		field string
		want  any
	}{
		{&Author{Name: "Jordan"}, "name", "Jordan"},
		{&Author{Role: "member"}, "role", "member"},
		{&Profile{MemberJoinedAt: joined}, "member_joined_at", joined},
		{&Band{Key: "b1"}, "band_key", "b1"},
		{&Band{MemberCount: 40}, "member_count", 40},
		{&Photo{PhotoKey: "ph1"}, "photo_key", "ph1"},
		{&Album{PhotoCount: 12}, "photo_count", 12},
		{&Comment{Body: "hi"}, "body", "hi"},
		{&Post{Content: "text"}, "content", "text"},
		{&Post{PostReadCount: -1}, "post_read_count", -1},
	}

	for _, tt := range tests {
		got, err := tt.holder.Field(tt.field)
		require.NoError(t, err, tt.field)
		assert.Equal(t, tt.want, got, tt.field)
	}
}

func TestField_UnknownNameFails(t *testing.T) {
	holders := []interface {
		Field(string) (any, error)
	}{
		&Author{}, &Profile{}, &Band{}, &Photo{}, &Album{}, &Comment{}, &Post{},
	}

	for _, h := range holders {
		_, err := h.Field("no_such_field")
		var fieldErr *FieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, "no_such_field", fieldErr.Name)
		assert.Contains(t, err.Error(), "no_such_field")
	}
}

func TestPaging_ApplyAndNext(t *testing.T) {
	var p *Paging
	assert.False(t, p.HasNext())

	p = &Paging{NextParams: map[string]string{"after": "123", "limit": "20"}}
	assert.True(t, p.HasNext())

	// Parameters are replayed verbatim, not reinterpreted.
	params := url.Values{"band_key": {"b1"}}
	p.apply(params)
	assert.Equal(t, "123", params.Get("after"))
	assert.Equal(t, "20", params.Get("limit"))
	assert.Equal(t, "b1", params.Get("band_key"))

	assert.Nil(t, nextPaging(nil))
	assert.Nil(t, nextPaging(&pagingJSON{}))
	assert.True(t, nextPaging(&pagingJSON{NextParams: map[string]string{"after": "1"}}).HasNext())
}
