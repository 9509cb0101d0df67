package band

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/search5/openband/internal/oauth"
	"github.com/search5/openband/internal/secrets"
)

// recordingServer is a fake BAND API that records every request and serves
// canned envelopes per path.
type recordingServer struct {
	mu        sync.Mutex
	requests  []*url.URL
	responses map[string]string // path -> envelope JSON
	server    *httptest.Server
}

func newRecordingServer(t *testing.T) *recordingServer {
	t.Helper()
	rs := &recordingServer{responses: make(map[string]string)}
	rs.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.mu.Lock()
		rs.requests = append(rs.requests, r.URL)
		body, ok := rs.responses[r.URL.Path]
		rs.mu.Unlock()

		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"result_code":-1,"result_data":{"message":"no such endpoint"}}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(rs.server.Close)
	return rs
}

func (rs *recordingServer) respond(path, envelope string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.responses[path] = envelope
}

func (rs *recordingServer) count(path string) int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	n := 0
	for _, u := range rs.requests {
		if u.Path == path {
			n++
		}
	}
	return n
}

func (rs *recordingServer) last(path string) *url.URL {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	for i := len(rs.requests) - 1; i >= 0; i-- {
		if rs.requests[i].Path == path {
			return rs.requests[i]
		}
	}
	return nil
}

func newTestClient(t *testing.T, rs *recordingServer) *Client {
	t.Helper()
	store := secrets.NewMemStore()
	require.NoError(t, store.Set(oauth.DefaultService, oauth.KeyAccessToken, "T1"))
	return NewClient(store, WithAPIBaseURL(rs.server.URL))
}

func TestClient_Profile(t *testing.T) {
	rs := newRecordingServer(t)
	rs.respond("/v2/profile", `{"result_code":1,"result_data":{
		"user_key":"u1","name":"Jordan","profile_image_url":"http://img",
		"is_app_member":true,"message_allowed":false,"member_joined_at":1443413526000}}`)

	client := newTestClient(t, rs)
	profile, err := client.Profile(context.Background(), "b1")
	require.NoError(t, err)

	assert.Equal(t, "u1", profile.UserKey)
	assert.Equal(t, "Jordan", profile.Name)
	assert.True(t, profile.IsAppMember)
	assert.Equal(t, time.UnixMilli(1443413526000), profile.MemberJoinedAt)

	query := rs.last("/v2/profile").Query()
	assert.Equal(t, "T1", query.Get("access_token"))
	assert.Equal(t, "b1", query.Get("band_key"))
}

func TestClient_Bands(t *testing.T) {
	rs := newRecordingServer(t)
	rs.respond("/v2.1/bands", `{"result_code":1,"result_data":{"bands":[
		{"name":"Hiking","band_key":"b1","cover":"http://c1","member_count":40},
		{"name":"Cooking","band_key":"b2","cover":"http://c2","member_count":7}]}}`)

	client := newTestClient(t, rs)
	bands, err := client.Bands(context.Background())
	require.NoError(t, err)
	require.Len(t, bands, 2)
	assert.Equal(t, "Hiking", bands[0].Name)
	assert.Equal(t, "b2", bands[1].Key)
	assert.Equal(t, 40, bands[0].MemberCount)
}

func TestClient_Posts_CursorMergedVerbatim(t *testing.T) {
	rs := newRecordingServer(t)
	rs.respond("/v2/band/posts", `{"result_code":1,"result_data":{
		"items":[{"post_key":"p1","content":"hello","band_key":"b1",
			"author":{"name":"A","user_key":"u1"},"created_at":1443413526000}],
		"paging":{"next_params":{"after":"123","limit":"20"}}}}`)

	client := newTestClient(t, rs)
	b := &Band{Key: "b1"}

	posts, paging, err := client.Posts(context.Background(), b, nil)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Content)
	assert.Same(t, b, posts[0].Band())
	require.True(t, paging.HasNext())

	// Second page: the cursor's keys go out verbatim, alongside the token
	// and the band key.
	rs.respond("/v2/band/posts", `{"result_code":1,"result_data":{"items":[]}}`)
	posts, paging, err = client.Posts(context.Background(), b, paging)
	require.NoError(t, err)

	query := rs.last("/v2/band/posts").Query()
	assert.Equal(t, "123", query.Get("after"))
	assert.Equal(t, "20", query.Get("limit"))
	assert.Equal(t, "T1", query.Get("access_token"))
	assert.Equal(t, "b1", query.Get("band_key"))

	// Exhausted listing: empty items, absent cursor.
	assert.Empty(t, posts)
	assert.Nil(t, paging)
	assert.False(t, paging.HasNext())
}

func TestClient_Posts_SendsLocale(t *testing.T) {
	rs := newRecordingServer(t)
	rs.respond("/v2/band/posts", `{"result_code":1,"result_data":{"items":[]}}`)

	store := secrets.NewMemStore()
	require.NoError(t, store.Set(oauth.DefaultService, oauth.KeyAccessToken, "T1"))
	client := NewClient(store, WithAPIBaseURL(rs.server.URL), WithLocale("ko_KR"))

	_, _, err := client.Posts(context.Background(), &Band{Key: "b1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ko_KR", rs.last("/v2/band/posts").Query().Get("locale"))
}

func TestClient_PostDetail(t *testing.T) {
	rs := newRecordingServer(t)
	rs.respond("/v2/band/post", `{"result_code":1,"result_data":{"post":{
		"post_key":"p1","content":"full detail","band_key":"b1",
		"author":{"name":"A","user_key":"u1"},"created_at":1443413526000,
		"comment_count":3,"emotion_count":4,"post_read_count":52,
		"photos":[{"photo_key":"ph1","url":"http://p","width":640,"height":480,
			"author":{"name":"A","user_key":"u1"},"created_at":1443413526000}],
		"latest_comments":[{"body":"nice","author":{"name":"B","user_key":"u2"},
			"created_at":1443413527000}]}}}`)

	client := newTestClient(t, rs)
	b := &Band{Key: "b1"}

	post, err := client.PostDetail(context.Background(), b, "p1")
	require.NoError(t, err)

	assert.Equal(t, "full detail", post.Content)
	assert.Equal(t, 52, post.PostReadCount)
	require.Len(t, post.Photos, 1)
	assert.Equal(t, "ph1", post.Photos[0].PhotoKey)
	require.Len(t, post.LatestComments, 1)
	assert.Equal(t, "nice", post.LatestComments[0].Body)
	assert.Equal(t, "p1", post.LatestComments[0].PostKey)

	query := rs.last("/v2/band/post").Query()
	assert.Equal(t, "p1", query.Get("post_key"))
}

func TestClient_Comments(t *testing.T) {
	rs := newRecordingServer(t)
	rs.respond("/v2/band/post/comments", `{"result_code":1,"result_data":{
		"items":[{"comment_key":"c1","body":"first","author":{"name":"B","user_key":"u2"},
			"created_at":1443413527000}],
		"paging":{"next_params":{"after":"c1"}}}}`)

	client := newTestClient(t, rs)
	b := &Band{Key: "b1"}

	comments, paging, err := client.Comments(context.Background(), b, "p1", nil)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "first", comments[0].Body)
	assert.Equal(t, "p1", comments[0].PostKey)
	assert.Same(t, b, comments[0].Band())
	assert.True(t, paging.HasNext())

	query := rs.last("/v2/band/post/comments").Query()
	assert.Equal(t, "p1", query.Get("post_key"))
}

func TestClient_BusinessFailureOn200(t *testing.T) {
	rs := newRecordingServer(t)
	rs.respond("/v2.1/bands", `{"result_code":60301,"result_data":{"message":"Invalid parameters"}}`)

	client := newTestClient(t, rs)
	_, err := client.Bands(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 60301, apiErr.ResultCode)
	assert.Contains(t, apiErr.Error(), "60301")
	assert.Contains(t, apiErr.Error(), "Invalid parameters")
}

func TestClient_MissingTokenFailsLocally(t *testing.T) {
	rs := newRecordingServer(t)
	client := NewClient(secrets.NewMemStore(), WithAPIBaseURL(rs.server.URL))

	_, err := client.Bands(context.Background())
	assert.True(t, errors.Is(err, ErrNoAccessToken))
	assert.Zero(t, len(rs.requests), "no request may be issued without a token")
}

func TestClient_Albums_And_Photos(t *testing.T) {
	rs := newRecordingServer(t)
	rs.respond("/v2/band/albums", `{"result_code":1,"result_data":{
		"items":[{"photo_album_key":"a1","name":"Trip","photo_count":12,
			"owner":{"name":"A","user_key":"u1"}}],
		"paging":{"next_params":{"after":"a1"}}}}`)
	rs.respond("/v2/band/album/photos", `{"result_code":1,"result_data":{
		"items":[{"photo_key":"ph1","url":"http://p","width":640,"height":480,
			"photo_album_key":"a1","author":{"name":"A","user_key":"u1"},
			"created_at":1443413526000,"is_video_thumbnail":true}]}}`)

	client := newTestClient(t, rs)
	b := &Band{Key: "b1"}

	albums, paging, err := client.Albums(context.Background(), b, nil)
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, "Trip", albums[0].Name)
	assert.True(t, paging.HasNext())

	photos, paging, err := client.Photos(context.Background(), b, "a1", nil)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "ph1", photos[0].PhotoKey)
	assert.True(t, photos[0].IsVideoThumbnail)
	assert.Nil(t, paging)

	query := rs.last("/v2/band/album/photos").Query()
	assert.Equal(t, "a1", query.Get("photo_album_key"))
}

func TestClient_FindBand(t *testing.T) {
	rs := newRecordingServer(t)
	rs.respond("/v2.1/bands", `{"result_code":1,"result_data":{"bands":[
		{"name":"Hiking","band_key":"b1"},{"name":"Cooking","band_key":"b2"}]}}`)

	client := newTestClient(t, rs)

	b, err := client.FindBand(context.Background(), "b2")
	require.NoError(t, err)
	assert.Equal(t, "Cooking", b.Name)

	_, err = client.FindBand(context.Background(), "nope")
	assert.Error(t, err)
}
