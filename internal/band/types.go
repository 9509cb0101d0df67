package band

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// msTime converts a millisecond epoch timestamp into a time.Time.
// Zero stays the zero time.
func msTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// Author identifies the member who produced a post, comment, or photo.
type Author struct {
	Name            string
	Description     string
	Role            string
	ProfileImageURL string
	UserKey         string
}

// IsLeader reports whether the author holds the leader role in the band.
func (a *Author) IsLeader() bool {
	return a.Role == "leader"
}

// Field returns a declared field by name; unknown names fail with a
// *FieldError rather than resolving silently.
func (a *Author) Field(name string) (any, error) {
	switch name {
	case "name":
		return a.Name, nil
	case "description":
		return a.Description, nil
	case "role":
		return a.Role, nil
	case "profile_image_url":
		return a.ProfileImageURL, nil
	case "user_key":
		return a.UserKey, nil
	default:
		return nil, &FieldError{Type: "Author", Name: name}
	}
}

type authorJSON struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Role            string `json:"role"`
	ProfileImageURL string `json:"profile_image_url"`
	UserKey         string `json:"user_key"`
}

func newAuthor(j authorJSON) Author {
	return Author{
		Name:            j.Name,
		Description:     j.Description,
		Role:            j.Role,
		ProfileImageURL: j.ProfileImageURL,
		UserKey:         j.UserKey,
	}
}

// Profile is the calling user's profile, optionally scoped to one band
// (which adds the join timestamp).
type Profile struct {
	UserKey         string
	Name            string
	ProfileImageURL string
	IsAppMember     bool
	MessageAllowed  bool
	MemberJoinedAt  time.Time
}

// Field returns a declared field by name.
func (p *Profile) Field(name string) (any, error) {
	switch name {
	case "user_key":
		return p.UserKey, nil
	case "name":
		return p.Name, nil
	case "profile_image_url":
		return p.ProfileImageURL, nil
	case "is_app_member":
		return p.IsAppMember, nil
	case "message_allowed":
		return p.MessageAllowed, nil
	case "member_joined_at":
		return p.MemberJoinedAt, nil
	default:
		return nil, &FieldError{Type: "Profile", Name: name}
	}
}

type profileJSON struct {
	UserKey         string `json:"user_key"`
	Name            string `json:"name"`
	ProfileImageURL string `json:"profile_image_url"`
	IsAppMember     bool   `json:"is_app_member"`
	MessageAllowed  bool   `json:"message_allowed"`
	MemberJoinedAt  int64  `json:"member_joined_at"`
}

func newProfile(j profileJSON) *Profile {
	return &Profile{
		UserKey:         j.UserKey,
		Name:            j.Name,
		ProfileImageURL: j.ProfileImageURL,
		IsAppMember:     j.IsAppMember,
		MessageAllowed:  j.MessageAllowed,
		MemberJoinedAt:  msTime(j.MemberJoinedAt),
	}
}

// Band is a group the user belongs to. It carries the memoized permission
// set: the capability tokens are fetched at most once per Band instance and
// cached for its lifetime.
type Band struct {
	Name        string
	Key         string
	Cover       string
	MemberCount int

	permsMu    sync.Mutex
	perms      *PermissionSet
	permsGroup singleflight.Group
}

// Field returns a declared field by name.
func (b *Band) Field(name string) (any, error) {
	switch name {
	case "name":
		return b.Name, nil
	case "band_key":
		return b.Key, nil
	case "cover":
		return b.Cover, nil
	case "member_count":
		return b.MemberCount, nil
	default:
		return nil, &FieldError{Type: "Band", Name: name}
	}
}

type bandJSON struct {
	Name        string `json:"name"`
	BandKey     string `json:"band_key"`
	Cover       string `json:"cover"`
	MemberCount int    `json:"member_count"`
}

func newBand(j bandJSON) *Band {
	return &Band{
		Name:        j.Name,
		Key:         j.BandKey,
		Cover:       j.Cover,
		MemberCount: j.MemberCount,
	}
}

// Photo is a single photo inside a band album or attached to a post.
type Photo struct {
	Height           int
	Width            int
	CreatedAt        time.Time
	URL              string
	Author           Author
	AlbumKey         string
	PhotoKey         string
	CommentCount     int
	EmotionCount     int
	IsVideoThumbnail bool
}

// Field returns a declared field by name.
func (p *Photo) Field(name string) (any, error) {
	switch name {
	case "height":
		return p.Height, nil
	case "width":
		return p.Width, nil
	case "created_at":
		return p.CreatedAt, nil
	case "url":
		return p.URL, nil
	case "author":
		return p.Author, nil
	case "photo_album_key":
		return p.AlbumKey, nil
	case "photo_key":
		return p.PhotoKey, nil
	case "comment_count":
		return p.CommentCount, nil
	case "emotion_count":
		return p.EmotionCount, nil
	case "is_video_thumbnail":
		return p.IsVideoThumbnail, nil
	default:
		return nil, &FieldError{Type: "Photo", Name: name}
	}
}

type photoJSON struct {
	Height           int        `json:"height"`
	Width            int        `json:"width"`
	CreatedAt        int64      `json:"created_at"`
	URL              string     `json:"url"`
	Author           authorJSON `json:"author"`
	PhotoAlbumKey    string     `json:"photo_album_key"`
	PhotoKey         string     `json:"photo_key"`
	CommentCount     int        `json:"comment_count"`
	EmotionCount     int        `json:"emotion_count"`
	IsVideoThumbnail bool       `json:"is_video_thumbnail"`
}

func newPhoto(j photoJSON) *Photo {
	return &Photo{
		Height:           j.Height,
		Width:            j.Width,
		CreatedAt:        msTime(j.CreatedAt),
		URL:              j.URL,
		Author:           newAuthor(j.Author),
		AlbumKey:         j.PhotoAlbumKey,
		PhotoKey:         j.PhotoKey,
		CommentCount:     j.CommentCount,
		EmotionCount:     j.EmotionCount,
		IsVideoThumbnail: j.IsVideoThumbnail,
	}
}

// Album is a photo album inside a band.
type Album struct {
	AlbumKey   string
	Name       string
	PhotoCount int
	Owner      Author
}

// Field returns a declared field by name.
func (a *Album) Field(name string) (any, error) {
	switch name {
	case "photo_album_key":
		return a.AlbumKey, nil
	case "name":
		return a.Name, nil
	case "photo_count":
		return a.PhotoCount, nil
	case "owner":
		return a.Owner, nil
	default:
		return nil, &FieldError{Type: "Album", Name: name}
	}
}

type albumJSON struct {
	PhotoAlbumKey string     `json:"photo_album_key"`
	Name          string     `json:"name"`
	PhotoCount    int        `json:"photo_count"`
	Owner         authorJSON `json:"owner"`
}

func newAlbum(j albumJSON) *Album {
	return &Album{
		AlbumKey:   j.PhotoAlbumKey,
		Name:       j.Name,
		PhotoCount: j.PhotoCount,
		Owner:      newAuthor(j.Owner),
	}
}

// Comment is a comment on a post. It keeps a non-owning reference to the
// band it belongs to, used only for permission and identity checks.
type Comment struct {
	CommentKey string
	PostKey    string
	Body       string
	Author     Author
	CreatedAt  time.Time

	band *Band
}

// Band returns the band this comment belongs to.
func (c *Comment) Band() *Band {
	return c.band
}

// Field returns a declared field by name.
func (c *Comment) Field(name string) (any, error) {
	switch name {
	case "comment_key":
		return c.CommentKey, nil
	case "post_key":
		return c.PostKey, nil
	case "body":
		return c.Body, nil
	case "author":
		return c.Author, nil
	case "created_at":
		return c.CreatedAt, nil
	default:
		return nil, &FieldError{Type: "Comment", Name: name}
	}
}

type commentJSON struct {
	CommentKey string     `json:"comment_key"`
	PostKey    string     `json:"post_key"`
	Body       string     `json:"body"`
	Author     authorJSON `json:"author"`
	CreatedAt  int64      `json:"created_at"`
}

// newComment builds a comment from a parsed item. Pure field extraction;
// issues no network calls.
func newComment(j commentJSON, postKey string, b *Band) *Comment {
	if j.PostKey != "" {
		postKey = j.PostKey
	}
	return &Comment{
		CommentKey: j.CommentKey,
		PostKey:    postKey,
		Body:       j.Body,
		Author:     newAuthor(j.Author),
		CreatedAt:  msTime(j.CreatedAt),
		band:       b,
	}
}

// Post is a post on a band's board. It keeps a non-owning reference to the
// band it came from, used only for permission and identity checks.
type Post struct {
	PostKey        string
	Content        string
	Author         Author
	CreatedAt      time.Time
	CommentCount   int
	EmotionCount   int
	Photos         []*Photo
	LatestComments []*Comment

	// PostReadCount is only present on the single-post detail endpoint;
	// -1 means the listing did not carry it.
	PostReadCount int

	band *Band
}

// Band returns the band this post belongs to.
func (p *Post) Band() *Band {
	return p.band
}

// Field returns a declared field by name.
func (p *Post) Field(name string) (any, error) {
	switch name {
	case "post_key":
		return p.PostKey, nil
	case "content":
		return p.Content, nil
	case "author":
		return p.Author, nil
	case "created_at":
		return p.CreatedAt, nil
	case "comment_count":
		return p.CommentCount, nil
	case "emotion_count":
		return p.EmotionCount, nil
	case "photos":
		return p.Photos, nil
	case "latest_comments":
		return p.LatestComments, nil
	case "post_read_count":
		return p.PostReadCount, nil
	default:
		return nil, &FieldError{Type: "Post", Name: name}
	}
}

type postJSON struct {
	PostKey        string        `json:"post_key"`
	Content        string        `json:"content"`
	Author         authorJSON    `json:"author"`
	CreatedAt      int64         `json:"created_at"`
	CommentCount   int           `json:"comment_count"`
	EmotionCount   int           `json:"emotion_count"`
	Photos         []photoJSON   `json:"photos"`
	LatestComments []commentJSON `json:"latest_comments"`
	PostReadCount  *int          `json:"post_read_count"`
}

// newPost builds a post from a parsed item. Pure field extraction and
// nested-object construction; issues no network calls.
func newPost(j postJSON, b *Band) *Post {
	post := &Post{
		PostKey:       j.PostKey,
		Content:       j.Content,
		Author:        newAuthor(j.Author),
		CreatedAt:     msTime(j.CreatedAt),
		CommentCount:  j.CommentCount,
		EmotionCount:  j.EmotionCount,
		PostReadCount: -1,
		band:          b,
	}
	if j.PostReadCount != nil {
		post.PostReadCount = *j.PostReadCount
	}
	for _, pj := range j.Photos {
		post.Photos = append(post.Photos, newPhoto(pj))
	}
	for _, cj := range j.LatestComments {
		post.LatestComments = append(post.LatestComments, newComment(cj, j.PostKey, b))
	}
	return post
}
