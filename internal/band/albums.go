package band

import (
	"context"
	"net/url"
)

// Albums lists a page of the band's photo albums.
func (c *Client) Albums(ctx context.Context, b *Band, cursor *Paging) ([]*Album, *Paging, error) {
	params := url.Values{}
	params.Set("band_key", b.Key)
	cursor.apply(params)

	env, err := c.get(ctx, "/v2/band/albums", params)
	if err != nil {
		return nil, nil, err
	}

	var data struct {
		Items  []albumJSON `json:"items"`
		Paging *pagingJSON `json:"paging"`
	}
	if err := decodeResultData(env, &data); err != nil {
		return nil, nil, err
	}

	albums := make([]*Album, 0, len(data.Items))
	for _, aj := range data.Items {
		albums = append(albums, newAlbum(aj))
	}
	return albums, nextPaging(data.Paging), nil
}

// Photos lists a page of an album's photos. An empty albumKey lists the
// band's photos across albums.
func (c *Client) Photos(ctx context.Context, b *Band, albumKey string, cursor *Paging) ([]*Photo, *Paging, error) {
	params := url.Values{}
	params.Set("band_key", b.Key)
	if albumKey != "" {
		params.Set("photo_album_key", albumKey)
	}
	cursor.apply(params)

	env, err := c.get(ctx, "/v2/band/album/photos", params)
	if err != nil {
		return nil, nil, err
	}

	var data struct {
		Items  []photoJSON `json:"items"`
		Paging *pagingJSON `json:"paging"`
	}
	if err := decodeResultData(env, &data); err != nil {
		return nil, nil, err
	}

	photos := make([]*Photo, 0, len(data.Items))
	for _, pj := range data.Items {
		photos = append(photos, newPhoto(pj))
	}
	return photos, nextPaging(data.Paging), nil
}
