package spotify

import (
	"context"
	"net/http"
	"net/url"

	"github.com/yhkl-dev/cmusic/domain"
)

func (c *Client) Album(ctx context.Context, id string) (*domain.Album, error) {
	return getOne(ctx, c, c.endpoint("/albums/"+url.PathEscape(id), nil), DecodeAlbum)
}

func (c *Client) AlbumTracks(ctx context.Context, id string, offset int) (*domain.Page[domain.SimplifiedTrack], error) {
	u := c.endpoint("/albums/"+url.PathEscape(id)+"/tracks", c.paged(offset))
	return get(ctx, c, u, pageOf(DecodeSimplifiedTrack))
}

// SavedAlbums returns one page of the albums saved in the user's library
func (c *Client) SavedAlbums(ctx context.Context, offset int) (*domain.Page[domain.SavedAlbum], error) {
	return get(ctx, c, c.endpoint("/me/albums", c.paged(offset)), pageOf(DecodeSavedAlbum))
}

// SaveAlbums adds albums to the user's library
func (c *Client) SaveAlbums(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := c.send(ctx, http.MethodPut, c.endpoint("/me/albums", url.Values{"ids": {joinIDs(ids)}}), struct{}{})
	return err
}

// RemoveSavedAlbums removes albums from the user's library
func (c *Client) RemoveSavedAlbums(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := c.Do(ctx, http.MethodDelete, c.endpoint("/me/albums", url.Values{"ids": {joinIDs(ids)}}), nil)
	return err
}

// NewReleases returns one page of newly released albums
func (c *Client) NewReleases(ctx context.Context, offset int) (*domain.Page[domain.SimplifiedAlbum], error) {
	u := c.endpoint("/browse/new-releases", c.paged(offset))
	return get(ctx, c, u, envelope("albums", pageOf(DecodeSimplifiedAlbum)))
}
