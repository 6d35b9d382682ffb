package spotify

import (
	"context"
	"net/http"
	"net/url"

	"github.com/yhkl-dev/cmusic/domain"
)

func (c *Client) Track(ctx context.Context, id string) (*domain.Track, error) {
	return getOne(ctx, c, c.endpoint("/tracks/"+url.PathEscape(id), nil), DecodeTrack)
}

// SavedTracks returns one page of the tracks saved in the user's library
func (c *Client) SavedTracks(ctx context.Context, offset int) (*domain.Page[domain.SavedTrack], error) {
	return get(ctx, c, c.endpoint("/me/tracks", c.paged(offset)), pageOf(DecodeSavedTrack))
}

func (c *Client) SaveTracks(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := c.send(ctx, http.MethodPut, c.endpoint("/me/tracks", url.Values{"ids": {joinIDs(ids)}}), struct{}{})
	return err
}

func (c *Client) RemoveSavedTracks(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := c.Do(ctx, http.MethodDelete, c.endpoint("/me/tracks", url.Values{"ids": {joinIDs(ids)}}), nil)
	return err
}
