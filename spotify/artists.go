package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yhkl-dev/cmusic/domain"
)

func (c *Client) Artist(ctx context.Context, id string) (*domain.Artist, error) {
	return getOne(ctx, c, c.endpoint("/artists/"+url.PathEscape(id), nil), DecodeArtist)
}

func (c *Client) ArtistAlbums(ctx context.Context, id string, offset int) (*domain.Page[domain.SimplifiedAlbum], error) {
	u := c.endpoint("/artists/"+url.PathEscape(id)+"/albums", c.paged(offset))
	return get(ctx, c, u, pageOf(DecodeSimplifiedAlbum))
}

// ArtistTopTracks returns the artist's most popular tracks; the list is not paginated
func (c *Client) ArtistTopTracks(ctx context.Context, id string) ([]domain.Track, error) {
	u := c.endpoint("/artists/"+url.PathEscape(id)+"/top-tracks", nil)
	return get(ctx, c, u, envelope("tracks", func(raw json.RawMessage) ([]domain.Track, error) {
		return DecodeArray(raw, DecodeTrack)
	}))
}

// FollowedArtists returns one page of the artists the user follows.
// The collection is cursor-paginated: after is the id of the last artist already seen.
func (c *Client) FollowedArtists(ctx context.Context, after string) (*domain.Page[domain.Artist], error) {
	q := url.Values{
		"type":  {"artist"},
		"limit": {strconv.Itoa(c.pageLimit)},
	}
	if after != "" {
		q.Set("after", after)
	}
	return get(ctx, c, c.endpoint("/me/following", q), envelope("artists", pageOf(DecodeArtist)))
}

func (c *Client) FollowArtists(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	q := url.Values{"type": {"artist"}, "ids": {joinIDs(ids)}}
	_, err := c.send(ctx, http.MethodPut, c.endpoint("/me/following", q), struct{}{})
	return err
}

func (c *Client) UnfollowArtists(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	q := url.Values{"type": {"artist"}, "ids": {joinIDs(ids)}}
	_, err := c.Do(ctx, http.MethodDelete, c.endpoint("/me/following", q), nil)
	return err
}
