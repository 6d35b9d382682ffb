package spotify

import (
	"context"

	"github.com/yhkl-dev/cmusic/domain"
)

// Me returns the profile of the user the token belongs to
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	return getOne(ctx, c, c.endpoint("/me", nil), DecodeUser)
}

func (c *Client) TopArtists(ctx context.Context, offset int) (*domain.Page[domain.Artist], error) {
	return get(ctx, c, c.endpoint("/me/top/artists", c.paged(offset)), pageOf(DecodeArtist))
}

func (c *Client) TopTracks(ctx context.Context, offset int) (*domain.Page[domain.Track], error) {
	return get(ctx, c, c.endpoint("/me/top/tracks", c.paged(offset)), pageOf(DecodeTrack))
}
