package spotify

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/yhkl-dev/cmusic/domain"
)

type playlistDetails struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type trackRef struct {
	URI string `json:"uri"`
}

type removeTracksBody struct {
	Tracks     []trackRef `json:"tracks"`
	SnapshotID string     `json:"snapshot_id,omitempty"`
}

func playlistPath(id string, rest ...string) string {
	return "/playlists/" + url.PathEscape(id) + strings.Join(rest, "")
}

func (c *Client) Playlist(ctx context.Context, id string) (*domain.Playlist, error) {
	return getOne(ctx, c, c.endpoint(playlistPath(id), nil), DecodePlaylist)
}

func (c *Client) PlaylistTracks(ctx context.Context, id string, offset int) (*domain.Page[domain.PlaylistTrack], error) {
	return get(ctx, c, c.endpoint(playlistPath(id, "/tracks"), c.paged(offset)), pageOf(DecodePlaylistTrack))
}

// UpdatePlaylistDetails changes the name and description of a playlist the user owns
func (c *Client) UpdatePlaylistDetails(ctx context.Context, id, name, description string) error {
	_, err := c.send(ctx, http.MethodPut, c.endpoint(playlistPath(id), nil), playlistDetails{
		Name:        name,
		Description: description,
	})
	return err
}

// AddPlaylistTracks appends tracks by URI and returns the new snapshot id,
// "" when nothing was sent or the response carried none.
func (c *Client) AddPlaylistTracks(ctx context.Context, id string, uris []string) (string, error) {
	if len(uris) == 0 {
		return "", nil
	}
	u := c.endpoint(playlistPath(id, "/tracks"), url.Values{"uris": {strings.Join(uris, ",")}})
	raw, err := c.send(ctx, http.MethodPost, u, struct{}{})
	if err != nil {
		return "", err
	}
	return snapshotOf(raw), nil
}

// RemovePlaylistTracks removes every occurrence of the given track URIs
// from the playlist version identified by snapshotID.
func (c *Client) RemovePlaylistTracks(ctx context.Context, id string, uris []string, snapshotID string) (string, error) {
	if len(uris) == 0 {
		return "", nil
	}
	body := removeTracksBody{Tracks: make([]trackRef, 0, len(uris)), SnapshotID: snapshotID}
	for _, uri := range uris {
		body.Tracks = append(body.Tracks, trackRef{URI: uri})
	}
	raw, err := c.send(ctx, http.MethodDelete, c.endpoint(playlistPath(id, "/tracks"), nil), body)
	if err != nil {
		return "", err
	}
	return snapshotOf(raw), nil
}

// UserPlaylists returns one page of the playlists owned or followed by the user
func (c *Client) UserPlaylists(ctx context.Context, offset int) (*domain.Page[domain.SimplifiedPlaylist], error) {
	return get(ctx, c, c.endpoint("/me/playlists", c.paged(offset)), pageOf(DecodeSimplifiedPlaylist))
}

// CreatePlaylist creates an empty playlist owned by userID
func (c *Client) CreatePlaylist(ctx context.Context, userID, name, description string) (*domain.Playlist, error) {
	u := c.endpoint("/users/"+url.PathEscape(userID)+"/playlists", nil)
	raw, err := c.send(ctx, http.MethodPost, u, playlistDetails{Name: name, Description: description})
	if err != nil {
		return nil, err
	}
	p, err := DecodePlaylist(raw)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) FollowPlaylist(ctx context.Context, id string) error {
	_, err := c.send(ctx, http.MethodPut, c.endpoint(playlistPath(id, "/followers"), nil), struct{}{})
	return err
}

func (c *Client) UnfollowPlaylist(ctx context.Context, id string) error {
	_, err := c.Do(ctx, http.MethodDelete, c.endpoint(playlistPath(id, "/followers"), nil), nil)
	return err
}
