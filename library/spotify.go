package library

import (
	"context"

	"github.com/yhkl-dev/cmusic/domain"
	"github.com/yhkl-dev/cmusic/pagination"
	"github.com/yhkl-dev/cmusic/spotify"
)

// SpotifyLibrary implements Library over the Web API client
type SpotifyLibrary struct {
	client *spotify.Client
}

func NewSpotifyLibrary(client *spotify.Client) *SpotifyLibrary {
	return &SpotifyLibrary{
		client: client,
	}
}

func (s *SpotifyLibrary) Me(ctx context.Context) (*domain.User, error) {
	return s.client.Me(ctx)
}

func (s *SpotifyLibrary) Album(ctx context.Context, id string) (*domain.Album, error) {
	return s.client.Album(ctx, id)
}

func (s *SpotifyLibrary) Artist(ctx context.Context, id string) (*domain.Artist, error) {
	return s.client.Artist(ctx, id)
}

func (s *SpotifyLibrary) Playlist(ctx context.Context, id string) (*domain.Playlist, error) {
	return s.client.Playlist(ctx, id)
}

func (s *SpotifyLibrary) Track(ctx context.Context, id string) (*domain.Track, error) {
	return s.client.Track(ctx, id)
}

func (s *SpotifyLibrary) AlbumTracks(ctx context.Context, id string, offset int) (*domain.Page[domain.SimplifiedTrack], error) {
	return s.client.AlbumTracks(ctx, id, offset)
}

func (s *SpotifyLibrary) ArtistAlbums(ctx context.Context, id string, offset int) (*domain.Page[domain.SimplifiedAlbum], error) {
	return s.client.ArtistAlbums(ctx, id, offset)
}

func (s *SpotifyLibrary) ArtistTopTracks(ctx context.Context, id string) ([]domain.Track, error) {
	return s.client.ArtistTopTracks(ctx, id)
}

func (s *SpotifyLibrary) PlaylistTracks(ctx context.Context, id string, offset int) (*domain.Page[domain.PlaylistTrack], error) {
	return s.client.PlaylistTracks(ctx, id, offset)
}

func (s *SpotifyLibrary) NewReleases(ctx context.Context, offset int) (*domain.Page[domain.SimplifiedAlbum], error) {
	return s.client.NewReleases(ctx, offset)
}

func (s *SpotifyLibrary) Search(ctx context.Context, query spotify.SearchQuery, offset int) (*domain.Search, error) {
	return s.client.Search(ctx, query, offset)
}

func (s *SpotifyLibrary) AllSavedAlbums(ctx context.Context) ([]domain.SavedAlbum, error) {
	return pagination.CollectOffset(ctx, s.client.SavedAlbums)
}

func (s *SpotifyLibrary) AllSavedTracks(ctx context.Context) ([]domain.SavedTrack, error) {
	return pagination.CollectOffset(ctx, s.client.SavedTracks)
}

func (s *SpotifyLibrary) AllUserPlaylists(ctx context.Context) ([]domain.SimplifiedPlaylist, error) {
	return pagination.CollectOffset(ctx, s.client.UserPlaylists)
}

// AllFollowedArtists walks the cursor-paginated following list, resuming after the last artist id
func (s *SpotifyLibrary) AllFollowedArtists(ctx context.Context) ([]domain.Artist, error) {
	return pagination.CollectCursor(ctx, s.client.FollowedArtists, func(a domain.Artist) string {
		return a.ID
	})
}

func (s *SpotifyLibrary) AllTopArtists(ctx context.Context) ([]domain.Artist, error) {
	return pagination.CollectOffset(ctx, s.client.TopArtists)
}

func (s *SpotifyLibrary) AllTopTracks(ctx context.Context) ([]domain.Track, error) {
	return pagination.CollectOffset(ctx, s.client.TopTracks)
}

func (s *SpotifyLibrary) AllPlaylistTracks(ctx context.Context, id string) ([]domain.PlaylistTrack, error) {
	return pagination.CollectOffset(ctx, func(ctx context.Context, offset int) (*domain.Page[domain.PlaylistTrack], error) {
		return s.client.PlaylistTracks(ctx, id, offset)
	})
}

// SplitPlaylists separates the user's playlists into those whose owner
// display name is ownerName and those merely followed.
func (s *SpotifyLibrary) SplitPlaylists(ctx context.Context, ownerName string) (owned, followed []domain.SimplifiedPlaylist, err error) {
	return pagination.Partition(ctx, s.client.UserPlaylists, func(p domain.SimplifiedPlaylist) bool {
		return OwnedBy(p, ownerName)
	})
}

func (s *SpotifyLibrary) SaveAlbum(ctx context.Context, id string) error {
	return s.client.SaveAlbums(ctx, []string{id})
}

func (s *SpotifyLibrary) RemoveSavedAlbum(ctx context.Context, id string) error {
	return s.client.RemoveSavedAlbums(ctx, []string{id})
}

func (s *SpotifyLibrary) SaveTrack(ctx context.Context, id string) error {
	return s.client.SaveTracks(ctx, []string{id})
}

func (s *SpotifyLibrary) RemoveSavedTrack(ctx context.Context, id string) error {
	return s.client.RemoveSavedTracks(ctx, []string{id})
}

func (s *SpotifyLibrary) FollowArtist(ctx context.Context, id string) error {
	return s.client.FollowArtists(ctx, []string{id})
}

func (s *SpotifyLibrary) UnfollowArtist(ctx context.Context, id string) error {
	return s.client.UnfollowArtists(ctx, []string{id})
}

func (s *SpotifyLibrary) FollowPlaylist(ctx context.Context, id string) error {
	return s.client.FollowPlaylist(ctx, id)
}

func (s *SpotifyLibrary) UnfollowPlaylist(ctx context.Context, id string) error {
	return s.client.UnfollowPlaylist(ctx, id)
}

func (s *SpotifyLibrary) AddTracks(ctx context.Context, playlistID string, uris []string) (string, error) {
	return s.client.AddPlaylistTracks(ctx, playlistID, uris)
}

func (s *SpotifyLibrary) RemoveTracks(ctx context.Context, playlistID string, uris []string, snapshotID string) (string, error) {
	return s.client.RemovePlaylistTracks(ctx, playlistID, uris, snapshotID)
}

func (s *SpotifyLibrary) UpdatePlaylistDetails(ctx context.Context, id, name, description string) error {
	return s.client.UpdatePlaylistDetails(ctx, id, name, description)
}

func (s *SpotifyLibrary) CreatePlaylist(ctx context.Context, userID, name, description string) (*domain.Playlist, error) {
	return s.client.CreatePlaylist(ctx, userID, name, description)
}

// OwnedBy reports whether the playlist owner's display name is ownerName
func OwnedBy(p domain.SimplifiedPlaylist, ownerName string) bool {
	return p.Owner.DisplayName != nil && *p.Owner.DisplayName == ownerName
}
