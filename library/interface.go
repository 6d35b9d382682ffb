package library

import (
	"context"

	"github.com/yhkl-dev/cmusic/domain"
	"github.com/yhkl-dev/cmusic/spotify"
)

// Library is everything the presentation layer asks of the music service.
// Single lookups return (nil, *spotify.APIError) when the resource is absent.
type Library interface {
	Me(ctx context.Context) (*domain.User, error)
	Album(ctx context.Context, id string) (*domain.Album, error)
	Artist(ctx context.Context, id string) (*domain.Artist, error)
	Playlist(ctx context.Context, id string) (*domain.Playlist, error)
	Track(ctx context.Context, id string) (*domain.Track, error)

	AlbumTracks(ctx context.Context, id string, offset int) (*domain.Page[domain.SimplifiedTrack], error)
	ArtistAlbums(ctx context.Context, id string, offset int) (*domain.Page[domain.SimplifiedAlbum], error)
	ArtistTopTracks(ctx context.Context, id string) ([]domain.Track, error)
	PlaylistTracks(ctx context.Context, id string, offset int) (*domain.Page[domain.PlaylistTrack], error)
	NewReleases(ctx context.Context, offset int) (*domain.Page[domain.SimplifiedAlbum], error)
	Search(ctx context.Context, query spotify.SearchQuery, offset int) (*domain.Search, error)

	AllSavedAlbums(ctx context.Context) ([]domain.SavedAlbum, error)
	AllSavedTracks(ctx context.Context) ([]domain.SavedTrack, error)
	AllUserPlaylists(ctx context.Context) ([]domain.SimplifiedPlaylist, error)
	AllFollowedArtists(ctx context.Context) ([]domain.Artist, error)
	AllTopArtists(ctx context.Context) ([]domain.Artist, error)
	AllTopTracks(ctx context.Context) ([]domain.Track, error)
	AllPlaylistTracks(ctx context.Context, id string) ([]domain.PlaylistTrack, error)
	SplitPlaylists(ctx context.Context, ownerName string) (owned, followed []domain.SimplifiedPlaylist, err error)

	SaveAlbum(ctx context.Context, id string) error
	RemoveSavedAlbum(ctx context.Context, id string) error
	SaveTrack(ctx context.Context, id string) error
	RemoveSavedTrack(ctx context.Context, id string) error
	FollowArtist(ctx context.Context, id string) error
	UnfollowArtist(ctx context.Context, id string) error
	FollowPlaylist(ctx context.Context, id string) error
	UnfollowPlaylist(ctx context.Context, id string) error

	AddTracks(ctx context.Context, playlistID string, uris []string) (string, error)
	RemoveTracks(ctx context.Context, playlistID string, uris []string, snapshotID string) (string, error)
	UpdatePlaylistDetails(ctx context.Context, id, name, description string) error
	CreatePlaylist(ctx context.Context, userID, name, description string) (*domain.Playlist, error)
}
