package library

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yhkl-dev/cmusic/domain"
	"github.com/yhkl-dev/cmusic/spotify"
)

// ErrInvalidToken means the token did not resolve to a named user
var ErrInvalidToken = errors.New("invalid token")

// Session holds the authenticated user and the collections derived from it.
// Every refresh replaces a whole collection, and only once the new one was fetched completely.
type Session struct {
	lib    Library
	logger zerolog.Logger

	mu       sync.RWMutex
	user     domain.User
	owned    []domain.SimplifiedPlaylist
	followed []domain.SimplifiedPlaylist
	artists  []domain.Artist
}

func NewSession(lib Library, logger zerolog.Logger) *Session {
	return &Session{
		lib:    lib,
		logger: logger,
	}
}

// Connect resolves the token's user and loads every derived collection
func (s *Session) Connect(ctx context.Context) error {
	user, err := s.lib.Me(ctx)
	if err != nil && !spotify.IsRecoverable(err) {
		return fmt.Errorf("resolving current user: %w", err)
	}
	if err != nil || user == nil || user.DisplayName == nil {
		s.logger.Warn().Err(err).Msg("token did not resolve to a named user")
		return ErrInvalidToken
	}

	s.mu.Lock()
	s.user = *user
	s.mu.Unlock()
	s.logger.Info().Str("user_id", user.ID).Msg("connected")

	return s.Refresh(ctx)
}

// Refresh reloads playlists and followed artists
func (s *Session) Refresh(ctx context.Context) error {
	if err := s.RefreshPlaylists(ctx); err != nil {
		return err
	}
	return s.RefreshFollowedArtists(ctx)
}

// RefreshPlaylists splits the user's playlists into owned and followed
func (s *Session) RefreshPlaylists(ctx context.Context) error {
	owned, followed, err := s.lib.SplitPlaylists(ctx, s.User().Name())
	if err != nil {
		return fmt.Errorf("refreshing playlists: %w", err)
	}

	s.mu.Lock()
	s.owned, s.followed = owned, followed
	s.mu.Unlock()
	s.logger.Debug().Int("owned", len(owned)).Int("followed", len(followed)).Msg("playlists refreshed")
	return nil
}

func (s *Session) RefreshFollowedArtists(ctx context.Context) error {
	artists, err := s.lib.AllFollowedArtists(ctx)
	if err != nil {
		return fmt.Errorf("refreshing followed artists: %w", err)
	}

	s.mu.Lock()
	s.artists = artists
	s.mu.Unlock()
	s.logger.Debug().Int("artists", len(artists)).Msg("followed artists refreshed")
	return nil
}

func (s *Session) Library() Library {
	return s.lib
}

func (s *Session) User() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// OwnedPlaylists returns a copy of the playlists the user owns
func (s *Session) OwnedPlaylists() []domain.SimplifiedPlaylist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.owned)
}

// FollowedPlaylists returns a copy of the playlists the user follows but does not own
func (s *Session) FollowedPlaylists() []domain.SimplifiedPlaylist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.followed)
}

func (s *Session) FollowedArtists() []domain.Artist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.artists)
}

// Owns reports whether the playlist owner is the session user
func (s *Session) Owns(owner domain.SimplifiedUser) bool {
	name := s.User().Name()
	return owner.DisplayName != nil && *owner.DisplayName == name
}

// FollowsPlaylist reports whether id is among the followed playlists
func (s *Session) FollowsPlaylist(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.ContainsFunc(s.followed, func(p domain.SimplifiedPlaylist) bool { return p.ID == id })
}

func (s *Session) FollowsArtist(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.ContainsFunc(s.artists, func(a domain.Artist) bool { return a.ID == id })
}

func (s *Session) FollowPlaylist(ctx context.Context, id string) error {
	if err := s.lib.FollowPlaylist(ctx, id); err != nil {
		return fmt.Errorf("following playlist %s: %w", id, err)
	}
	return s.RefreshPlaylists(ctx)
}

func (s *Session) UnfollowPlaylist(ctx context.Context, id string) error {
	if err := s.lib.UnfollowPlaylist(ctx, id); err != nil {
		return fmt.Errorf("unfollowing playlist %s: %w", id, err)
	}
	return s.RefreshPlaylists(ctx)
}

func (s *Session) FollowArtist(ctx context.Context, id string) error {
	if err := s.lib.FollowArtist(ctx, id); err != nil {
		return fmt.Errorf("following artist %s: %w", id, err)
	}
	return s.RefreshFollowedArtists(ctx)
}

func (s *Session) UnfollowArtist(ctx context.Context, id string) error {
	if err := s.lib.UnfollowArtist(ctx, id); err != nil {
		return fmt.Errorf("unfollowing artist %s: %w", id, err)
	}
	return s.RefreshFollowedArtists(ctx)
}

// AddTrackToPlaylist appends track to the playlist and returns the playlist
// with its new snapshot. The playlist's first page of entries is as fetched before the change.
func (s *Session) AddTrackToPlaylist(ctx context.Context, playlistID string, track domain.Track) (*domain.Playlist, error) {
	playlist, err := s.lib.Playlist(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("fetching playlist %s: %w", playlistID, err)
	}
	snapshot, err := s.lib.AddTracks(ctx, playlist.ID, []string{track.URI()})
	if err != nil {
		return nil, fmt.Errorf("adding track %s to playlist %s: %w", track.ID, playlist.ID, err)
	}
	playlist.SetSnapshot(snapshot)
	s.logger.Info().Str("playlist_id", playlist.ID).Str("track_id", track.ID).Msg("track added")

	if err := s.RefreshPlaylists(ctx); err != nil {
		return nil, err
	}
	return playlist, nil
}

// RemoveTrackFromPlaylist removes every occurrence of track from playlist and records the new snapshot
func (s *Session) RemoveTrackFromPlaylist(ctx context.Context, playlist *domain.Playlist, track domain.Track) error {
	snapshot, err := s.lib.RemoveTracks(ctx, playlist.ID, []string{track.URI()}, playlist.SnapshotID)
	if err != nil {
		return fmt.Errorf("removing track %s from playlist %s: %w", track.ID, playlist.ID, err)
	}
	playlist.SetSnapshot(snapshot)
	s.logger.Info().Str("playlist_id", playlist.ID).Str("track_id", track.ID).Msg("track removed")
	return s.RefreshPlaylists(ctx)
}

// CreatePlaylist creates an empty playlist owned by the session user
func (s *Session) CreatePlaylist(ctx context.Context, name, description string) (*domain.Playlist, error) {
	playlist, err := s.lib.CreatePlaylist(ctx, s.User().ID, name, description)
	if err != nil {
		return nil, fmt.Errorf("creating playlist %q: %w", name, err)
	}
	s.logger.Info().Str("playlist_id", playlist.ID).Msg("playlist created")

	if err := s.RefreshPlaylists(ctx); err != nil {
		return nil, err
	}
	return playlist, nil
}

// EditPlaylist renames the playlist and replaces its description
func (s *Session) EditPlaylist(ctx context.Context, playlist *domain.Playlist, name string, description *string) error {
	desc := ""
	if description != nil {
		desc = *description
	}
	if err := s.lib.UpdatePlaylistDetails(ctx, playlist.ID, name, desc); err != nil {
		return fmt.Errorf("editing playlist %s: %w", playlist.ID, err)
	}
	playlist.Rename(name, description)
	return s.RefreshPlaylists(ctx)
}
