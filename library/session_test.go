package library

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhkl-dev/cmusic/domain"
	"github.com/yhkl-dev/cmusic/spotify"
)

func strPtr(s string) *string { return &s }

func ownedBy(id, owner string) domain.SimplifiedPlaylist {
	return domain.SimplifiedPlaylist{ID: id, Name: id, Owner: domain.SimplifiedUser{ID: owner, DisplayName: strPtr(owner)}}
}

// fakeLibrary serves in-memory collections; methods the tests do not need panic through the nil embedded interface
type fakeLibrary struct {
	Library

	me        *domain.User
	meErr     error
	playlists []domain.SimplifiedPlaylist
	artists   []domain.Artist
	playlist  *domain.Playlist
	snapshot  string
	failNext  error

	splitCalls   int
	artistCalls  int
	followed     []string
	unfollowed   []string
	addedURIs    []string
	removedURIs  []string
	removedSnap  string
	detailsName  string
	detailsDesc  string
	createdOwner string
}

func (f *fakeLibrary) Me(context.Context) (*domain.User, error) { return f.me, f.meErr }

func (f *fakeLibrary) SplitPlaylists(_ context.Context, ownerName string) (owned, followed []domain.SimplifiedPlaylist, err error) {
	f.splitCalls++
	if f.failNext != nil {
		err, f.failNext = f.failNext, nil
		return nil, nil, err
	}
	owned, followed = []domain.SimplifiedPlaylist{}, []domain.SimplifiedPlaylist{}
	for _, p := range f.playlists {
		if OwnedBy(p, ownerName) {
			owned = append(owned, p)
		} else {
			followed = append(followed, p)
		}
	}
	return owned, followed, nil
}

func (f *fakeLibrary) AllFollowedArtists(context.Context) ([]domain.Artist, error) {
	f.artistCalls++
	return append([]domain.Artist{}, f.artists...), nil
}

func (f *fakeLibrary) FollowArtist(_ context.Context, id string) error {
	f.followed = append(f.followed, id)
	f.artists = append(f.artists, domain.Artist{ID: id})
	return nil
}

func (f *fakeLibrary) UnfollowArtist(_ context.Context, id string) error {
	f.unfollowed = append(f.unfollowed, id)
	return nil
}

func (f *fakeLibrary) FollowPlaylist(_ context.Context, id string) error {
	f.followed = append(f.followed, id)
	f.playlists = append(f.playlists, ownedBy(id, "Bob"))
	return nil
}

func (f *fakeLibrary) UnfollowPlaylist(_ context.Context, id string) error {
	f.unfollowed = append(f.unfollowed, id)
	return nil
}

func (f *fakeLibrary) Playlist(context.Context, string) (*domain.Playlist, error) {
	if f.playlist == nil {
		return nil, &spotify.APIError{Status: 404, Message: "Not found."}
	}
	p := *f.playlist
	return &p, nil
}

func (f *fakeLibrary) AddTracks(_ context.Context, _ string, uris []string) (string, error) {
	f.addedURIs = append(f.addedURIs, uris...)
	return f.snapshot, nil
}

func (f *fakeLibrary) RemoveTracks(_ context.Context, _ string, uris []string, snapshotID string) (string, error) {
	f.removedURIs = append(f.removedURIs, uris...)
	f.removedSnap = snapshotID
	return f.snapshot, nil
}

func (f *fakeLibrary) UpdatePlaylistDetails(_ context.Context, _, name, description string) error {
	f.detailsName, f.detailsDesc = name, description
	return nil
}

func (f *fakeLibrary) CreatePlaylist(_ context.Context, userID, name, _ string) (*domain.Playlist, error) {
	f.createdOwner = userID
	return &domain.Playlist{ID: "new", Name: name}, nil
}

func alice() *domain.User {
	return &domain.User{ID: "alice", DisplayName: strPtr("Alice")}
}

func connected(t *testing.T, fake *fakeLibrary) *Session {
	t.Helper()
	if fake.me == nil {
		fake.me = alice()
	}
	s := NewSession(fake, zerolog.Nop())
	require.NoError(t, s.Connect(context.Background()))
	return s
}

func TestConnectLoadsCollections(t *testing.T) {
	fake := &fakeLibrary{
		playlists: []domain.SimplifiedPlaylist{ownedBy("p1", "Alice"), ownedBy("p2", "Bob"), ownedBy("p3", "Alice")},
		artists:   []domain.Artist{{ID: "a1", Name: "One"}},
	}
	s := connected(t, fake)

	assert.Equal(t, "Alice", s.User().Name())
	assert.Equal(t, []string{"p1", "p3"}, ids(s.OwnedPlaylists()))
	assert.Equal(t, []string{"p2"}, ids(s.FollowedPlaylists()))
	assert.Len(t, s.FollowedArtists(), 1)
	assert.True(t, s.FollowsArtist("a1"))
	assert.True(t, s.FollowsPlaylist("p2"))
	assert.False(t, s.FollowsPlaylist("p1"), "owned playlists are not in the followed set")
	assert.True(t, s.Owns(domain.SimplifiedUser{DisplayName: strPtr("Alice")}))
	assert.False(t, s.Owns(domain.SimplifiedUser{}))
}

func ids(playlists []domain.SimplifiedPlaylist) []string {
	out := make([]string, len(playlists))
	for i, p := range playlists {
		out[i] = p.ID
	}
	return out
}

func TestConnectInvalidToken(t *testing.T) {
	tests := []struct {
		name  string
		me    *domain.User
		meErr error
	}{
		{"absent user", nil, &spotify.APIError{Status: 401, Message: "Invalid access token"}},
		{"no display name", &domain.User{ID: "x"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeLibrary{me: tt.me, meErr: tt.meErr}
			err := NewSession(fake, zerolog.Nop()).Connect(context.Background())
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Equal(t, 0, fake.splitCalls)
		})
	}
}

func TestConnectTransportFailureIsNotInvalidToken(t *testing.T) {
	cause := &spotify.TransportError{Method: "GET", URL: "u", Cause: errors.New("connection refused")}
	fake := &fakeLibrary{meErr: cause}
	err := NewSession(fake, zerolog.Nop()).Connect(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
	var transportErr *spotify.TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestRefreshFailureKeepsPreviousState(t *testing.T) {
	fake := &fakeLibrary{playlists: []domain.SimplifiedPlaylist{ownedBy("p1", "Alice")}}
	s := connected(t, fake)

	fake.playlists = append(fake.playlists, ownedBy("p2", "Alice"))
	fake.failNext = errors.New("boom")
	require.Error(t, s.RefreshPlaylists(context.Background()))
	assert.Equal(t, []string{"p1"}, ids(s.OwnedPlaylists()))

	require.NoError(t, s.RefreshPlaylists(context.Background()))
	assert.Equal(t, []string{"p1", "p2"}, ids(s.OwnedPlaylists()))
}

func TestGettersReturnCopies(t *testing.T) {
	fake := &fakeLibrary{playlists: []domain.SimplifiedPlaylist{ownedBy("p1", "Alice")}}
	s := connected(t, fake)

	owned := s.OwnedPlaylists()
	owned[0].ID = "changed"
	assert.Equal(t, "p1", s.OwnedPlaylists()[0].ID)
}

func TestFollowMutationsRefresh(t *testing.T) {
	fake := &fakeLibrary{}
	s := connected(t, fake)
	ctx := context.Background()

	require.NoError(t, s.FollowArtist(ctx, "a9"))
	assert.True(t, s.FollowsArtist("a9"))
	assert.Equal(t, 2, fake.artistCalls)

	require.NoError(t, s.FollowPlaylist(ctx, "p9"))
	assert.True(t, s.FollowsPlaylist("p9"))
	assert.Equal(t, 2, fake.splitCalls)

	require.NoError(t, s.UnfollowArtist(ctx, "a9"))
	require.NoError(t, s.UnfollowPlaylist(ctx, "p9"))
	assert.Equal(t, []string{"a9", "p9"}, fake.unfollowed)
}

func TestAddTrackToPlaylist(t *testing.T) {
	fake := &fakeLibrary{
		playlist: &domain.Playlist{ID: "p1", SnapshotID: "s1"},
		snapshot: "s2",
	}
	s := connected(t, fake)

	playlist, err := s.AddTrackToPlaylist(context.Background(), "p1", domain.Track{ID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, "s2", playlist.SnapshotID)
	assert.Equal(t, []string{"spotify:track:t1"}, fake.addedURIs)
	assert.Equal(t, 2, fake.splitCalls)
}

func TestAddTrackToMissingPlaylist(t *testing.T) {
	fake := &fakeLibrary{}
	s := connected(t, fake)

	_, err := s.AddTrackToPlaylist(context.Background(), "gone", domain.Track{ID: "t1"})
	assert.True(t, spotify.IsRecoverable(err))
	assert.Empty(t, fake.addedURIs)
}

func TestRemoveTrackFromPlaylist(t *testing.T) {
	fake := &fakeLibrary{snapshot: ""}
	s := connected(t, fake)
	playlist := &domain.Playlist{ID: "p1", SnapshotID: "s1"}

	require.NoError(t, s.RemoveTrackFromPlaylist(context.Background(), playlist, domain.Track{ID: "t1"}))
	assert.Equal(t, "s1", fake.removedSnap)
	assert.Equal(t, "s1", playlist.SnapshotID, "an empty snapshot leaves the old one")
}

func TestCreatePlaylistUsesSessionUser(t *testing.T) {
	fake := &fakeLibrary{}
	s := connected(t, fake)

	playlist, err := s.CreatePlaylist(context.Background(), "Mix", "")
	require.NoError(t, err)
	assert.Equal(t, "new", playlist.ID)
	assert.Equal(t, "alice", fake.createdOwner)
}

func TestEditPlaylist(t *testing.T) {
	fake := &fakeLibrary{}
	s := connected(t, fake)
	playlist := &domain.Playlist{ID: "p1", Name: "Old"}

	require.NoError(t, s.EditPlaylist(context.Background(), playlist, "New", strPtr("fresh")))
	assert.Equal(t, "New", playlist.Name)
	require.NotNil(t, playlist.Description)
	assert.Equal(t, "fresh", *playlist.Description)
	assert.Equal(t, "New", fake.detailsName)
	assert.Equal(t, "fresh", fake.detailsDesc)

	require.NoError(t, s.EditPlaylist(context.Background(), playlist, "Newer", nil))
	assert.Nil(t, playlist.Description)
	assert.Equal(t, "", fake.detailsDesc)
}
