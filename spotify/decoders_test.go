package spotify

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) json.RawMessage {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err, "loading fixture %s", name)
	return data
}

func requireShapeError(t *testing.T, err error) *DecodeError {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidShape)
	var decErr *DecodeError
	require.True(t, errors.As(err, &decErr), "expected *DecodeError, got %T", err)
	return decErr
}

func TestDecodeArtist(t *testing.T) {
	artist, err := DecodeArtist(loadFixture(t, "artist.json"))
	require.NoError(t, err)

	assert.Equal(t, "0OdUWJ0sBjDrqHygGUXeCF", artist.ID)
	assert.Equal(t, "Band of Horses", artist.Name)
	assert.Equal(t, 59, artist.Popularity)
	assert.Equal(t, 1234567, artist.Followers.Total)
	assert.Equal(t, []string{"indie folk", "stomp and holler"}, artist.Genres)
}

func TestDecodeArtistEmptyGenres(t *testing.T) {
	raw := `{"followers":{"total":0},"genres":[],"id":"a","name":"A","popularity":0}`
	artist, err := DecodeArtist(json.RawMessage(raw))
	require.NoError(t, err)
	require.NotNil(t, artist.Genres)
	assert.Empty(t, artist.Genres)
}

func TestDecodeArtistGenreNotString(t *testing.T) {
	raw := `{"followers":{"total":0},"genres":["rock",7],"id":"a","name":"A","popularity":0}`
	_, err := DecodeArtist(json.RawMessage(raw))
	requireShapeError(t, err)
	assert.Contains(t, err.Error(), "genres")
}

func TestDecodeSimplifiedArtistMissingName(t *testing.T) {
	_, err := DecodeSimplifiedArtist(json.RawMessage(`{"href":"h","id":"x"}`))
	decErr := requireShapeError(t, err)
	assert.Equal(t, "simplified_artist", decErr.Type)
	assert.Equal(t, "name", decErr.Field)
}

func TestDecodeAlbum(t *testing.T) {
	album, err := DecodeAlbum(loadFixture(t, "album.json"))
	require.NoError(t, err)

	assert.Equal(t, "album", album.AlbumType)
	assert.Equal(t, "Global Warming", album.Name)
	assert.Equal(t, "2012-11-16", album.ReleaseDate)
	assert.Equal(t, 2, album.TotalTracks)
	assert.Equal(t, 62, album.Popularity)
	require.NotNil(t, album.Restrictions)
	assert.Equal(t, "market", album.Restrictions.Reason)
	require.Len(t, album.Artists, 1)
	assert.Equal(t, "Pitbull", album.Artists[0].Name)

	assert.Equal(t, 50, album.Tracks.Limit)
	assert.Equal(t, 2, album.Tracks.Total)
	assert.Nil(t, album.Tracks.Next)
	require.Len(t, album.Tracks.Items, 2)
	assert.Nil(t, album.Tracks.Items[0].Restrictions)
	assert.Equal(t, 243160, album.Tracks.Items[1].DurationMS, "fractional numbers truncate")
	require.NotNil(t, album.Tracks.Items[1].Restrictions)
	assert.Equal(t, "explicit", album.Tracks.Items[1].Restrictions.Reason)
	assert.Len(t, album.Tracks.Items[1].Artists, 2)
}

func TestDecodeAlbumMissingReleaseDate(t *testing.T) {
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(loadFixture(t, "album.json"), &fields))
	delete(fields, "release_date")
	raw, err := json.Marshal(fields)
	require.NoError(t, err)

	album, err := DecodeAlbum(raw)
	decErr := requireShapeError(t, err)
	assert.Equal(t, "release_date", decErr.Field)
	assert.Empty(t, album.ID, "no partial record on failure")
}

func TestDecodeAlbumRestrictionsWrongKind(t *testing.T) {
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(loadFixture(t, "album.json"), &fields))
	fields["restrictions"] = json.RawMessage(`"market"`)
	raw, err := json.Marshal(fields)
	require.NoError(t, err)

	album, err := DecodeAlbum(raw)
	require.NoError(t, err)
	assert.Nil(t, album.Restrictions)
}

func TestDecodeTrack(t *testing.T) {
	track, err := DecodeTrack(loadFixture(t, "track.json"))
	require.NoError(t, err)

	assert.Equal(t, "11dFghVXANMlKmJXsNCbNl", track.ID)
	assert.Equal(t, 207959, track.DurationMS)
	assert.Equal(t, 63, track.Popularity)
	assert.Equal(t, "single", track.Album.AlbumType)
	assert.Nil(t, track.Album.Restrictions)
	assert.Nil(t, track.Restrictions)
	assert.Equal(t, "spotify:track:11dFghVXANMlKmJXsNCbNl", track.URI())
}

func TestDecodeTrackRejects(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"negative duration", "duration_ms", `-1`},
		{"duration as string", "duration_ms", `"207959"`},
		{"id as number", "id", `12`},
		{"album as array", "album", `[]`},
		{"artists as object", "artists", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fields map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(loadFixture(t, "track.json"), &fields))
			fields[tt.field] = json.RawMessage(tt.value)
			raw, err := json.Marshal(fields)
			require.NoError(t, err)

			_, err = DecodeTrack(raw)
			requireShapeError(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestDecodeNotAnObject(t *testing.T) {
	for _, raw := range []string{`[]`, `"x"`, `null`, `3`, ``} {
		_, err := DecodeUser(json.RawMessage(raw))
		decErr := requireShapeError(t, err)
		assert.Equal(t, "user", decErr.Type)
		assert.Empty(t, decErr.Field)
	}
}

func TestDecodeUser(t *testing.T) {
	user, err := DecodeUser(loadFixture(t, "user.json"))
	require.NoError(t, err)
	assert.Equal(t, "alice", user.ID)
	assert.Equal(t, "Alice", user.Name())
	assert.Equal(t, 42, user.Followers.Total)
}

func TestDecodeUserDisplayName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"absent", `{"followers":{"total":1},"id":"u"}`},
		{"null", `{"display_name":null,"followers":{"total":1},"id":"u"}`},
		{"wrong kind", `{"display_name":5,"followers":{"total":1},"id":"u"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := DecodeUser(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Nil(t, user.DisplayName)
			assert.Equal(t, "", user.Name())
		})
	}
}

func TestDecodeUserMissingFollowers(t *testing.T) {
	_, err := DecodeUser(json.RawMessage(`{"display_name":"A","id":"u"}`))
	decErr := requireShapeError(t, err)
	assert.Equal(t, "followers", decErr.Field)
}

func TestDecodeLargeCounts(t *testing.T) {
	user, err := DecodeUser(json.RawMessage(`{"display_name":"A","followers":{"total":3000000000},"id":"u"}`))
	require.NoError(t, err)
	assert.Equal(t, 3_000_000_000, user.Followers.Total)

	_, err = DecodeUser(json.RawMessage(`{"display_name":"A","followers":{"total":1e300},"id":"u"}`))
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestDecodePlaylist(t *testing.T) {
	playlist, err := DecodePlaylist(loadFixture(t, "playlist.json"))
	require.NoError(t, err)

	assert.Equal(t, "Road Trip", playlist.Name)
	require.NotNil(t, playlist.Description)
	assert.Equal(t, "Road trip songs", *playlist.Description)
	assert.True(t, playlist.Public)
	assert.Equal(t, "Alice", playlist.Owner.Name())
	assert.Equal(t, 105, playlist.Tracks.Total)
	require.NotNil(t, playlist.Tracks.Next)
	assert.True(t, playlist.Tracks.HasNext())
	require.Len(t, playlist.Tracks.Items, 1)
	assert.Equal(t, "bob", playlist.Tracks.Items[0].AddedBy.ID)
	assert.Equal(t, "Cut To The Feeling", playlist.Tracks.Items[0].Track.Name)
}

func TestDecodePlaylistPublic(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{`true`, true},
		{`false`, false},
		{`null`, false},
		{`1`, false},
		{`"true"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var fields map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(loadFixture(t, "playlist.json"), &fields))
			fields["public"] = json.RawMessage(tt.value)
			raw, err := json.Marshal(fields)
			require.NoError(t, err)

			playlist, err := DecodePlaylist(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, playlist.Public)
		})
	}
}

func TestDecodePlaylistPublicMissing(t *testing.T) {
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(loadFixture(t, "playlist.json"), &fields))
	delete(fields, "public")
	raw, err := json.Marshal(fields)
	require.NoError(t, err)

	_, err = DecodePlaylist(raw)
	decErr := requireShapeError(t, err)
	assert.Equal(t, "public", decErr.Field)
}

func TestDecodeSimplifiedPlaylist(t *testing.T) {
	raw := `{
		"href": "h", "id": "p1", "name": "Mix", "snapshot_id": "s1",
		"owner": {"href": "u", "id": "bob"},
		"public": false,
		"tracks": {"href": "t", "total": 12}
	}`
	playlist, err := DecodeSimplifiedPlaylist(json.RawMessage(raw))
	require.NoError(t, err)
	assert.Nil(t, playlist.Description)
	assert.Nil(t, playlist.Owner.DisplayName)
	assert.Equal(t, 12, playlist.Tracks.Total)
}

func TestDecodeSavedAlbum(t *testing.T) {
	raw := append(append([]byte(`{"added_at":"2020-01-01T00:00:00Z","album":`), loadFixture(t, "album.json")...), '}')
	saved, err := DecodeSavedAlbum(raw)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01T00:00:00Z", saved.AddedAt)
	assert.Equal(t, "Global Warming", saved.Album.Name)
}

func TestDecodeSavedTrackMissingTrack(t *testing.T) {
	_, err := DecodeSavedTrack(json.RawMessage(`{"added_at":"2020-01-01T00:00:00Z"}`))
	decErr := requireShapeError(t, err)
	assert.Equal(t, "track", decErr.Field)
}

func TestDecodeSearch(t *testing.T) {
	search, err := DecodeSearch(loadFixture(t, "search.json"))
	require.NoError(t, err)

	assert.Nil(t, search.Tracks)
	assert.Nil(t, search.Albums)
	require.NotNil(t, search.Artists)
	require.Len(t, search.Artists.Items, 1)
	assert.Equal(t, "Band of Horses", search.Artists.Items[0].Name)
	require.NotNil(t, search.Playlists)
	assert.Equal(t, 120, search.Playlists.Total)
	assert.False(t, search.Playlists.Items[0].Public)
	assert.Nil(t, search.Playlists.Items[0].Description)
}

func TestDecodeSearchEmpty(t *testing.T) {
	search, err := DecodeSearch(json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Nil(t, search.Tracks)
	assert.Nil(t, search.Artists)
	assert.Nil(t, search.Albums)
	assert.Nil(t, search.Playlists)
}
