package spotify

import (
	"encoding/json"

	"github.com/yhkl-dev/cmusic/domain"
)

func decodeFollowers(raw json.RawMessage) (domain.Followers, error) {
	o, err := newObject("followers", raw)
	if err != nil {
		return domain.Followers{}, err
	}
	total, err := o.count("total")
	if err != nil {
		return domain.Followers{}, err
	}
	return domain.Followers{Total: total}, nil
}

func decodeRestrictions(raw json.RawMessage) (domain.Restrictions, error) {
	o, err := newObject("restrictions", raw)
	if err != nil {
		return domain.Restrictions{}, err
	}
	reason, err := o.str("reason")
	if err != nil {
		return domain.Restrictions{}, err
	}
	return domain.Restrictions{Reason: reason}, nil
}

func decodeArtists(raw json.RawMessage) ([]domain.SimplifiedArtist, error) {
	return DecodeArray(raw, DecodeSimplifiedArtist)
}

func decodeAddedBy(raw json.RawMessage) (domain.AddedBy, error) {
	o, err := newObject("added_by", raw)
	if err != nil {
		return domain.AddedBy{}, err
	}
	var a domain.AddedBy
	if a.Href, err = o.str("href"); err != nil {
		return domain.AddedBy{}, err
	}
	if a.ID, err = o.str("id"); err != nil {
		return domain.AddedBy{}, err
	}
	return a, nil
}

func decodeTrackSummary(raw json.RawMessage) (domain.TrackSummary, error) {
	o, err := newObject("tracks", raw)
	if err != nil {
		return domain.TrackSummary{}, err
	}
	var t domain.TrackSummary
	if t.Href, err = o.str("href"); err != nil {
		return domain.TrackSummary{}, err
	}
	if t.Total, err = o.count("total"); err != nil {
		return domain.TrackSummary{}, err
	}
	return t, nil
}

// DecodeSimplifiedArtist decodes the artist shape embedded in albums and tracks
func DecodeSimplifiedArtist(raw json.RawMessage) (domain.SimplifiedArtist, error) {
	o, err := newObject("simplified_artist", raw)
	if err != nil {
		return domain.SimplifiedArtist{}, err
	}
	var a domain.SimplifiedArtist
	if a.Href, err = o.str("href"); err != nil {
		return domain.SimplifiedArtist{}, err
	}
	if a.ID, err = o.str("id"); err != nil {
		return domain.SimplifiedArtist{}, err
	}
	if a.Name, err = o.str("name"); err != nil {
		return domain.SimplifiedArtist{}, err
	}
	return a, nil
}

// DecodeArtist decodes a full artist record
func DecodeArtist(raw json.RawMessage) (domain.Artist, error) {
	o, err := newObject("artist", raw)
	if err != nil {
		return domain.Artist{}, err
	}
	var a domain.Artist
	if a.Followers, err = field(o, "followers", decodeFollowers); err != nil {
		return domain.Artist{}, err
	}
	if a.Genres, err = field(o, "genres", func(raw json.RawMessage) ([]string, error) {
		return DecodeArray(raw, decodeString)
	}); err != nil {
		return domain.Artist{}, err
	}
	if a.ID, err = o.str("id"); err != nil {
		return domain.Artist{}, err
	}
	if a.Name, err = o.str("name"); err != nil {
		return domain.Artist{}, err
	}
	if a.Popularity, err = o.count("popularity"); err != nil {
		return domain.Artist{}, err
	}
	return a, nil
}

// DecodeSimplifiedAlbum decodes the album shape embedded in tracks and listings
func DecodeSimplifiedAlbum(raw json.RawMessage) (domain.SimplifiedAlbum, error) {
	o, err := newObject("simplified_album", raw)
	if err != nil {
		return domain.SimplifiedAlbum{}, err
	}
	var a domain.SimplifiedAlbum
	if a.AlbumType, err = o.str("album_type"); err != nil {
		return domain.SimplifiedAlbum{}, err
	}
	if a.TotalTracks, err = o.count("total_tracks"); err != nil {
		return domain.SimplifiedAlbum{}, err
	}
	if a.Href, err = o.str("href"); err != nil {
		return domain.SimplifiedAlbum{}, err
	}
	if a.ID, err = o.str("id"); err != nil {
		return domain.SimplifiedAlbum{}, err
	}
	if a.Name, err = o.str("name"); err != nil {
		return domain.SimplifiedAlbum{}, err
	}
	if a.ReleaseDate, err = o.str("release_date"); err != nil {
		return domain.SimplifiedAlbum{}, err
	}
	if a.Restrictions, err = optionalField(o, "restrictions", decodeRestrictions); err != nil {
		return domain.SimplifiedAlbum{}, err
	}
	if a.Artists, err = field(o, "artists", decodeArtists); err != nil {
		return domain.SimplifiedAlbum{}, err
	}
	return a, nil
}

// DecodeAlbum decodes a full album record together with the first page of its tracks
func DecodeAlbum(raw json.RawMessage) (domain.Album, error) {
	o, err := newObject("album", raw)
	if err != nil {
		return domain.Album{}, err
	}
	var a domain.Album
	if a.AlbumType, err = o.str("album_type"); err != nil {
		return domain.Album{}, err
	}
	if a.TotalTracks, err = o.count("total_tracks"); err != nil {
		return domain.Album{}, err
	}
	if a.ID, err = o.str("id"); err != nil {
		return domain.Album{}, err
	}
	if a.Name, err = o.str("name"); err != nil {
		return domain.Album{}, err
	}
	if a.ReleaseDate, err = o.str("release_date"); err != nil {
		return domain.Album{}, err
	}
	if a.Restrictions, err = optionalField(o, "restrictions", decodeRestrictions); err != nil {
		return domain.Album{}, err
	}
	if a.Artists, err = field(o, "artists", decodeArtists); err != nil {
		return domain.Album{}, err
	}
	tracks, err := field(o, "tracks", pageOf(DecodeSimplifiedTrack))
	if err != nil {
		return domain.Album{}, err
	}
	a.Tracks = *tracks
	if a.Popularity, err = o.count("popularity"); err != nil {
		return domain.Album{}, err
	}
	return a, nil
}

// DecodeSavedAlbum decodes an album entry of the user's library
func DecodeSavedAlbum(raw json.RawMessage) (domain.SavedAlbum, error) {
	o, err := newObject("saved_album", raw)
	if err != nil {
		return domain.SavedAlbum{}, err
	}
	var s domain.SavedAlbum
	if s.AddedAt, err = o.str("added_at"); err != nil {
		return domain.SavedAlbum{}, err
	}
	if s.Album, err = field(o, "album", DecodeAlbum); err != nil {
		return domain.SavedAlbum{}, err
	}
	return s, nil
}

// DecodeSimplifiedTrack decodes the track shape listed inside an album
func DecodeSimplifiedTrack(raw json.RawMessage) (domain.SimplifiedTrack, error) {
	o, err := newObject("simplified_track", raw)
	if err != nil {
		return domain.SimplifiedTrack{}, err
	}
	var t domain.SimplifiedTrack
	if t.Artists, err = field(o, "artists", decodeArtists); err != nil {
		return domain.SimplifiedTrack{}, err
	}
	if t.DurationMS, err = o.count("duration_ms"); err != nil {
		return domain.SimplifiedTrack{}, err
	}
	if t.Href, err = o.str("href"); err != nil {
		return domain.SimplifiedTrack{}, err
	}
	if t.ID, err = o.str("id"); err != nil {
		return domain.SimplifiedTrack{}, err
	}
	if t.Name, err = o.str("name"); err != nil {
		return domain.SimplifiedTrack{}, err
	}
	if t.Restrictions, err = optionalField(o, "restrictions", decodeRestrictions); err != nil {
		return domain.SimplifiedTrack{}, err
	}
	return t, nil
}

// DecodeTrack decodes a full track record
func DecodeTrack(raw json.RawMessage) (domain.Track, error) {
	o, err := newObject("track", raw)
	if err != nil {
		return domain.Track{}, err
	}
	var t domain.Track
	if t.Album, err = field(o, "album", DecodeSimplifiedAlbum); err != nil {
		return domain.Track{}, err
	}
	if t.Artists, err = field(o, "artists", decodeArtists); err != nil {
		return domain.Track{}, err
	}
	if t.DurationMS, err = o.count("duration_ms"); err != nil {
		return domain.Track{}, err
	}
	if t.ID, err = o.str("id"); err != nil {
		return domain.Track{}, err
	}
	if t.Name, err = o.str("name"); err != nil {
		return domain.Track{}, err
	}
	if t.Popularity, err = o.count("popularity"); err != nil {
		return domain.Track{}, err
	}
	if t.Restrictions, err = optionalField(o, "restrictions", decodeRestrictions); err != nil {
		return domain.Track{}, err
	}
	return t, nil
}

// DecodeSavedTrack decodes a track entry of the user's library
func DecodeSavedTrack(raw json.RawMessage) (domain.SavedTrack, error) {
	o, err := newObject("saved_track", raw)
	if err != nil {
		return domain.SavedTrack{}, err
	}
	var s domain.SavedTrack
	if s.AddedAt, err = o.str("added_at"); err != nil {
		return domain.SavedTrack{}, err
	}
	if s.Track, err = field(o, "track", DecodeTrack); err != nil {
		return domain.SavedTrack{}, err
	}
	return s, nil
}

// DecodeSimplifiedUser decodes the user shape embedded in playlists
func DecodeSimplifiedUser(raw json.RawMessage) (domain.SimplifiedUser, error) {
	o, err := newObject("simplified_user", raw)
	if err != nil {
		return domain.SimplifiedUser{}, err
	}
	var u domain.SimplifiedUser
	if u.Href, err = o.str("href"); err != nil {
		return domain.SimplifiedUser{}, err
	}
	if u.ID, err = o.str("id"); err != nil {
		return domain.SimplifiedUser{}, err
	}
	u.DisplayName = o.optionalString("display_name")
	return u, nil
}

// DecodeUser decodes the authenticated user's profile
func DecodeUser(raw json.RawMessage) (domain.User, error) {
	o, err := newObject("user", raw)
	if err != nil {
		return domain.User{}, err
	}
	var u domain.User
	u.DisplayName = o.optionalString("display_name")
	if u.Followers, err = field(o, "followers", decodeFollowers); err != nil {
		return domain.User{}, err
	}
	if u.ID, err = o.str("id"); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// DecodePlaylistTrack decodes one entry of a playlist
func DecodePlaylistTrack(raw json.RawMessage) (domain.PlaylistTrack, error) {
	o, err := newObject("playlist_track", raw)
	if err != nil {
		return domain.PlaylistTrack{}, err
	}
	var t domain.PlaylistTrack
	if t.AddedAt, err = o.str("added_at"); err != nil {
		return domain.PlaylistTrack{}, err
	}
	if t.AddedBy, err = field(o, "added_by", decodeAddedBy); err != nil {
		return domain.PlaylistTrack{}, err
	}
	if t.Track, err = field(o, "track", DecodeTrack); err != nil {
		return domain.PlaylistTrack{}, err
	}
	return t, nil
}

// DecodeSimplifiedPlaylist decodes the playlist shape returned by listings
func DecodeSimplifiedPlaylist(raw json.RawMessage) (domain.SimplifiedPlaylist, error) {
	o, err := newObject("simplified_playlist", raw)
	if err != nil {
		return domain.SimplifiedPlaylist{}, err
	}
	var p domain.SimplifiedPlaylist
	p.Description = o.optionalString("description")
	if p.Href, err = o.str("href"); err != nil {
		return domain.SimplifiedPlaylist{}, err
	}
	if p.ID, err = o.str("id"); err != nil {
		return domain.SimplifiedPlaylist{}, err
	}
	if p.Name, err = o.str("name"); err != nil {
		return domain.SimplifiedPlaylist{}, err
	}
	if p.Owner, err = field(o, "owner", DecodeSimplifiedUser); err != nil {
		return domain.SimplifiedPlaylist{}, err
	}
	if p.Public, err = o.truthy("public"); err != nil {
		return domain.SimplifiedPlaylist{}, err
	}
	if p.SnapshotID, err = o.str("snapshot_id"); err != nil {
		return domain.SimplifiedPlaylist{}, err
	}
	if p.Tracks, err = field(o, "tracks", decodeTrackSummary); err != nil {
		return domain.SimplifiedPlaylist{}, err
	}
	return p, nil
}

// DecodePlaylist decodes a full playlist record together with the first page of its entries
func DecodePlaylist(raw json.RawMessage) (domain.Playlist, error) {
	o, err := newObject("playlist", raw)
	if err != nil {
		return domain.Playlist{}, err
	}
	var p domain.Playlist
	p.Description = o.optionalString("description")
	if p.ID, err = o.str("id"); err != nil {
		return domain.Playlist{}, err
	}
	if p.Name, err = o.str("name"); err != nil {
		return domain.Playlist{}, err
	}
	if p.Owner, err = field(o, "owner", DecodeSimplifiedUser); err != nil {
		return domain.Playlist{}, err
	}
	if p.Public, err = o.truthy("public"); err != nil {
		return domain.Playlist{}, err
	}
	if p.SnapshotID, err = o.str("snapshot_id"); err != nil {
		return domain.Playlist{}, err
	}
	tracks, err := field(o, "tracks", pageOf(DecodePlaylistTrack))
	if err != nil {
		return domain.Playlist{}, err
	}
	p.Tracks = *tracks
	return p, nil
}

// DecodeSearch decodes a search response. Only the categories that were
// requested appear in the response; the others stay nil.
func DecodeSearch(raw json.RawMessage) (domain.Search, error) {
	o, err := newObject("search", raw)
	if err != nil {
		return domain.Search{}, err
	}
	var s domain.Search
	if o.has("tracks", kindObject) {
		if s.Tracks, err = field(o, "tracks", pageOf(DecodeTrack)); err != nil {
			return domain.Search{}, err
		}
	}
	if o.has("artists", kindObject) {
		if s.Artists, err = field(o, "artists", pageOf(DecodeArtist)); err != nil {
			return domain.Search{}, err
		}
	}
	if o.has("albums", kindObject) {
		if s.Albums, err = field(o, "albums", pageOf(DecodeSimplifiedAlbum)); err != nil {
			return domain.Search{}, err
		}
	}
	if o.has("playlists", kindObject) {
		if s.Playlists, err = field(o, "playlists", pageOf(DecodeSimplifiedPlaylist)); err != nil {
			return domain.Search{}, err
		}
	}
	return s, nil
}
