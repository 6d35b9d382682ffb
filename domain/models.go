package domain

// Followers holds the follower count of an artist or user
type Followers struct {
	Total int
}

// Restrictions explains why a catalog item is restricted
type Restrictions struct {
	Reason string
}

// SimplifiedArtist is the artist shape embedded in albums and tracks
type SimplifiedArtist struct {
	Href string
	ID   string
	Name string
}

// Artist is the full artist record
type Artist struct {
	ID         string
	Name       string
	Popularity int // 0-100
	Followers  Followers
	Genres     []string
}

// SimplifiedAlbum is the album shape embedded in tracks and listings
type SimplifiedAlbum struct {
	AlbumType    string
	Href         string
	ID           string
	Name         string
	ReleaseDate  string
	TotalTracks  int
	Restrictions *Restrictions
	Artists      []SimplifiedArtist
}

// Album is the full album record, including the first page of its tracks
type Album struct {
	AlbumType    string
	ID           string
	Name         string
	ReleaseDate  string
	TotalTracks  int
	Popularity   int
	Restrictions *Restrictions
	Artists      []SimplifiedArtist
	Tracks       Page[SimplifiedTrack]
}

// SavedAlbum is an album in the user's library
type SavedAlbum struct {
	AddedAt string
	Album   Album
}

// SimplifiedTrack is the track shape listed inside an album
type SimplifiedTrack struct {
	Href         string
	ID           string
	Name         string
	DurationMS   int
	Restrictions *Restrictions
	Artists      []SimplifiedArtist
}

// Track is the full track record
type Track struct {
	ID           string
	Name         string
	DurationMS   int
	Popularity   int
	Restrictions *Restrictions
	Album        SimplifiedAlbum
	Artists      []SimplifiedArtist
}

// URI returns the catalog URI used by playlist mutations
func (t Track) URI() string {
	return "spotify:track:" + t.ID
}

// SavedTrack is a track in the user's library
type SavedTrack struct {
	AddedAt string
	Track   Track
}

// SimplifiedUser is the user shape embedded in playlists
type SimplifiedUser struct {
	Href        string
	ID          string
	DisplayName *string
}

// Name returns the display name, or "" when the user has none
func (u SimplifiedUser) Name() string {
	if u.DisplayName == nil {
		return ""
	}
	return *u.DisplayName
}

// User is the authenticated user's profile
type User struct {
	ID          string
	DisplayName *string
	Followers   Followers
}

// Name returns the display name, or "" when the user has none
func (u User) Name() string {
	if u.DisplayName == nil {
		return ""
	}
	return *u.DisplayName
}

// TrackSummary is the track reference carried by a simplified playlist
type TrackSummary struct {
	Href  string
	Total int
}

// SimplifiedPlaylist is the playlist shape returned by listings
type SimplifiedPlaylist struct {
	Description *string
	Href        string
	ID          string
	Name        string
	SnapshotID  string
	Owner       SimplifiedUser
	Public      bool
	Tracks      TrackSummary
}

// AddedBy identifies who added a track to a playlist
type AddedBy struct {
	Href string
	ID   string
}

// PlaylistTrack is one entry of a playlist
type PlaylistTrack struct {
	AddedAt string
	AddedBy AddedBy
	Track   Track
}

// Playlist is the full playlist record, including the first page of its entries
type Playlist struct {
	Description *string
	ID          string
	Name        string
	SnapshotID  string
	Owner       SimplifiedUser
	Public      bool
	Tracks      Page[PlaylistTrack]
}

// Rename replaces the user-editable details of the playlist
func (p *Playlist) Rename(name string, description *string) {
	p.Name = name
	p.Description = description
}

// SetSnapshot records the snapshot returned by a mutating call
func (p *Playlist) SetSnapshot(snapshotID string) {
	if snapshotID != "" {
		p.SnapshotID = snapshotID
	}
}

// Summary returns the listing view of the playlist
func (p Playlist) Summary() SimplifiedPlaylist {
	return SimplifiedPlaylist{
		Description: p.Description,
		Href:        p.Tracks.Href,
		ID:          p.ID,
		Name:        p.Name,
		SnapshotID:  p.SnapshotID,
		Owner:       p.Owner,
		Public:      p.Public,
		Tracks: TrackSummary{
			Href:  p.Tracks.Href,
			Total: p.Tracks.Total,
		},
	}
}

// Search holds one page per requested category; categories not requested are nil
type Search struct {
	Tracks    *Page[Track]
	Artists   *Page[Artist]
	Albums    *Page[SimplifiedAlbum]
	Playlists *Page[SimplifiedPlaylist]
}
