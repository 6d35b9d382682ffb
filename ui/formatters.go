package ui

import (
	"fmt"
	"strings"

	"github.com/yhkl-dev/cmusic/domain"
)

const (
	thousand = 1_000
	million  = 1_000_000
	billion  = 1_000_000_000
)

// FormatDuration converts milliseconds to M:SS, minutes padded to two columns
func FormatDuration(ms int) string {
	seconds := ms / 1000
	return fmt.Sprintf("%2d:%02d", seconds/60, seconds%60)
}

// FormatFollowers renders a follower count with a k, M or Bn suffix
func FormatFollowers(f domain.Followers) string {
	switch total := f.Total; {
	case total >= billion:
		return fmt.Sprintf("Followers: %.2fBn", float64(total)/billion)
	case total >= million:
		return fmt.Sprintf("Followers: %.2fM", float64(total)/million)
	case total >= thousand:
		return fmt.Sprintf("Followers: %.2fk", float64(total)/thousand)
	default:
		return fmt.Sprintf("Followers: %d", total)
	}
}

// FormatArtists lists artist names after "Artist:" or "Artists:", "" for none
func FormatArtists(artists []domain.SimplifiedArtist) string {
	if len(artists) == 0 {
		return ""
	}
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	label := "Artist:"
	if len(artists) > 1 {
		label = "Artists:"
	}
	return label + " " + strings.Join(names, ", ")
}

// lines joins the non-empty parts with newlines
func lines(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

func AlbumEssentials(a domain.SimplifiedAlbum) string {
	return fmt.Sprintf("%s (%d tracks)", a.Name, a.TotalTracks)
}

func albumDetails(name, releaseDate string, artists []domain.SimplifiedArtist, totalTracks int) string {
	return lines(
		name,
		"Release date: "+releaseDate,
		FormatArtists(artists),
		fmt.Sprintf("Number of tracks: %d", totalTracks),
	)
}

func AlbumDetails(a domain.Album) string {
	return albumDetails(a.Name, a.ReleaseDate, a.Artists, a.TotalTracks)
}

func SimplifiedAlbumDetails(a domain.SimplifiedAlbum) string {
	return albumDetails(a.Name, a.ReleaseDate, a.Artists, a.TotalTracks)
}

// ArtistDetails renders name, genres and followers
func ArtistDetails(a domain.Artist) string {
	genres := ""
	if len(a.Genres) > 0 {
		genres = "Music genres: " + strings.Join(a.Genres, ", ")
	}
	return lines(a.Name, genres, FormatFollowers(a.Followers))
}

func PlaylistEssentials(p domain.SimplifiedPlaylist) string {
	return fmt.Sprintf("%s (%d tracks)", p.Name, p.Tracks.Total)
}

func playlistDetails(name string, description *string, owner domain.SimplifiedUser, total int) string {
	desc := ""
	if description != nil {
		desc = *description
	}
	ownedBy := ""
	if owner.DisplayName != nil {
		ownedBy = "Owned by " + *owner.DisplayName
	}
	return lines(name, desc, ownedBy, fmt.Sprintf("Number of tracks: %d", total))
}

func PlaylistDetails(p domain.Playlist) string {
	return playlistDetails(p.Name, p.Description, p.Owner, p.Tracks.Total)
}

func SimplifiedPlaylistDetails(p domain.SimplifiedPlaylist) string {
	return playlistDetails(p.Name, p.Description, p.Owner, p.Tracks.Total)
}

// TrackEssentials renders the name followed by the duration
func TrackEssentials(name string, durationMS int) string {
	return fmt.Sprintf("%s  %s", name, strings.TrimSpace(FormatDuration(durationMS)))
}

func trackDetails(name string, durationMS int, artists []domain.SimplifiedArtist) string {
	return lines(name, "Duration: "+FormatDuration(durationMS), FormatArtists(artists))
}

func TrackDetails(t domain.Track) string {
	return lines(trackDetails(t.Name, t.DurationMS, t.Artists), "Album: "+t.Album.Name)
}

func SimplifiedTrackDetails(t domain.SimplifiedTrack) string {
	return trackDetails(t.Name, t.DurationMS, t.Artists)
}

func UserDetails(u domain.User) string {
	return lines(u.Name(), FormatFollowers(u.Followers))
}

// RestrictionNotice is shown before opening a restricted album or track
func RestrictionNotice(kind string, r domain.Restrictions) string {
	return fmt.Sprintf("The %s is restricted for the following reason: %s\n"+
		"Some options might be unavailable due to the restriction.\nContinue?", kind, r.Reason)
}

// FormatPageInfo renders the position of a page within its collection
func FormatPageInfo(offset, count, total int) string {
	if total == 0 {
		return "no items"
	}
	return fmt.Sprintf("%d-%d of %d", offset+1, offset+count, total)
}
