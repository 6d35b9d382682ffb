package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/yhkl-dev/cmusic/domain"
)

// SearchType is a catalog category a search can return
type SearchType string

const (
	SearchAlbum    SearchType = "album"
	SearchArtist   SearchType = "artist"
	SearchPlaylist SearchType = "playlist"
	SearchTrack    SearchType = "track"
)

// AllSearchTypes is used when a query names no category
var AllSearchTypes = []SearchType{SearchAlbum, SearchArtist, SearchPlaylist, SearchTrack}

// ParseSearchType accepts the singular category names
func ParseSearchType(s string) (SearchType, error) {
	switch t := SearchType(strings.ToLower(strings.TrimSpace(s))); t {
	case SearchAlbum, SearchArtist, SearchPlaylist, SearchTrack:
		return t, nil
	}
	return "", fmt.Errorf("unknown search type %q", s)
}

// SearchQuery is free text narrowed by field filters
type SearchQuery struct {
	Text     string
	Album    string
	Artist   string
	Playlist string
	Track    string
	Year     string // a year or a range such as 1990-1999
	Genre    string
	New      bool // only albums released in the past two weeks
	Hipster  bool // only albums with the lowest popularity
	Types    []SearchType
}

// String renders the q parameter
func (q SearchQuery) String() string {
	parts := make([]string, 0, 9)
	if text := strings.TrimSpace(q.Text); text != "" {
		parts = append(parts, text)
	}
	filters := []struct{ key, value string }{
		{"album", q.Album},
		{"artist", q.Artist},
		{"playlist", q.Playlist},
		{"track", q.Track},
		{"year", q.Year},
		{"genre", q.Genre},
	}
	for _, f := range filters {
		if v := strings.TrimSpace(f.value); v != "" {
			parts = append(parts, f.key+":"+v)
		}
	}
	if q.New {
		parts = append(parts, "tag:new")
	}
	if q.Hipster {
		parts = append(parts, "tag:hipster")
	}
	return strings.Join(parts, " ")
}

func (q SearchQuery) types() string {
	types := q.Types
	if len(types) == 0 {
		types = AllSearchTypes
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ",")
}

// Search returns one page per requested category at offset
func (c *Client) Search(ctx context.Context, query SearchQuery, offset int) (*domain.Search, error) {
	q := url.Values{
		"q":      {query.String()},
		"type":   {query.types()},
		"limit":  {strconv.Itoa(c.pageLimit)},
		"offset": {strconv.Itoa(offset)},
	}
	return getOne(ctx, c, c.endpoint("/search", q), DecodeSearch)
}
