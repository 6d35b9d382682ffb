package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/yhkl-dev/cmusic/domain"
	"github.com/yhkl-dev/cmusic/spotify"
)

// searchFields is the state of the search form
type searchFields struct {
	text, album, artist, playlist, track, year, genre string

	onlyNew, hipster bool
	types            map[spotify.SearchType]bool
}

func newSearchFields() *searchFields {
	types := make(map[spotify.SearchType]bool, len(spotify.AllSearchTypes))
	for _, t := range spotify.AllSearchTypes {
		types[t] = true
	}
	return &searchFields{types: types}
}

// query builds the request; ok is false when nothing would be searched for
func (f *searchFields) query() (q spotify.SearchQuery, ok bool) {
	q = spotify.SearchQuery{
		Text:     f.text,
		Album:    f.album,
		Artist:   f.artist,
		Playlist: f.playlist,
		Track:    f.track,
		Year:     f.year,
		Genre:    f.genre,
		New:      f.onlyNew,
		Hipster:  f.hipster,
	}
	for _, t := range spotify.AllSearchTypes {
		if f.types[t] {
			q.Types = append(q.Types, t)
		}
	}
	return q, q.String() != "" && len(q.Types) > 0
}

// showSearch opens the search form
func (a *App) showSearch() {
	if _, ok := a.current().(*formScreen); ok {
		return
	}
	f := newSearchFields()
	form := tview.NewForm()

	text := func(label string, dst *string) {
		form.AddInputField(label, "", 0, nil, func(v string) { *dst = strings.TrimSpace(v) })
	}
	text("Search", &f.text)
	text("Album", &f.album)
	text("Artist", &f.artist)
	text("Playlist", &f.playlist)
	text("Track", &f.track)
	text("Year", &f.year)
	text("Genre", &f.genre)
	form.AddCheckbox("New releases only", false, func(v bool) { f.onlyNew = v })
	form.AddCheckbox("Hipster albums only", false, func(v bool) { f.hipster = v })
	for _, t := range spotify.AllSearchTypes {
		t := t // per-iteration copy; go directive is below 1.22
		form.AddCheckbox("Include "+string(t)+"s", true, func(v bool) { f.types[t] = v })
	}

	form.AddButton("Search", func() {
		q, ok := f.query()
		if !ok {
			a.setStatus("[yellow]Enter a search term and pick at least one type")
			return
		}
		run(a, "Searching", func(ctx context.Context) (*domain.Search, error) {
			return a.library.Search(ctx, q, 0)
		}, func(result *domain.Search) {
			a.replace(a.searchResults(q, result))
		})
	})
	form.AddButton("Cancel", a.back)

	a.push(a.newFormScreen("Search", form))
}

// searchResults lists one entry per returned category; each opens a paged listing
func (a *App) searchResults(q spotify.SearchQuery, result *domain.Search) *listScreen {
	var categories []entry
	if result.Tracks != nil {
		categories = append(categories, a.searchCategory(q, spotify.SearchTrack, result.Tracks.Total))
	}
	if result.Artists != nil {
		categories = append(categories, a.searchCategory(q, spotify.SearchArtist, result.Artists.Total))
	}
	if result.Albums != nil {
		categories = append(categories, a.searchCategory(q, spotify.SearchAlbum, result.Albums.Total))
	}
	if result.Playlists != nil {
		categories = append(categories, a.searchCategory(q, spotify.SearchPlaylist, result.Playlists.Total))
	}
	name := "Search: " + q.String()
	return a.newListScreen(name, "Nothing found", local(categories, len(categories), func(e entry) entry { return e }))
}

func (a *App) searchCategory(q spotify.SearchQuery, t spotify.SearchType, total int) entry {
	label := fmt.Sprintf("%ss (%d)", strings.ToUpper(string(t[:1]))+string(t[1:]), total)
	q.Types = []spotify.SearchType{t}
	return entry{
		label: label,
		open: func() {
			a.push(a.newListScreen(label, "No "+string(t)+" found", a.searchLoader(q, t)))
		},
	}
}

// searchLoader pages through one category of a search
func (a *App) searchLoader(q spotify.SearchQuery, t spotify.SearchType) pageLoader {
	return func(ctx context.Context, offset int) ([]entry, pageInfo, error) {
		result, err := a.library.Search(ctx, q, offset)
		if err != nil {
			return nil, pageInfo{}, err
		}
		var (
			entries []entry
			info    pageInfo
		)
		switch {
		case t == spotify.SearchTrack && result.Tracks != nil:
			entries, info = entriesOf(result.Tracks, offset, a.trackEntry)
		case t == spotify.SearchArtist && result.Artists != nil:
			entries, info = entriesOf(result.Artists, offset, a.artistEntry)
		case t == spotify.SearchAlbum && result.Albums != nil:
			entries, info = entriesOf(result.Albums, offset, a.albumEntry)
		case t == spotify.SearchPlaylist && result.Playlists != nil:
			entries, info = entriesOf(result.Playlists, offset, a.playlistEntry)
		default:
			info = pageInfo{offset: offset}
		}
		return entries, info, nil
	}
}
