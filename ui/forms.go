package ui

import (
	"context"
	"strings"

	"github.com/rivo/tview"

	"github.com/yhkl-dev/cmusic/domain"
)

// showPlaylistForm edits playlist, or creates a new playlist when it is nil
func (a *App) showPlaylistForm(playlist *domain.Playlist) {
	name, description := "", ""
	if playlist != nil {
		name = playlist.Name
		if playlist.Description != nil {
			description = *playlist.Description
		}
	}

	form := tview.NewForm().
		AddInputField("Name", name, 0, nil, func(v string) { name = v }).
		AddInputField("Description", description, 0, nil, func(v string) { description = v })

	submit := func() {
		name = strings.TrimSpace(name)
		if name == "" {
			a.setStatus("[yellow]A playlist needs a name")
			return
		}
		if playlist == nil {
			a.createPlaylist(name, strings.TrimSpace(description))
			return
		}
		a.editPlaylist(playlist, name, optional(strings.TrimSpace(description)))
	}

	title := "Create playlist"
	if playlist != nil {
		title = "Edit " + playlist.Name
	}
	form.AddButton("Save", submit).AddButton("Cancel", a.back)
	a.push(a.newFormScreen(title, form))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (a *App) createPlaylist(name, description string) {
	run(a, "Creating playlist", func(ctx context.Context) (*domain.Playlist, error) {
		return a.session.CreatePlaylist(ctx, name, description)
	}, func(p *domain.Playlist) {
		a.replace(a.playlistScreen(p))
		a.notify("Playlist created")
	})
}

func (a *App) editPlaylist(playlist *domain.Playlist, name string, description *string) {
	do(a, "Updating playlist", func(ctx context.Context) error {
		return a.session.EditPlaylist(ctx, playlist, name, description)
	}, func() {
		a.back()
		a.notify("Playlist updated")
	})
}
