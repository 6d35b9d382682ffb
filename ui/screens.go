package ui

import (
	"context"

	"github.com/yhkl-dev/cmusic/domain"
)

func (a *App) homeScreen() *listScreen {
	lib := a.library
	items := []entry{
		{label: "Saved albums", open: func() {
			a.push(a.newListScreen("Saved albums", "No saved album",
				aggregated(a.pageSize, lib.AllSavedAlbums, a.savedAlbumEntry)))
		}},
		{label: "Saved tracks", open: func() {
			a.push(a.newListScreen("Saved tracks", "No saved track",
				aggregated(a.pageSize, lib.AllSavedTracks, a.savedTrackEntry)))
		}},
		{label: "Owned playlists", open: func() {
			a.push(a.liveList("Owned playlists", "No owned playlist",
				fromSession(a.session.OwnedPlaylists, a.pageSize, a.playlistEntry)))
		}},
		{label: "Followed playlists", open: func() {
			a.push(a.liveList("Followed playlists", "No followed playlist",
				fromSession(a.session.FollowedPlaylists, a.pageSize, a.playlistEntry)))
		}},
		{label: "Followed artists", open: func() {
			a.push(a.liveList("Followed artists", "No followed artist",
				fromSession(a.session.FollowedArtists, a.pageSize, a.artistEntry)))
		}},
		{label: "Top artists", open: func() {
			a.push(a.newListScreen("Top artists", "No top artist",
				aggregated(a.pageSize, lib.AllTopArtists, a.artistEntry)))
		}},
		{label: "Top tracks", open: func() {
			a.push(a.newListScreen("Top tracks", "No top track",
				aggregated(a.pageSize, lib.AllTopTracks, a.trackEntry)))
		}},
		{label: "New releases", open: func() {
			a.push(a.newListScreen("New releases", "No new release",
				remote(lib.NewReleases, a.albumEntry)))
		}},
		{label: "Search", detail: "/", open: a.showSearch},
		{label: "Create playlist", open: func() { a.showPlaylistForm(nil) }},
		{label: "Profile", open: func() { a.push(a.profileScreen()) }},
		{label: "Help", detail: "?", open: a.showHelp},
		{label: "Quit", detail: "q", open: a.Stop},
	}
	return a.newListScreen("Home", "", local(items, len(items), func(e entry) entry { return e }))
}

func (a *App) liveList(name, empty string, loader pageLoader) *listScreen {
	s := a.newListScreen(name, empty, loader)
	s.live = true
	return s
}

func (a *App) profileScreen() *detailScreen {
	return newDetailScreen("Profile", func(d *detailScreen) {
		d.details(UserDetails(a.session.User()))
		d.action("Refresh library", func() {
			do(a, "Refreshing library", a.session.Refresh, func() {
				a.notify("Library refreshed")
				d.refresh()
			})
		})
	})
}

// entries

func (a *App) albumEntry(album domain.SimplifiedAlbum) entry {
	return entry{
		label:  AlbumEssentials(album),
		detail: FormatArtists(album.Artists),
		open:   func() { a.openAlbumByID(album.ID) },
	}
}

func (a *App) savedAlbumEntry(saved domain.SavedAlbum) entry {
	album := saved.Album
	return entry{
		label:  AlbumEssentials(domain.SimplifiedAlbum{Name: album.Name, TotalTracks: album.TotalTracks}),
		detail: FormatArtists(album.Artists),
		open:   func() { a.openAlbum(album) },
	}
}

func (a *App) artistEntry(artist domain.Artist) entry {
	return entry{
		label:  artist.Name,
		detail: FormatFollowers(artist.Followers),
		open:   func() { a.push(a.artistScreen(artist)) },
	}
}

func (a *App) simplifiedArtistEntry(artist domain.SimplifiedArtist) entry {
	return entry{
		label: artist.Name,
		open:  func() { a.openArtistByID(artist.ID) },
	}
}

func (a *App) playlistEntry(playlist domain.SimplifiedPlaylist) entry {
	owner := ""
	if playlist.Owner.DisplayName != nil {
		owner = "Owned by " + *playlist.Owner.DisplayName
	}
	return entry{
		label:  PlaylistEssentials(playlist),
		detail: owner,
		open:   func() { a.openPlaylistByID(playlist.ID) },
	}
}

func (a *App) trackEntry(track domain.Track) entry {
	return entry{
		label:  TrackEssentials(track.Name, track.DurationMS),
		detail: FormatArtists(track.Artists),
		open:   func() { a.openTrack(track, nil) },
	}
}

func (a *App) savedTrackEntry(saved domain.SavedTrack) entry {
	return a.trackEntry(saved.Track)
}

func (a *App) simplifiedTrackEntry(track domain.SimplifiedTrack) entry {
	return entry{
		label:  TrackEssentials(track.Name, track.DurationMS),
		detail: FormatArtists(track.Artists),
		open:   func() { a.openTrackByID(track.ID) },
	}
}

// playlistTrackEntry opens tracks in the context of playlist so owners can remove them
func (a *App) playlistTrackEntry(playlist *domain.Playlist) func(domain.PlaylistTrack) entry {
	return func(pt domain.PlaylistTrack) entry {
		e := a.trackEntry(pt.Track)
		e.open = func() { a.openTrack(pt.Track, playlist) }
		return e
	}
}

// opening records

// whenUnrestricted runs open directly, or after confirmation when the item is restricted
func (a *App) whenUnrestricted(kind string, r *domain.Restrictions, open func()) {
	if r == nil {
		open()
		return
	}
	a.confirm(RestrictionNotice(kind, *r), open)
}

func (a *App) openAlbum(album domain.Album) {
	a.whenUnrestricted("album", album.Restrictions, func() {
		a.push(a.albumScreen(album))
	})
}

func (a *App) openAlbumByID(id string) {
	run(a, "Fetching album", func(ctx context.Context) (*domain.Album, error) {
		return a.library.Album(ctx, id)
	}, func(album *domain.Album) {
		a.openAlbum(*album)
	})
}

func (a *App) openArtistByID(id string) {
	run(a, "Fetching artist", func(ctx context.Context) (*domain.Artist, error) {
		return a.library.Artist(ctx, id)
	}, func(artist *domain.Artist) {
		a.push(a.artistScreen(*artist))
	})
}

// openArtists opens the only artist, or lets the user pick one
func (a *App) openArtists(artists []domain.SimplifiedArtist) {
	switch len(artists) {
	case 0:
		a.setStatus("[yellow]No artist")
	case 1:
		a.openArtistByID(artists[0].ID)
	default:
		a.push(a.newListScreen("Artists", "No artist",
			local(artists, a.pageSize, a.simplifiedArtistEntry)))
	}
}

func (a *App) openPlaylistByID(id string) {
	run(a, "Fetching playlist", func(ctx context.Context) (*domain.Playlist, error) {
		return a.library.Playlist(ctx, id)
	}, func(playlist *domain.Playlist) {
		a.push(a.playlistScreen(playlist))
	})
}

func (a *App) openTrack(track domain.Track, from *domain.Playlist) {
	a.whenUnrestricted("track", track.Restrictions, func() {
		a.push(a.trackScreen(track, from))
	})
}

func (a *App) openTrackByID(id string) {
	run(a, "Fetching track", func(ctx context.Context) (*domain.Track, error) {
		return a.library.Track(ctx, id)
	}, func(track *domain.Track) {
		a.openTrack(*track, nil)
	})
}

// detail screens

func (a *App) albumScreen(album domain.Album) *detailScreen {
	return newDetailScreen(album.Name, func(d *detailScreen) {
		d.details(AlbumDetails(album))
		d.action("Save album", func() {
			do(a, "Saving album", func(ctx context.Context) error {
				return a.library.SaveAlbum(ctx, album.ID)
			}, func() { a.notify("Album saved") })
		})
		d.action("Remove album from library", func() {
			do(a, "Removing album", func(ctx context.Context) error {
				return a.library.RemoveSavedAlbum(ctx, album.ID)
			}, func() { a.notify("Album removed from library") })
		})
		d.action("Browse tracks", func() {
			a.push(a.newListScreen(album.Name+" tracks", "No track in album",
				remote(func(ctx context.Context, offset int) (*domain.Page[domain.SimplifiedTrack], error) {
					return a.library.AlbumTracks(ctx, album.ID, offset)
				}, a.simplifiedTrackEntry)))
		})
		d.action(artistAction(album.Artists), func() { a.openArtists(album.Artists) })
	})
}

func artistAction(artists []domain.SimplifiedArtist) string {
	if len(artists) > 1 {
		return "Choose artist"
	}
	return "Open artist"
}

func (a *App) artistScreen(artist domain.Artist) *detailScreen {
	return newDetailScreen(artist.Name, func(d *detailScreen) {
		d.details(ArtistDetails(artist))
		if a.session.FollowsArtist(artist.ID) {
			d.action("Unfollow artist", func() {
				do(a, "Unfollowing artist", func(ctx context.Context) error {
					return a.session.UnfollowArtist(ctx, artist.ID)
				}, func() {
					a.notify("Artist unfollowed")
					d.refresh()
				})
			})
		} else {
			d.action("Follow artist", func() {
				do(a, "Following artist", func(ctx context.Context) error {
					return a.session.FollowArtist(ctx, artist.ID)
				}, func() {
					a.notify("Artist followed")
					d.refresh()
				})
			})
		}
		d.action("Browse albums", func() {
			a.push(a.newListScreen(artist.Name+" albums", "No album",
				remote(func(ctx context.Context, offset int) (*domain.Page[domain.SimplifiedAlbum], error) {
					return a.library.ArtistAlbums(ctx, artist.ID, offset)
				}, a.albumEntry)))
		})
		d.action("View top tracks", func() {
			a.push(a.newListScreen(artist.Name+" top tracks", "No top track",
				aggregated(a.pageSize, func(ctx context.Context) ([]domain.Track, error) {
					return a.library.ArtistTopTracks(ctx, artist.ID)
				}, a.trackEntry)))
		})
	})
}

func (a *App) playlistScreen(playlist *domain.Playlist) *detailScreen {
	return newDetailScreen(playlist.Name, func(d *detailScreen) {
		d.details(PlaylistDetails(*playlist))
		switch {
		case a.session.Owns(playlist.Owner):
			d.action("Edit details", func() { a.showPlaylistForm(playlist) })
		case a.session.FollowsPlaylist(playlist.ID):
			d.action("Unfollow playlist", func() {
				do(a, "Unfollowing playlist", func(ctx context.Context) error {
					return a.session.UnfollowPlaylist(ctx, playlist.ID)
				}, func() {
					a.notify("Playlist unfollowed")
					d.refresh()
				})
			})
		default:
			d.action("Follow playlist", func() {
				do(a, "Following playlist", func(ctx context.Context) error {
					return a.session.FollowPlaylist(ctx, playlist.ID)
				}, func() {
					a.notify("Playlist followed")
					d.refresh()
				})
			})
		}
		d.action("Browse tracks", func() {
			s := a.newListScreen(playlist.Name+" tracks", "No track in playlist",
				remote(func(ctx context.Context, offset int) (*domain.Page[domain.PlaylistTrack], error) {
					return a.library.PlaylistTracks(ctx, playlist.ID, offset)
				}, a.playlistTrackEntry(playlist)))
			// removals change the listing
			s.live = true
			a.push(s)
		})
	})
}

func (a *App) trackScreen(track domain.Track, from *domain.Playlist) *detailScreen {
	return newDetailScreen(track.Name, func(d *detailScreen) {
		d.details(TrackDetails(track))
		d.action("Add to playlist", func() { a.showAddToPlaylist(track) })
		if from != nil && a.session.Owns(from.Owner) {
			d.action("Remove from "+from.Name, func() {
				do(a, "Removing track", func(ctx context.Context) error {
					return a.session.RemoveTrackFromPlaylist(ctx, from, track)
				}, func() {
					a.notify("Track removed from playlist")
					a.back()
				})
			})
		}
		d.action("Save track", func() {
			do(a, "Saving track", func(ctx context.Context) error {
				return a.library.SaveTrack(ctx, track.ID)
			}, func() { a.notify("Track saved") })
		})
		d.action("Remove track from library", func() {
			do(a, "Removing track", func(ctx context.Context) error {
				return a.library.RemoveSavedTrack(ctx, track.ID)
			}, func() { a.notify("Track removed from library") })
		})
		d.action("Open album", func() { a.openAlbumByID(track.Album.ID) })
		d.action(artistAction(track.Artists), func() { a.openArtists(track.Artists) })
	})
}

// showAddToPlaylist lists the owned playlists; picking one appends track to it
func (a *App) showAddToPlaylist(track domain.Track) {
	if len(a.session.OwnedPlaylists()) == 0 {
		a.setStatus("[yellow]You do not own any playlist")
		return
	}
	a.push(a.newListScreen("Add "+track.Name+" to", "No owned playlist",
		fromSession(a.session.OwnedPlaylists, a.pageSize, func(p domain.SimplifiedPlaylist) entry {
			return entry{
				label: PlaylistEssentials(p),
				open: func() {
					run(a, "Adding track", func(ctx context.Context) (*domain.Playlist, error) {
						return a.session.AddTrackToPlaylist(ctx, p.ID, track)
					}, func(*domain.Playlist) {
						a.back()
						a.notify("Track added to playlist")
					})
				},
			}
		})))
}
