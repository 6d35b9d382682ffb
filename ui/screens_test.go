package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhkl-dev/cmusic/config"
	"github.com/yhkl-dev/cmusic/domain"
	"github.com/yhkl-dev/cmusic/library"
)

// fakeLibrary records the calls the screens make; methods it does not
// override panic through the nil embedded interface.
type fakeLibrary struct {
	library.Library

	mu      sync.Mutex
	calls   []string
	artists []domain.Artist
}

func (f *fakeLibrary) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeLibrary) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeLibrary) Me(context.Context) (*domain.User, error) {
	return &domain.User{ID: "alice", DisplayName: ptr("Alice")}, nil
}

func (f *fakeLibrary) SplitPlaylists(context.Context, string) (owned, followed []domain.SimplifiedPlaylist, err error) {
	f.record("SplitPlaylists")
	owned = []domain.SimplifiedPlaylist{{
		ID:     "p1",
		Name:   "Road trip",
		Owner:  domain.SimplifiedUser{ID: "alice", DisplayName: ptr("Alice")},
		Tracks: domain.TrackSummary{Total: 3},
	}}
	return owned, nil, nil
}

func (f *fakeLibrary) AllFollowedArtists(context.Context) ([]domain.Artist, error) {
	f.record("AllFollowedArtists")
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.artists), nil
}

func (f *fakeLibrary) FollowArtist(_ context.Context, id string) error {
	f.record("FollowArtist %s", id)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.artists = append(f.artists, domain.Artist{ID: id})
	return nil
}

func (f *fakeLibrary) SaveAlbum(_ context.Context, id string) error {
	f.record("SaveAlbum %s", id)
	return nil
}

func (f *fakeLibrary) Playlist(_ context.Context, id string) (*domain.Playlist, error) {
	return &domain.Playlist{
		ID:         id,
		Name:       "Road trip",
		SnapshotID: "s1",
		Owner:      domain.SimplifiedUser{ID: "alice", DisplayName: ptr("Alice")},
	}, nil
}

func (f *fakeLibrary) AddTracks(_ context.Context, playlistID string, uris []string) (string, error) {
	f.record("AddTracks %s %s", playlistID, strings.Join(uris, ","))
	return "s2", nil
}

func (f *fakeLibrary) UpdatePlaylistDetails(_ context.Context, id, name, description string) error {
	f.record("UpdatePlaylistDetails %s %q %q", id, name, description)
	return nil
}

// startApp runs the application on a simulation screen over a connected session
func startApp(t *testing.T, lib *fakeLibrary) *App {
	t.Helper()
	session := library.NewSession(lib, zerolog.Nop())
	require.NoError(t, session.Connect(context.Background()))

	a := NewApp(context.Background(), config.DefaultConfig(), session, zerolog.Nop())
	a.tviewApp.SetScreen(tcell.NewSimulationScreen("UTF-8"))

	done := make(chan error, 1)
	go func() { done <- a.Run() }()
	t.Cleanup(func() {
		a.Stop()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("application did not stop")
		}
	})

	waitUI(t, a, "home screen loaded", func() bool {
		s, ok := a.current().(*listScreen)
		return ok && s.loaded
	})
	return a
}

// onUI runs f on the application goroutine and waits for it
func onUI(a *App, f func()) {
	a.tviewApp.QueueUpdate(f)
}

func waitUI(t *testing.T, a *App, what string, cond func() bool) {
	t.Helper()
	assert.Eventually(t, func() bool {
		var ok bool
		onUI(a, func() { ok = cond() })
		return ok
	}, 5*time.Second, 10*time.Millisecond, what)
}

// choose selects the list item whose text contains label
func choose(l *tview.List, label string) bool {
	indices := l.FindItems(label, "", false, false)
	if len(indices) == 0 {
		return false
	}
	l.SetCurrentItem(indices[0])
	l.InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(tview.Primitive) {})
	return true
}

func itemTexts(l *tview.List) []string {
	texts := make([]string, l.GetItemCount())
	for i := range texts {
		texts[i], _ = l.GetItemText(i)
	}
	return texts
}

func status(a *App) string {
	return strings.TrimSpace(a.statusBar.GetText(true))
}

func TestFollowArtistRefreshesSession(t *testing.T) {
	lib := &fakeLibrary{}
	a := startApp(t, lib)

	var d *detailScreen
	var chosen bool
	onUI(a, func() {
		d = a.artistScreen(domain.Artist{ID: "a1", Name: "Joni"})
		a.push(d)
		chosen = choose(d.actions, "Follow artist")
	})
	require.True(t, chosen)

	waitUI(t, a, "follow action finished", func() bool {
		return slices.Contains(itemTexts(d.actions), "Unfollow artist") && status(a) == "Artist followed"
	})
	assert.True(t, a.session.FollowsArtist("a1"))
	assert.Equal(t, []string{
		"SplitPlaylists", "AllFollowedArtists",
		"FollowArtist a1", "AllFollowedArtists",
	}, lib.recorded())
}

func TestSaveAlbumAction(t *testing.T) {
	lib := &fakeLibrary{}
	a := startApp(t, lib)

	var chosen bool
	onUI(a, func() {
		d := a.albumScreen(domain.Album{ID: "al1", Name: "Blue"})
		a.push(d)
		chosen = choose(d.actions, "Save album")
	})
	require.True(t, chosen)

	waitUI(t, a, "album saved", func() bool { return status(a) == "Album saved" })
	assert.Contains(t, lib.recorded(), "SaveAlbum al1")
}

func TestAddTrackToOwnedPlaylist(t *testing.T) {
	lib := &fakeLibrary{}
	a := startApp(t, lib)

	var d *detailScreen
	var chosen bool
	onUI(a, func() {
		d = a.trackScreen(domain.Track{ID: "t1", Name: "River"}, nil)
		a.push(d)
		chosen = choose(d.actions, "Add to playlist")
	})
	require.True(t, chosen)

	var picker *listScreen
	waitUI(t, a, "playlist picker loaded", func() bool {
		s, ok := a.current().(*listScreen)
		picker = s
		return ok && s.loaded
	})
	require.NotNil(t, picker)
	onUI(a, func() { chosen = choose(picker.list, "Road trip") })
	require.True(t, chosen)

	waitUI(t, a, "back on the track screen", func() bool {
		return a.current() == screen(d) && status(a) == "Track added to playlist"
	})
	calls := lib.recorded()
	assert.Contains(t, calls, "AddTracks p1 spotify:track:t1")
	assert.Equal(t, "SplitPlaylists", calls[len(calls)-1], "owned playlists are refreshed after the change")
}

func TestEditPlaylistForm(t *testing.T) {
	lib := &fakeLibrary{}
	a := startApp(t, lib)

	playlist, err := lib.Playlist(context.Background(), "p1")
	require.NoError(t, err)

	var d *detailScreen
	var chosen bool
	onUI(a, func() {
		d = a.playlistScreen(playlist)
		a.push(d)
		chosen = choose(d.actions, "Edit details")
	})
	require.True(t, chosen)

	var submitted bool
	onUI(a, func() {
		f, ok := a.current().(*formScreen)
		if !ok {
			return
		}
		f.form.GetFormItemByLabel("Name").(*tview.InputField).SetText("Long drive")
		f.form.GetFormItemByLabel("Description").(*tview.InputField).SetText("  night roads ")
		save := f.form.GetButton(f.form.GetButtonIndex("Save"))
		save.InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(tview.Primitive) {})
		submitted = true
	})
	require.True(t, submitted)

	waitUI(t, a, "playlist updated", func() bool {
		return a.current() == screen(d) && status(a) == "Playlist updated"
	})
	assert.Contains(t, lib.recorded(), `UpdatePlaylistDetails p1 "Long drive" "night roads"`)
	assert.Equal(t, "Long drive", playlist.Name)
	onUI(a, func() { assert.Contains(t, d.text.GetText(true), "Long drive") })
}

func TestPlaylistFormRejectsEmptyName(t *testing.T) {
	lib := &fakeLibrary{}
	a := startApp(t, lib)

	var submitted bool
	onUI(a, func() {
		a.showPlaylistForm(nil)
		f := a.current().(*formScreen)
		save := f.form.GetButton(f.form.GetButtonIndex("Save"))
		save.InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(tview.Primitive) {})
		submitted = true
	})
	require.True(t, submitted)

	waitUI(t, a, "name required", func() bool { return status(a) == "A playlist needs a name" })
	assert.NotContains(t, strings.Join(lib.recorded(), "\n"), "CreatePlaylist")
}
