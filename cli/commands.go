package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yhkl-dev/cmusic/domain"
	"github.com/yhkl-dev/cmusic/spotify"
	"github.com/yhkl-dev/cmusic/ui"
)

const tabPadding = 2

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			user, err := e.library.Me(e.ctx)
			if err != nil {
				return fmt.Errorf("fetching current user: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.UserDetails(*user))
			return nil
		},
	}
}

func newPlaylistsCmd() *cobra.Command {
	var owned, followed bool

	cmd := &cobra.Command{
		Use:   "playlists",
		Short: "List the playlists you own and follow",
		Example: `  # Only the playlists you own
  cmusic playlists --owned`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			session, err := e.connect()
			if err != nil {
				return err
			}
			both := owned == followed
			w := newTable(cmd.OutOrStdout())
			if owned || both {
				writePlaylists(w, "Owned playlists", session.OwnedPlaylists())
			}
			if followed || both {
				writePlaylists(w, "Followed playlists", session.FollowedPlaylists())
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&owned, "owned", false, "only list playlists you own")
	cmd.Flags().BoolVar(&followed, "followed", false, "only list playlists you follow")
	return cmd
}

func writePlaylists(w io.Writer, heading string, playlists []domain.SimplifiedPlaylist) {
	fmt.Fprintf(w, "%s (%d)\n", heading, len(playlists))
	for _, p := range playlists {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", p.ID, ui.PlaylistEssentials(p), p.Owner.Name())
	}
}

func newArtistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "artists",
		Short: "List the artists you follow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			artists, err := e.library.AllFollowedArtists(e.ctx)
			if err != nil {
				return fmt.Errorf("listing followed artists: %w", err)
			}
			if len(artists) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No followed artist.")
				return nil
			}
			w := newTable(cmd.OutOrStdout())
			for _, a := range artists {
				fmt.Fprintf(w, "%s\t%s\t%s\n", a.ID, a.Name, ui.FormatFollowers(a.Followers))
			}
			return w.Flush()
		},
	}
}

func newSearchCmd() *cobra.Command {
	var (
		query  spotify.SearchQuery
		types  []string
		offset int
	)

	cmd := &cobra.Command{
		Use:   "search [QUERY...]",
		Short: "Search the catalog",
		Example: `  # Albums by an artist from the seventies
  cmusic search --artist "joni mitchell" --year 1970-1979 --type album`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query.Text = strings.Join(args, " ")
			query.Types = query.Types[:0]
			for _, t := range types {
				parsed, err := spotify.ParseSearchType(t)
				if err != nil {
					return err
				}
				query.Types = append(query.Types, parsed)
			}
			if query.String() == "" {
				return errors.New("nothing to search for: give a query or a filter")
			}

			e, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			result, err := e.library.Search(e.ctx, query, offset)
			if err != nil {
				return fmt.Errorf("searching %q: %w", query.String(), err)
			}
			w := newTable(cmd.OutOrStdout())
			writeSearch(w, result, offset)
			return w.Flush()
		},
	}

	cmd.Flags().StringSliceVar(&types, "type", nil, "album, artist, playlist or track (repeatable, default all)")
	cmd.Flags().StringVar(&query.Album, "album", "", "filter by album name")
	cmd.Flags().StringVar(&query.Artist, "artist", "", "filter by artist name")
	cmd.Flags().StringVar(&query.Playlist, "playlist", "", "filter by playlist name")
	cmd.Flags().StringVar(&query.Track, "track", "", "filter by track name")
	cmd.Flags().StringVar(&query.Year, "year", "", "filter by year or range, e.g. 1990-1999")
	cmd.Flags().StringVar(&query.Genre, "genre", "", "filter by genre")
	cmd.Flags().BoolVar(&query.New, "new", false, "only albums released in the past two weeks")
	cmd.Flags().BoolVar(&query.Hipster, "hipster", false, "only albums with the lowest popularity")
	cmd.Flags().IntVar(&offset, "offset", 0, "index of the first result")
	return cmd
}

func writeHeading(w io.Writer, name string, offset, count, total int) {
	fmt.Fprintf(w, "%s (%s)\n", name, ui.FormatPageInfo(offset, count, total))
}

func writeSearch(w io.Writer, result *domain.Search, offset int) {
	if p := result.Tracks; p != nil {
		writeHeading(w, "Tracks", offset, len(p.Items), p.Total)
		for _, t := range p.Items {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", t.ID, ui.TrackEssentials(t.Name, t.DurationMS), ui.FormatArtists(t.Artists))
		}
	}
	if p := result.Artists; p != nil {
		writeHeading(w, "Artists", offset, len(p.Items), p.Total)
		for _, a := range p.Items {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", a.ID, a.Name, ui.FormatFollowers(a.Followers))
		}
	}
	if p := result.Albums; p != nil {
		writeHeading(w, "Albums", offset, len(p.Items), p.Total)
		for _, a := range p.Items {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", a.ID, ui.AlbumEssentials(a), ui.FormatArtists(a.Artists))
		}
	}
	if p := result.Playlists; p != nil {
		writeHeading(w, "Playlists", offset, len(p.Items), p.Total)
		for _, pl := range p.Items {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", pl.ID, ui.PlaylistEssentials(pl), pl.Owner.Name())
		}
	}
}

func newSavedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "List your saved albums or tracks",
	}

	albums := &cobra.Command{
		Use:   "albums",
		Short: "List saved albums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			saved, err := e.library.AllSavedAlbums(e.ctx)
			if err != nil {
				return fmt.Errorf("listing saved albums: %w", err)
			}
			w := newTable(cmd.OutOrStdout())
			writeHeading(w, "Saved albums", 0, len(saved), len(saved))
			for _, s := range saved {
				a := s.Album
				fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", a.ID,
					ui.AlbumEssentials(domain.SimplifiedAlbum{Name: a.Name, TotalTracks: a.TotalTracks}),
					ui.FormatArtists(a.Artists), s.AddedAt)
			}
			return w.Flush()
		},
	}

	tracks := &cobra.Command{
		Use:   "tracks",
		Short: "List saved tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			saved, err := e.library.AllSavedTracks(e.ctx)
			if err != nil {
				return fmt.Errorf("listing saved tracks: %w", err)
			}
			w := newTable(cmd.OutOrStdout())
			writeHeading(w, "Saved tracks", 0, len(saved), len(saved))
			for _, s := range saved {
				t := s.Track
				fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", t.ID,
					ui.TrackEssentials(t.Name, t.DurationMS), ui.FormatArtists(t.Artists), s.AddedAt)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(albums, tracks)
	return cmd
}
