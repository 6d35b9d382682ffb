// Package cli wires configuration, logging and the client into cobra commands.
// The root command starts the interactive interface; subcommands print plain text.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yhkl-dev/cmusic/config"
	"github.com/yhkl-dev/cmusic/library"
	"github.com/yhkl-dev/cmusic/logging"
	"github.com/yhkl-dev/cmusic/spotify"
	"github.com/yhkl-dev/cmusic/ui"
)

// ErrNoTerminal is returned when the interactive interface is started without a terminal
var ErrNoTerminal = errors.New("the interactive interface needs a terminal, use a subcommand instead")

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// env is what a command needs to talk to the service
type env struct {
	cfg     *config.Config
	log     *logging.Logger
	logger  zerolog.Logger
	library library.Library
	ctx     context.Context
}

func (e *env) close() {
	e.logger.Debug().Msg("command finished")
	_ = e.log.Close()
}

// setup loads the configuration and builds the client. interactive keeps logs
// out of the terminal even in debug mode.
func setup(cmd *cobra.Command, interactive bool) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Log
	if interactive && logCfg.Debug {
		logCfg.Debug = false
		logCfg.Level = zerolog.LevelDebugValue
	}
	log, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	client := spotify.New(cfg.API.Token,
		spotify.WithBaseURL(cfg.API.BaseURL),
		spotify.WithPageLimit(cfg.API.PageLimit),
		spotify.WithTimeout(cfg.API.GetHTTPTimeout()),
		spotify.WithRateLimit(cfg.API.RequestsPerSecond),
		spotify.WithLogger(log.Component(logging.ComponentSpotify)),
	)

	logger := log.Component(logging.ComponentCLI)
	pagination := log.Component(logging.ComponentPagination)
	logger.Debug().Str("command", cmd.CommandPath()).Str("base_url", cfg.API.BaseURL).Msg("command started")

	return &env{
		cfg:     cfg,
		log:     log,
		logger:  logger,
		library: library.NewSpotifyLibrary(client),
		ctx:     pagination.WithContext(cmd.Context()),
	}, nil
}

// connect opens a session for the authenticated user
func (e *env) connect() (*library.Session, error) {
	session := library.NewSession(e.library, e.log.Component(logging.ComponentSession))
	if err := session.Connect(e.ctx); err != nil {
		return nil, err
	}
	return session, nil
}

// NewRootCmd creates the root command. Without a subcommand it starts the interactive interface.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cmusic",
		Short:         "Browse a music streaming library from the terminal",
		Long:          "cmusic: browse albums, artists, playlists and tracks of a music streaming account",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  # Start the interactive interface
  cmusic --token "$TOKEN"

  # Print the authenticated user
  cmusic whoami

  # Search tracks and albums
  cmusic search "blue" --type track --type album`,
		RunE: runInteractive,
	}

	cmd.PersistentFlags().String("config", "", "config file (default $HOME/.config/cmusic/config.toml)")
	cmd.PersistentFlags().String("token", "", "API access token (overrides config and CMUSIC_API_TOKEN)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	cmd.AddCommand(
		newWhoamiCmd(),
		newPlaylistsCmd(),
		newArtistsCmd(),
		newSearchCmd(),
		newSavedCmd(),
	)
	return cmd
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ErrNoTerminal
	}
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.close()

	session, err := e.connect()
	if err != nil {
		return err
	}
	app := ui.NewApp(e.ctx, e.cfg, session, e.log.Component(logging.ComponentUI))
	return app.Run()
}

// Execute runs the root command with os.Args
func Execute(ctx context.Context, version string) error {
	return NewRootCmd(version).ExecuteContext(ctx)
}
