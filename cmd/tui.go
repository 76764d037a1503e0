package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mkravets/newsline/internal/api"
	"github.com/mkravets/newsline/internal/cache"
	"github.com/mkravets/newsline/internal/config"
	"github.com/mkravets/newsline/internal/session"
	"github.com/mkravets/newsline/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, sess, err := loadEnvironment()
	if err != nil {
		return err
	}

	history, err := cache.Open(config.HistoryPath())
	if err != nil {
		// The TUI works without local history; warn and carry on.
		fmt.Fprintf(os.Stderr, "warning: local history unavailable: %v\n", err)
		history = nil
	} else {
		defer history.Close()
	}

	return tui.Run(tui.RunOpts{
		Cfg:       cfg,
		Session:   sess,
		History:   history,
		NewClient: clientFactory(cfg),
	})
}

// loadEnvironment wires config, flags and the restored session; every
// subcommand starts here.
func loadEnvironment() (*config.Config, *session.Store, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if flagAPI != "" {
		cfg.APIURL = flagAPI
	}
	if flagDebug {
		cfg.Debug = true
	}

	sess := session.NewStore(config.SessionPath())
	sess.Restore()
	return cfg, sess, nil
}

// clientFactory builds API clients bound to the config. The token is a
// parameter so login and logout can rebuild the client mid-session.
func clientFactory(cfg *config.Config) func(token string) *api.Client {
	log := debugLogger(cfg)
	return func(token string) *api.Client {
		opts := []api.Option{api.WithLogger(log)}
		if token != "" {
			opts = append(opts, api.WithToken(token))
		}
		return api.New(cfg.APIURL, opts...)
	}
}

// debugLogger returns a file-backed logger when debug is on, otherwise
// a no-op. Logging to stderr would corrupt the TUI frame.
func debugLogger(cfg *config.Config) zerolog.Logger {
	if !cfg.Debug {
		return zerolog.Nop()
	}
	f, err := os.OpenFile(config.DebugLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(f).With().Timestamp().Logger()
}
