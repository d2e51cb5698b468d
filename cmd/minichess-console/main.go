// minichess-console plays against a remote arbiter from a terminal.
//
// Usage:
//
//	minichess-console [-config file] [-arbiter url]
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/hailam/minichess/internal/arbiter"
	"github.com/hailam/minichess/internal/config"
	"github.com/hailam/minichess/internal/console"
	"github.com/hailam/minichess/internal/controller"
	"github.com/hailam/minichess/internal/logging"
	"github.com/hailam/minichess/internal/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	configPath = flag.String("config", "", "path to a YAML config file")
	arbiterURL = flag.String("arbiter", "", "arbiter base URL (overrides config)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if *arbiterURL != "" {
		cfg.ArbiterURL = *arbiterURL
		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("invalid -arbiter")
		}
	}

	// Logs go to stderr so they do not interleave with the board.
	logger := logging.New(os.Stderr, cfg.LogLevel)
	log.Logger = logger

	opts := []controller.Option{controller.WithLogger(logging.Component(logger, "controller"))}
	if store := openStore(cfg.DataDir, logger); store != nil {
		defer store.Close()
		if prefs, err := store.LoadPreferences(); err == nil {
			opts = append(opts, controller.WithFlipped(prefs.Flipped))
		}
		opts = append(opts, controller.OnFlip(func(flipped bool) {
			if err := store.UpdatePreferences(func(p *storage.Preferences) { p.Flipped = flipped }); err != nil {
				logger.Warn().Err(err).Msg("failed to save preferences")
			}
		}))
	}

	client := arbiter.New(cfg.ArbiterURL,
		arbiter.WithTimeout(cfg.RequestTimeout),
		arbiter.WithLogger(logging.Component(logger, "arbiter")),
	)
	con := console.New(os.Stdin, os.Stdout, logging.Component(logger, "console"), cfg.RequestTimeout)
	ctrl := controller.New(client, con, opts...)
	defer ctrl.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := con.Run(ctx, ctrl); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("console failed")
	}
}

func openStore(dataDir string, logger zerolog.Logger) *storage.Storage {
	store, err := storage.Open(dataDir)
	if err != nil {
		logger.Warn().Err(err).Msg("preferences will not be saved")
		return nil
	}
	return store
}
