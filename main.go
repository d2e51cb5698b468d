// MiniChess - a chess board client for a remote arbiter, built with Ebitengine
package main

import (
	"flag"
	"os"

	"github.com/hailam/minichess/internal/arbiter"
	"github.com/hailam/minichess/internal/config"
	"github.com/hailam/minichess/internal/controller"
	"github.com/hailam/minichess/internal/logging"
	"github.com/hailam/minichess/internal/storage"
	"github.com/hailam/minichess/internal/ui"
	"github.com/hajimehoshi/ebiten/v2"
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

	logger := logging.New(os.Stderr, cfg.LogLevel)
	log.Logger = logger

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		logger.Warn().Err(err).Msg("preferences will not be saved")
		store = nil
	}
	prefs := storage.DefaultPreferences()
	if store != nil {
		defer store.Close()
		if prefs, err = store.LoadPreferences(); err != nil {
			logger.Warn().Err(err).Msg("failed to load preferences")
			prefs = storage.DefaultPreferences()
		}
	}

	client := arbiter.New(cfg.ArbiterURL,
		arbiter.WithTimeout(cfg.RequestTimeout),
		arbiter.WithLogger(logging.Component(logger, "arbiter")),
	)

	game := ui.NewGame(ui.Config{
		Logger:       logging.Component(logger, "ui"),
		Storage:      store,
		Prefs:        prefs,
		SoundAllowed: cfg.Sound,
		Icons:        client,
	})
	ctrl := controller.New(client, game,
		controller.WithLogger(logging.Component(logger, "controller")),
		controller.WithFlipped(prefs.Flipped),
		controller.OnFlip(game.OrientationChanged),
	)
	game.Attach(ctrl)
	defer game.Close()

	logger.Info().Str("arbiter", cfg.ArbiterURL).Msg("starting")

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("MiniChess")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error().Err(err).Msg("game loop failed")
	}
}
