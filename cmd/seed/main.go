// Command seed loads the demo catalog into the configured database.
package main

import (
	"context"

	"tailspin/catalog/internal/config"
	"tailspin/catalog/internal/database"
	"tailspin/catalog/internal/logging"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, "seed")

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}

	n, err := database.Seed(context.Background(), db)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed catalog")
	}
	if n == 0 {
		logger.Info().Msg("catalog already seeded")
		return
	}
	logger.Info().Int("games", n).Msg("catalog seeded")
}
