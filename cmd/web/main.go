package main

import (
	"net/http"
	"os"
	"time"

	"tailspin/catalog/internal/apiclient"
	"tailspin/catalog/internal/config"
	"tailspin/catalog/internal/logging"
	"tailspin/catalog/internal/proxy"
	"tailspin/catalog/internal/server"
	"tailspin/catalog/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, "web")
	gin.SetMode(cfg.GinMode)

	fwd, err := proxy.New(proxy.Config{BaseURL: cfg.APIServerURL, Logger: logger})
	if err != nil {
		logger.Fatal().Err(err).Msg("configure forwarding")
	}

	client := apiclient.New(cfg.APIServerURL, &http.Client{Timeout: 10 * time.Second})
	router := server.NewWeb(fwd, web.NewPages(client, logger), logger)

	logger.Info().
		Str("addr", cfg.WebAddr).
		Str("api_server", cfg.APIServerURL).
		Msg("web server is running")
	if err := router.Run(cfg.WebAddr); err != nil {
		logger.Error().Err(err).Msg("web server stopped")
		os.Exit(1)
	}
}
