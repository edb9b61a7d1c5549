package main

import (
	"os"

	"tailspin/catalog/internal/config"
	"tailspin/catalog/internal/database"
	"tailspin/catalog/internal/handler"
	"tailspin/catalog/internal/logging"
	"tailspin/catalog/internal/server"
	"tailspin/catalog/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	// Swagger imports
	_ "tailspin/catalog/docs" // registers the generated docs with swag
)

// @title           Tailspin Toys Catalog API
// @version         1.0
// @description     Read access to the crowdfunding game catalog, with optional admin writes.
// @host            localhost:5100
// @BasePath        /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, "api")
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	logger.Info().Msg("Database connection successful and migrations run.")

	router := server.NewAPI(handler.New(store.NewCatalog(db)), server.APIOptions{
		Logger:            logger,
		EnableAdminWrites: cfg.EnableAdminWrites,
	})

	logger.Info().
		Str("addr", cfg.APIAddr).
		Bool("admin_writes", cfg.EnableAdminWrites).
		Msg("API server is running; Swagger UI at /swagger/index.html")
	if err := router.Run(cfg.APIAddr); err != nil {
		logger.Error().Err(err).Msg("api server stopped")
		os.Exit(1)
	}
}
