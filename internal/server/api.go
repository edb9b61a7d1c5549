// Package server assembles the gin engines for the api and web services.
package server

import (
	"net/http"

	"tailspin/catalog/internal/handler"
	"tailspin/catalog/internal/logging"
	"tailspin/catalog/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// APIOptions configures the Data Service engine.
type APIOptions struct {
	Logger zerolog.Logger
	// EnableAdminWrites registers POST/PUT/DELETE on /api/games.
	EnableAdminWrites bool
}

// NewAPI builds the Data Service router.
func NewAPI(h *handler.Handler, opts APIOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logging.GinLogger(opts.Logger), metrics.Instrument("api"))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handler.ErrorResponse{Error: "Not found"})
	})

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", handler.Ping)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		gameRoutes := api.Group("/games")
		{
			gameRoutes.GET("", h.GetGames)
			gameRoutes.GET("/:id", h.GetGameByID)

			if opts.EnableAdminWrites {
				gameRoutes.POST("", h.CreateGame)
				gameRoutes.PUT("/:id", h.UpdateGame)
				gameRoutes.DELETE("/:id", h.DeleteGame)
			}
		}

		api.GET("/categories", h.GetCategories)
		api.GET("/publishers", h.GetPublishers)
	}

	return router
}
