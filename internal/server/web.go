package server

import (
	"net/http"

	"tailspin/catalog/internal/logging"
	"tailspin/catalog/internal/metrics"
	"tailspin/catalog/internal/proxy"
	"tailspin/catalog/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewWeb builds the Presentation Service router. The forwarder runs before
// routing, so every path containing /api/ goes to the API server whether or
// not a page route exists for it.
func NewWeb(fwd *proxy.Forwarder, pages *web.Pages, logger zerolog.Logger) *gin.Engine {
	router := gin.New()
	// A trailing-slash redirect would answer "/game/api/" before the
	// forwarder sees it.
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery(), logging.GinLogger(logger), metrics.Instrument("web"), fwd.Middleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.GET("/", pages.Home)
	router.GET("/game/:id", pages.GameDetails)
	router.GET("/about", pages.About)
	router.NoRoute(pages.NotFound)

	return router
}
