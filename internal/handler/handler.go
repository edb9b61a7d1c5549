package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"tailspin/catalog/internal/models"
	"tailspin/catalog/internal/store"

	"github.com/gin-gonic/gin"
)

// Catalog is the store surface the handlers depend on.
type Catalog interface {
	ListGames(ctx context.Context, f store.GameFilter) ([]models.Game, error)
	GetGame(ctx context.Context, id uint) (models.Game, error)
	ListCategories(ctx context.Context) ([]store.CategoryCount, error)
	ListPublishers(ctx context.Context) ([]store.PublisherCount, error)
	CreateGame(ctx context.Context, in store.GameChanges) (models.Game, error)
	UpdateGame(ctx context.Context, id uint, in store.GameChanges) (models.Game, error)
	DeleteGame(ctx context.Context, id uint) (models.Game, error)
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// MessageResponse is returned by operations that have nothing else to report.
type MessageResponse struct {
	Message string `json:"message" example:"Game 'Pipeline Panic' deleted successfully"`
}

// Handler serves the catalog REST endpoints.
type Handler struct {
	catalog Catalog
}

func New(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// abortWithError records err for the request logger and writes a JSON error body.
func abortWithError(c *gin.Context, status int, err error, message string) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// idFilter is an optional integer query filter.
type idFilter struct {
	id *uint
	// unmatchable marks an integer no row can carry, such as a negative or
	// out-of-range id.
	unmatchable bool
}

// optionalIDQuery reads an optional integer query parameter. ok is false
// only when the value is not an integer.
func optionalIDQuery(c *gin.Context, name string) (idFilter, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return idFilter{}, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return idFilter{unmatchable: true}, true
	}
	if err != nil {
		return idFilter{}, false
	}
	if id < 0 {
		return idFilter{unmatchable: true}, true
	}
	v := uint(id)
	return idFilter{id: &v}, true
}

// Ping godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} MessageResponse
// @Router       /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "pong"})
}
