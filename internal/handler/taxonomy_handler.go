package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CategoryResponse struct {
	ID          uint    `json:"id" example:"1"`
	Name        string  `json:"name" example:"Strategy"`
	Description *string `json:"description" example:"Plan ahead and outthink your opponents."`
	GameCount   int64   `json:"game_count" example:"3"`
}

type PublisherResponse struct {
	ID          uint    `json:"id" example:"1"`
	Name        string  `json:"name" example:"DevGames Inc"`
	Description *string `json:"description" example:"Tabletop games for people who ship software."`
	GameCount   int64   `json:"game_count" example:"2"`
}

// GetCategories godoc
// @Summary      List categories
// @Description  Lists categories sorted by name, each with the number of games it holds.
// @Tags         categories
// @Produce      json
// @Success      200 {array}  CategoryResponse
// @Failure      500 {object} ErrorResponse "Failed to retrieve categories"
// @Router       /categories [get]
func (h *Handler) GetCategories(c *gin.Context) {
	rows, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err, "Failed to retrieve categories")
		return
	}

	response := make([]CategoryResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, CategoryResponse{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			GameCount:   row.GameCount,
		})
	}
	c.JSON(http.StatusOK, response)
}

// GetPublishers godoc
// @Summary      List publishers
// @Description  Lists publishers sorted by name, each with the number of games it publishes.
// @Tags         publishers
// @Produce      json
// @Success      200 {array}  PublisherResponse
// @Failure      500 {object} ErrorResponse "Failed to retrieve publishers"
// @Router       /publishers [get]
func (h *Handler) GetPublishers(c *gin.Context) {
	rows, err := h.catalog.ListPublishers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err, "Failed to retrieve publishers")
		return
	}

	response := make([]PublisherResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, PublisherResponse{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			GameCount:   row.GameCount,
		})
	}
	c.JSON(http.StatusOK, response)
}
