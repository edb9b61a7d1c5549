package handler

import (
	"errors"
	"io"
	"net/http"

	"tailspin/catalog/internal/models"
	"tailspin/catalog/internal/store"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// GameInput is the body of the admin create and update endpoints.
// Omitted fields are left untouched on update.
type GameInput struct {
	Title       *string  `json:"title" binding:"omitempty,min=2,max=100" example:"Pipeline Panic"`
	Description *string  `json:"description" binding:"omitempty,min=10" example:"Build your DevOps pipeline before chaos ensues"`
	CategoryID  *uint    `json:"category_id" example:"1"`
	PublisherID *uint    `json:"publisher_id" example:"1"`
	StarRating  *float64 `json:"star_rating" binding:"omitempty,gte=0,lte=5" example:"4.5"`
}

func (in GameInput) empty() bool {
	return in.Title == nil && in.Description == nil && in.CategoryID == nil &&
		in.PublisherID == nil && in.StarRating == nil
}

func (in GameInput) changes() store.GameChanges {
	return store.GameChanges{
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		PublisherID: in.PublisherID,
		StarRating:  in.StarRating,
	}
}

// RefResponse is the embedded {id, name} form of a category or publisher.
type RefResponse struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"Strategy"`
}

type GameResponse struct {
	ID          uint         `json:"id" example:"1"`
	Title       string       `json:"title" example:"Pipeline Panic"`
	Description string       `json:"description" example:"Build your DevOps pipeline before chaos ensues"`
	Publisher   *RefResponse `json:"publisher"`
	Category    *RefResponse `json:"category"`
	StarRating  *float64     `json:"starRating" example:"4.5"`
}

func newGameResponse(game models.Game) GameResponse {
	resp := GameResponse{
		ID:          game.ID,
		Title:       game.Title,
		Description: game.Description,
		StarRating:  game.StarRating,
	}
	if game.Publisher != nil {
		resp.Publisher = &RefResponse{ID: game.Publisher.ID, Name: game.Publisher.Name}
	}
	if game.Category != nil {
		resp.Category = &RefResponse{ID: game.Category.ID, Name: game.Category.Name}
	}
	return resp
}

// endregion

// region --- Public Handlers ---

// GetGames godoc
// @Summary      List games
// @Description  Lists games ordered by id. Both filters are optional and are combined with AND; unknown, negative or out-of-range ids yield an empty list.
// @Tags         games
// @Produce      json
// @Param        category  query     int  false  "Category ID"
// @Param        publisher query     int  false  "Publisher ID"
// @Success      200 {array}  GameResponse
// @Failure      400 {object} ErrorResponse "Filter is not an integer"
// @Failure      500 {object} ErrorResponse "Failed to retrieve games"
// @Router       /games [get]
func (h *Handler) GetGames(c *gin.Context) {
	category, ok := optionalIDQuery(c, "category")
	if !ok {
		abortWithError(c, http.StatusBadRequest, nil, "Invalid category id")
		return
	}
	publisher, ok := optionalIDQuery(c, "publisher")
	if !ok {
		abortWithError(c, http.StatusBadRequest, nil, "Invalid publisher id")
		return
	}
	if category.unmatchable || publisher.unmatchable {
		c.JSON(http.StatusOK, []GameResponse{})
		return
	}

	games, err := h.catalog.ListGames(c.Request.Context(), store.GameFilter{
		CategoryID:  category.id,
		PublisherID: publisher.id,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err, "Failed to retrieve games")
		return
	}

	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}
	c.JSON(http.StatusOK, response)
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Description  Retrieves a game with its publisher and category.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} GameResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Failure      500 {object} ErrorResponse "Failed to retrieve game"
// @Router       /games/{id} [get]
func (h *Handler) GetGameByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		abortWithError(c, http.StatusNotFound, nil, "Game not found")
		return
	}

	game, err := h.catalog.GetGame(c.Request.Context(), id)
	if errors.Is(err, store.ErrGameNotFound) {
		abortWithError(c, http.StatusNotFound, nil, "Game not found")
		return
	}
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err, "Failed to retrieve game")
		return
	}

	c.JSON(http.StatusOK, newGameResponse(game))
}

// endregion

// region --- Admin Handlers ---

// CreateGame godoc
// @Summary      Create a new game
// @Description  Creates a game. Title, description, category_id and publisher_id are required.
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Param        input body GameInput true "Game Info"
// @Success      201 {object} GameResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse "Failed to create game"
// @Router       /games [post]
func (h *Handler) CreateGame(c *gin.Context) {
	input, ok := bindGameInput(c)
	if !ok {
		return
	}

	switch {
	case input.Title == nil:
		abortWithError(c, http.StatusBadRequest, nil, "Missing required field: title")
		return
	case input.Description == nil:
		abortWithError(c, http.StatusBadRequest, nil, "Missing required field: description")
		return
	case input.CategoryID == nil:
		abortWithError(c, http.StatusBadRequest, nil, "Missing required field: category_id")
		return
	case input.PublisherID == nil:
		abortWithError(c, http.StatusBadRequest, nil, "Missing required field: publisher_id")
		return
	}

	game, err := h.catalog.CreateGame(c.Request.Context(), input.changes())
	if err != nil {
		writeWriteError(c, err, "Failed to create game")
		return
	}

	c.JSON(http.StatusCreated, newGameResponse(game))
}

// UpdateGame godoc
// @Summary      Update a game
// @Description  Updates the supplied fields of a game.
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Param        id    path      int       true  "Game ID"
// @Param        input body      GameInput true  "Fields to change"
// @Success      200   {object}  GameResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Game not found"
// @Failure      500   {object}  ErrorResponse "Failed to update game"
// @Router       /games/{id} [put]
func (h *Handler) UpdateGame(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		abortWithError(c, http.StatusNotFound, nil, "Game not found")
		return
	}

	input, ok := bindGameInput(c)
	if !ok {
		return
	}

	game, err := h.catalog.UpdateGame(c.Request.Context(), id, input.changes())
	if err != nil {
		writeWriteError(c, err, "Failed to update game")
		return
	}

	c.JSON(http.StatusOK, newGameResponse(game))
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Deletes an existing game.
// @Tags         admin-games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Failure      500 {object} ErrorResponse "Failed to delete game"
// @Router       /games/{id} [delete]
func (h *Handler) DeleteGame(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		abortWithError(c, http.StatusNotFound, nil, "Game not found")
		return
	}

	game, err := h.catalog.DeleteGame(c.Request.Context(), id)
	if err != nil {
		writeWriteError(c, err, "Failed to delete game")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Game '" + game.Title + "' deleted successfully"})
}

func bindGameInput(c *gin.Context) (GameInput, bool) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if errors.Is(err, io.EOF) {
			abortWithError(c, http.StatusBadRequest, nil, "No data provided")
			return input, false
		}
		abortWithError(c, http.StatusBadRequest, nil, err.Error())
		return input, false
	}
	if input.empty() {
		abortWithError(c, http.StatusBadRequest, nil, "No data provided")
		return input, false
	}
	return input, true
}

func writeWriteError(c *gin.Context, err error, fallback string) {
	var verr *models.ValidationError
	switch {
	case errors.Is(err, store.ErrGameNotFound):
		abortWithError(c, http.StatusNotFound, nil, "Game not found")
	case errors.Is(err, store.ErrCategoryNotFound):
		abortWithError(c, http.StatusBadRequest, nil, "Category not found")
	case errors.Is(err, store.ErrPublisherNotFound):
		abortWithError(c, http.StatusBadRequest, nil, "Publisher not found")
	case errors.As(err, &verr):
		abortWithError(c, http.StatusBadRequest, nil, verr.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, err, fallback)
	}
}

// endregion
