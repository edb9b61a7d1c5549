package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"tailspin/catalog/internal/database"
	"tailspin/catalog/internal/handler"
	"tailspin/catalog/internal/logging"
	"tailspin/catalog/internal/models"
	"tailspin/catalog/internal/server"
	"tailspin/catalog/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const gamesAPIPath = "/api/games"

type seeded struct {
	router     *gin.Engine
	db         *gorm.DB
	categories []models.Category
	publishers []models.Publisher
	games      []models.Game
}

func setupRouter(t *testing.T, adminWrites bool) *seeded {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect("sqlite::memory:")
	require.NoError(t, err)

	s := &seeded{db: db}
	s.publishers = []models.Publisher{{Name: "DevGames Inc"}, {Name: "Scrum Masters"}}
	s.categories = []models.Category{{Name: "Strategy"}, {Name: "Card Game"}}
	require.NoError(t, db.Create(&s.publishers).Error)
	require.NoError(t, db.Create(&s.categories).Error)

	r1, r2 := 4.5, 4.2
	s.games = []models.Game{
		{Title: "Pipeline Panic", Description: "Build your DevOps pipeline before chaos ensues",
			PublisherID: &s.publishers[0].ID, CategoryID: &s.categories[0].ID, StarRating: &r1},
		{Title: "Agile Adventures", Description: "Navigate your team through sprints and releases",
			PublisherID: &s.publishers[1].ID, CategoryID: &s.categories[1].ID, StarRating: &r2},
	}
	require.NoError(t, db.Create(&s.games).Error)

	h := handler.New(store.NewCatalog(db))
	s.router = server.NewAPI(h, server.APIOptions{
		Logger:            logging.NewWithWriter(io.Discard, "error", "json", "api"),
		EnableAdminWrites: adminWrites,
	})
	return s
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func TestGetGamesSuccess(t *testing.T) {
	s := setupRouter(t, false)

	w := do(t, s.router, http.MethodGet, gamesAPIPath, nil)
	require.Equal(t, http.StatusOK, w.Code)

	games := decode[[]handler.GameResponse](t, w)
	require.Len(t, games, len(s.games))
	for i, game := range games {
		assert.Equal(t, s.games[i].Title, game.Title)
		require.NotNil(t, game.Publisher)
		require.NotNil(t, game.Category)
		assert.Equal(t, s.publishers[i].Name, game.Publisher.Name)
		assert.Equal(t, s.categories[i].Name, game.Category.Name)
		require.NotNil(t, game.StarRating)
		assert.Equal(t, *s.games[i].StarRating, *game.StarRating)
	}
}

func TestGetGamesStructure(t *testing.T) {
	s := setupRouter(t, false)

	w := do(t, s.router, http.MethodGet, gamesAPIPath, nil)
	require.Equal(t, http.StatusOK, w.Code)

	raw := decode[[]map[string]any](t, w)
	require.NotEmpty(t, raw)
	for _, field := range []string{"id", "title", "description", "publisher", "category", "starRating"} {
		assert.Contains(t, raw[0], field)
	}
}

func TestGetGamesFilters(t *testing.T) {
	s := setupRouter(t, false)
	category := strconv.FormatUint(uint64(s.categories[1].ID), 10)
	publisher := strconv.FormatUint(uint64(s.publishers[1].ID), 10)
	otherPublisher := strconv.FormatUint(uint64(s.publishers[0].ID), 10)

	w := do(t, s.router, http.MethodGet, gamesAPIPath+"?category="+category, nil)
	require.Equal(t, http.StatusOK, w.Code)
	games := decode[[]handler.GameResponse](t, w)
	require.Len(t, games, 1)
	assert.Equal(t, "Agile Adventures", games[0].Title)

	w = do(t, s.router, http.MethodGet, gamesAPIPath+"?category="+category+"&publisher="+publisher, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]handler.GameResponse](t, w), 1)

	w = do(t, s.router, http.MethodGet, gamesAPIPath+"?category="+category+"&publisher="+otherPublisher, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, s.router, http.MethodGet, gamesAPIPath+"?category=9999", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, s.router, http.MethodGet, gamesAPIPath+"?publisher=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid publisher id", decode[handler.ErrorResponse](t, w).Error)

	// Integers that no row can carry are unknown ids, not bad requests.
	for _, query := range []string{
		"?category=-1",
		"?publisher=-5",
		"?category=99999999999999999999999",
		"?category=" + category + "&publisher=-5",
	} {
		w = do(t, s.router, http.MethodGet, gamesAPIPath+query, nil)
		assert.Equal(t, http.StatusOK, w.Code, query)
		assert.JSONEq(t, `[]`, w.Body.String(), query)
	}
}

func TestGetGameByIDSuccess(t *testing.T) {
	s := setupRouter(t, false)
	games := decode[[]handler.GameResponse](t, do(t, s.router, http.MethodGet, gamesAPIPath, nil))
	gameID := games[0].ID

	w := do(t, s.router, http.MethodGet, gamesAPIPath+"/"+strconv.FormatUint(uint64(gameID), 10), nil)
	require.Equal(t, http.StatusOK, w.Code)

	game := decode[handler.GameResponse](t, w)
	assert.Equal(t, gameID, game.ID)
	assert.Equal(t, "Pipeline Panic", game.Title)
	require.NotNil(t, game.Publisher)
	assert.Equal(t, "DevGames Inc", game.Publisher.Name)
}

func TestGetGameByIDNotFound(t *testing.T) {
	s := setupRouter(t, false)

	for _, path := range []string{gamesAPIPath + "/999", gamesAPIPath + "/0", gamesAPIPath + "/abc"} {
		w := do(t, s.router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "Game not found", decode[handler.ErrorResponse](t, w).Error, path)
	}
}

func TestGetCategoriesAndPublishers(t *testing.T) {
	s := setupRouter(t, false)

	w := do(t, s.router, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	categories := decode[[]handler.CategoryResponse](t, w)
	require.Len(t, categories, 2)
	assert.Equal(t, "Card Game", categories[0].Name)
	assert.Equal(t, "Strategy", categories[1].Name)
	for _, c := range categories {
		assert.EqualValues(t, 1, c.GameCount)
		assert.Nil(t, c.Description, "unset description is null")
	}
	assert.Contains(t, w.Body.String(), `"description":null`)

	w = do(t, s.router, http.MethodGet, "/api/publishers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	publishers := decode[[]handler.PublisherResponse](t, w)
	require.Len(t, publishers, 2)
	assert.Equal(t, "DevGames Inc", publishers[0].Name)
	assert.Contains(t, w.Body.String(), `"game_count":1`)
}

func TestWritesDisabledByDefault(t *testing.T) {
	s := setupRouter(t, false)

	w := do(t, s.router, http.MethodPost, gamesAPIPath, map[string]any{"title": "Test Game"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, s.router, http.MethodDelete, gamesAPIPath+"/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateGame(t *testing.T) {
	s := setupRouter(t, true)

	w := do(t, s.router, http.MethodPost, gamesAPIPath, map[string]any{
		"title":        "Test Game",
		"description":  "This is a test game description",
		"category_id":  s.categories[0].ID,
		"publisher_id": s.publishers[0].ID,
		"star_rating":  4.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	game := decode[handler.GameResponse](t, w)
	assert.NotZero(t, game.ID)
	assert.Equal(t, "Test Game", game.Title)
	assert.Equal(t, "This is a test game description", game.Description)
	require.NotNil(t, game.StarRating)
	assert.Equal(t, 4.0, *game.StarRating)
}

func TestCreateGameErrors(t *testing.T) {
	s := setupRouter(t, true)
	valid := func() map[string]any {
		return map[string]any{
			"title":        "Test Game",
			"description":  "This is a test game description",
			"category_id":  s.categories[0].ID,
			"publisher_id": s.publishers[0].ID,
		}
	}

	missingTitle := valid()
	delete(missingTitle, "title")
	badCategory := valid()
	badCategory["category_id"] = 99999
	badPublisher := valid()
	badPublisher["publisher_id"] = 99999
	shortTitle := valid()
	shortTitle["title"] = "X"
	blankDescription := valid()
	blankDescription["description"] = ""

	tests := []struct {
		name    string
		body    any
		wantMsg string
	}{
		{"missing title", missingTitle, "Missing required field: title"},
		{"invalid category", badCategory, "Category not found"},
		{"invalid publisher", badPublisher, "Publisher not found"},
		{"blank description", blankDescription, "Description must be at least 10 characters"},
		{"no data", nil, "No data provided"},
		{"empty object", map[string]any{}, "No data provided"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s.router, http.MethodPost, gamesAPIPath, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantMsg, decode[handler.ErrorResponse](t, w).Error)
		})
	}

	w := do(t, s.router, http.MethodPost, gamesAPIPath, shortTitle)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[handler.ErrorResponse](t, w).Error, "Title")
}

func TestUpdateGame(t *testing.T) {
	s := setupRouter(t, true)
	path := gamesAPIPath + "/" + strconv.FormatUint(uint64(s.games[0].ID), 10)

	w := do(t, s.router, http.MethodPut, path, map[string]any{"title": "Updated Game Title", "star_rating": 5.0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	game := decode[handler.GameResponse](t, w)
	assert.Equal(t, "Updated Game Title", game.Title)
	require.NotNil(t, game.StarRating)
	assert.Equal(t, 5.0, *game.StarRating)

	w = do(t, s.router, http.MethodPut, gamesAPIPath+"/999", map[string]any{"title": "Updated Game Title"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Game not found", decode[handler.ErrorResponse](t, w).Error)

	w = do(t, s.router, http.MethodPut, path, map[string]any{"category_id": 99999})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category not found", decode[handler.ErrorResponse](t, w).Error)

	w = do(t, s.router, http.MethodPut, path, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No data provided", decode[handler.ErrorResponse](t, w).Error)
}

func TestDeleteGame(t *testing.T) {
	s := setupRouter(t, true)
	path := gamesAPIPath + "/" + strconv.FormatUint(uint64(s.games[0].ID), 10)

	w := do(t, s.router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Game 'Pipeline Panic' deleted successfully", decode[handler.MessageResponse](t, w).Message)

	assert.Equal(t, http.StatusNotFound, do(t, s.router, http.MethodGet, path, nil).Code)

	w = do(t, s.router, http.MethodDelete, gamesAPIPath+"/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Game not found", decode[handler.ErrorResponse](t, w).Error)
}

// brokenCatalog fails every call the way a lost database connection would.
type brokenCatalog struct{}

var errStore = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

func (brokenCatalog) ListGames(context.Context, store.GameFilter) ([]models.Game, error) {
	return nil, errStore
}
func (brokenCatalog) GetGame(context.Context, uint) (models.Game, error) {
	return models.Game{}, errStore
}
func (brokenCatalog) ListCategories(context.Context) ([]store.CategoryCount, error) {
	return nil, errStore
}
func (brokenCatalog) ListPublishers(context.Context) ([]store.PublisherCount, error) {
	return nil, errStore
}
func (brokenCatalog) CreateGame(context.Context, store.GameChanges) (models.Game, error) {
	return models.Game{}, errStore
}
func (brokenCatalog) UpdateGame(context.Context, uint, store.GameChanges) (models.Game, error) {
	return models.Game{}, errStore
}
func (brokenCatalog) DeleteGame(context.Context, uint) (models.Game, error) {
	return models.Game{}, errStore
}

func TestStoreErrorsAre500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := server.NewAPI(handler.New(brokenCatalog{}), server.APIOptions{
		Logger: logging.NewWithWriter(io.Discard, "error", "json", "api"),
	})

	tests := map[string]string{
		gamesAPIPath:       "Failed to retrieve games",
		gamesAPIPath + "/1": "Failed to retrieve game",
		"/api/categories":  "Failed to retrieve categories",
		"/api/publishers":  "Failed to retrieve publishers",
	}
	for path, msg := range tests {
		w := do(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Equal(t, msg, decode[handler.ErrorResponse](t, w).Error, path)
		assert.NotContains(t, w.Body.String(), "connection refused")
	}
}

func TestPing(t *testing.T) {
	s := setupRouter(t, false)

	w := do(t, s.router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
