package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.RequestURI()]; ok {
			h(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"Game not found"}`)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client())
}

func reply(status int, body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestListGamesSendsFilters(t *testing.T) {
	c := newServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/games":                        reply(http.StatusOK, `[{"id":1,"title":"Pipeline Panic","category":{"id":1,"name":"Strategy"},"publisher":null,"starRating":4.5}]`),
		"/api/games?category=2&publisher=3": reply(http.StatusOK, `[]`),
	})
	ctx := context.Background()

	games, err := c.ListGames(ctx, GameFilter{})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Pipeline Panic", games[0].Title)
	require.NotNil(t, games[0].Category)
	assert.Equal(t, "Strategy", games[0].Category.Name)
	assert.Nil(t, games[0].Publisher)

	games, err = c.ListGames(ctx, GameFilter{CategoryID: 2, PublisherID: 3})
	require.NoError(t, err)
	assert.NotNil(t, games)
	assert.Empty(t, games)
}

func TestGetGameNotFound(t *testing.T) {
	c := newServer(t, nil)

	_, err := c.GetGame(context.Background(), 99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatusErrorCarriesMessage(t *testing.T) {
	c := newServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/categories": reply(http.StatusInternalServerError, `{"error":"Failed to retrieve categories"}`),
		"/api/publishers": reply(http.StatusBadGateway, `{"error": "Failed to reach API server"}`),
	})

	_, err := c.ListCategories(context.Background())
	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusInternalServerError, serr.StatusCode)
	assert.Equal(t, "Failed to retrieve categories", serr.Message)

	_, err = c.ListPublishers(context.Background())
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusBadGateway, serr.StatusCode)
}

func TestRejectsPayloadsOutsideSchema(t *testing.T) {
	c := newServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/games":      reply(http.StatusOK, `[{"id":1,"title":""}]`),
		"/api/games/1":    reply(http.StatusOK, `{"id":1,"title":"Deadlock","starRating":9}`),
		"/api/categories": reply(http.StatusOK, `[{"id":1,"name":"Strategy","game_count":-1}]`),
		"/api/publishers": reply(http.StatusOK, `{"not":"a list"}`),
	})
	ctx := context.Background()

	_, err := c.ListGames(ctx, GameFilter{})
	assert.ErrorIs(t, err, ErrInvalidPayload)
	_, err = c.GetGame(ctx, 1)
	assert.ErrorIs(t, err, ErrInvalidPayload)
	_, err = c.ListCategories(ctx)
	assert.ErrorIs(t, err, ErrInvalidPayload)
	_, err = c.ListPublishers(ctx)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).ListGames(context.Background(), GameFilter{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	var serr *StatusError
	assert.False(t, errors.As(err, &serr))
}
