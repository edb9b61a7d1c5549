// Package web serves the server-rendered catalog pages.
package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"tailspin/catalog/internal/apiclient"
	"tailspin/catalog/internal/listview"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Catalog is the API surface the pages read from.
type Catalog interface {
	listview.Source
	GetGame(ctx context.Context, id uint) (apiclient.Game, error)
}

// Pages renders the site's HTML pages.
type Pages struct {
	api    Catalog
	logger zerolog.Logger
}

func NewPages(api Catalog, logger zerolog.Logger) *Pages {
	return &Pages{api: api, logger: logger}
}

// render writes page with status. The component is buffered, so a render
// failure still produces a clean 500.
func (p *Pages) render(c *gin.Context, status int, page templ.Component) {
	templ.Handler(page,
		templ.WithStatus(status),
		templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
			_ = c.Error(err)
			p.logger.Error().Err(err).Str("path", r.URL.Path).Msg("render page")
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			})
		}),
	).ServeHTTP(c.Writer, c.Request)
}

// queryID reads an optional filter id; anything unparseable means "All".
func queryID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// Home lists games with the category and publisher filters from the query.
// The filter form submits with GET, so a filter change arrives as a new
// request and mounts a fresh controller with the selected filters.
func (p *Pages) Home(c *gin.Context) {
	ctl := listview.New(p.api)
	view := ctl.Mount(c.Request.Context(), listview.Filters{
		CategoryID:  queryID(c, "category"),
		PublisherID: queryID(c, "publisher"),
	})

	if view.Cause != nil {
		p.logger.Warn().Err(view.Cause).Msg("load games")
	}
	if view.OptionsErr != nil {
		p.logger.Warn().Err(view.OptionsErr).Msg("load filter options")
	}

	p.render(c, http.StatusOK, Layout("Crowdfunding Games", GameList(view)))
}

// GameDetails shows a single game. Unknown ids get a not-found page.
func (p *Pages) GameDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		p.notFound(c)
		return
	}

	game, err := p.api.GetGame(c.Request.Context(), uint(id))
	switch {
	case errors.Is(err, apiclient.ErrNotFound):
		p.notFound(c)
	case err != nil:
		p.logger.Warn().Err(err).Uint64("game_id", id).Msg("load game")
		p.render(c, http.StatusBadGateway, Layout("Error",
			Message("Something went wrong", "The game could not be loaded. Please try again later.", "game-error")))
	default:
		p.render(c, http.StatusOK, Layout(game.Title, GameDetails(game)))
	}
}

// About is a static page.
func (p *Pages) About(c *gin.Context) {
	p.render(c, http.StatusOK, Layout("About", About()))
}

// NotFound renders the not-found page for unrouted paths.
func (p *Pages) NotFound(c *gin.Context) {
	p.render(c, http.StatusNotFound, Layout("Page Not Found",
		Message("Page not found", "There is nothing at this address.", "page-not-found")))
}

func (p *Pages) notFound(c *gin.Context) {
	p.render(c, http.StatusNotFound, Layout("Game Not Found",
		Message("Game not found", "The game you are looking for does not exist.", "game-not-found")))
}
