// Package listview holds the state of a filterable game list.
//
// A Controller owns a single View and changes it only through its
// transitions: Mount, SelectCategory, SelectPublisher and ClearFilters.
// Each list fetch is tagged with a generation; a completion that arrives
// after a newer fetch has started is discarded.
package listview

import (
	"context"
	"errors"
	"sync"

	"tailspin/catalog/internal/apiclient"
)

// Phase is the lifecycle state of the game list.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseLoaded
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Messages shown to the user.
const (
	LoadErrorMessage = "Failed to load games. Please try again later."
	EmptyMessage     = "No games available"
)

// Source is the API surface the list reads from.
type Source interface {
	ListGames(ctx context.Context, f apiclient.GameFilter) ([]apiclient.Game, error)
	ListCategories(ctx context.Context) ([]apiclient.Category, error)
	ListPublishers(ctx context.Context) ([]apiclient.Publisher, error)
}

// Filters holds the selected filter values; 0 means "All".
type Filters struct {
	CategoryID  uint
	PublisherID uint
}

func (f Filters) gameFilter() apiclient.GameFilter {
	return apiclient.GameFilter{CategoryID: f.CategoryID, PublisherID: f.PublisherID}
}

// View is a snapshot of the list state.
type View struct {
	Phase      Phase
	Filters    Filters
	Games      []apiclient.Game
	Categories []apiclient.Category
	Publishers []apiclient.Publisher
	// Err is the user-facing message in PhaseError.
	Err string
	// Cause is the underlying error in PhaseError.
	Cause error
	// OptionsErr is set when the filter options could not be loaded; the
	// list itself may still be usable.
	OptionsErr error
	// Generation identifies the list fetch this view reflects.
	Generation uint64
}

// HasActiveFilters reports whether the clear-filters control should show.
func (v View) HasActiveFilters() bool {
	return v.Filters.CategoryID != 0 || v.Filters.PublisherID != 0
}

// IsEmpty reports a successful load with no games, which is not an error.
func (v View) IsEmpty() bool {
	return v.Phase == PhaseLoaded && len(v.Games) == 0
}

// Controller drives one list view.
type Controller struct {
	src Source

	mu   sync.Mutex
	view View
}

// New returns a controller in PhaseLoading with no filters.
func New(src Source) *Controller {
	return &Controller{src: src, view: View{Phase: PhaseLoading}}
}

// View returns a copy of the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() View {
	v := c.view
	v.Games = append([]apiclient.Game(nil), c.view.Games...)
	v.Categories = append([]apiclient.Category(nil), c.view.Categories...)
	v.Publishers = append([]apiclient.Publisher(nil), c.view.Publishers...)
	return v
}

// Mount loads the filter options and the game list for initial in parallel.
// The two fetches are independent: a failure loading options does not move
// the list into PhaseError.
func (c *Controller) Mount(ctx context.Context, initial Filters) View {
	gen, _ := c.begin(func(f *Filters) { *f = initial })

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.loadOptions(ctx)
	}()
	go func() {
		defer wg.Done()
		c.loadGames(ctx, gen, initial)
	}()
	wg.Wait()

	return c.View()
}

// SelectCategory sets the category filter (0 for "All") and re-fetches.
func (c *Controller) SelectCategory(ctx context.Context, id uint) View {
	return c.refetch(ctx, func(f *Filters) { f.CategoryID = id })
}

// SelectPublisher sets the publisher filter (0 for "All") and re-fetches.
func (c *Controller) SelectPublisher(ctx context.Context, id uint) View {
	return c.refetch(ctx, func(f *Filters) { f.PublisherID = id })
}

// ClearFilters resets both filters and re-fetches the unfiltered list.
func (c *Controller) ClearFilters(ctx context.Context) View {
	return c.refetch(ctx, func(f *Filters) { *f = Filters{} })
}

func (c *Controller) refetch(ctx context.Context, change func(*Filters)) View {
	gen, filters := c.begin(change)
	c.loadGames(ctx, gen, filters)
	return c.View()
}

// begin applies a filter change, enters PhaseLoading and returns the new
// generation with the filters it fetches.
func (c *Controller) begin(change func(*Filters)) (uint64, Filters) {
	c.mu.Lock()
	defer c.mu.Unlock()

	change(&c.view.Filters)
	c.view.Generation++
	c.view.Phase = PhaseLoading
	c.view.Err = ""
	c.view.Cause = nil
	return c.view.Generation, c.view.Filters
}

func (c *Controller) loadGames(ctx context.Context, gen uint64, f Filters) {
	games, err := c.src.ListGames(ctx, f.gameFilter())

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.view.Generation {
		return
	}
	if err != nil {
		c.view.Phase = PhaseError
		c.view.Games = nil
		c.view.Err = LoadErrorMessage
		c.view.Cause = err
		return
	}
	c.view.Phase = PhaseLoaded
	c.view.Games = games
}

func (c *Controller) loadOptions(ctx context.Context) {
	categories, catErr := c.src.ListCategories(ctx)
	publishers, pubErr := c.src.ListPublishers(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Categories = categories
	c.view.Publishers = publishers
	c.view.OptionsErr = errors.Join(catErr, pubErr)
}
