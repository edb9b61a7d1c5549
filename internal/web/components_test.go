package web

import (
	"bytes"
	"context"
	"testing"

	"tailspin/catalog/internal/apiclient"
	"tailspin/catalog/internal/listview"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, render func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, render(&buf))
	return buf.String()
}

func TestGameCardEscapesText(t *testing.T) {
	rating := 4.5
	g := apiclient.Game{
		ID:         7,
		Title:      `<script>alert("x")</script>`,
		Category:   &apiclient.Ref{ID: 1, Name: "Tools & Toys"},
		StarRating: &rating,
	}
	html := renderString(t, func(b *bytes.Buffer) error { return gameCard(g).Render(context.Background(), b) })

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, `data-game-id="7"`)
	assert.Contains(t, html, `<a href="/game/7">`)
	assert.Contains(t, html, `data-testid="game-category">Tools &amp; Toys</span>`)
	assert.NotContains(t, html, `data-testid="game-publisher"`)
	assert.Contains(t, html, `<span class="rating" data-testid="game-rating">4.5 ★</span>`)
}

func TestGameListPhases(t *testing.T) {
	cases := []struct {
		name   string
		view   listview.View
		want   string
		absent string
	}{
		{"loading", listview.View{Phase: listview.PhaseLoading}, `data-testid="games-loading"`, `data-testid="games-grid"`},
		{"error", listview.View{Phase: listview.PhaseError, Err: listview.LoadErrorMessage}, listview.LoadErrorMessage, `data-testid="no-games"`},
		{"empty", listview.View{Phase: listview.PhaseLoaded}, listview.EmptyMessage, `data-testid="games-error"`},
		{"loaded", listview.View{Phase: listview.PhaseLoaded, Games: []apiclient.Game{{ID: 1, Title: "Pipeline Panic"}}}, `data-testid="games-grid"`, `data-testid="no-games"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			html := renderString(t, func(b *bytes.Buffer) error { return GameList(tc.view).Render(context.Background(), b) })
			assert.Contains(t, html, tc.want)
			assert.NotContains(t, html, tc.absent)
		})
	}
}

func TestFilterFormMarksSelection(t *testing.T) {
	v := listview.View{
		Phase:      listview.PhaseLoaded,
		Filters:    listview.Filters{PublisherID: 2},
		Categories: []apiclient.Category{{ID: 1, Name: "Strategy"}},
		Publishers: []apiclient.Publisher{{ID: 1, Name: "Alpha"}, {ID: 2, Name: "Beta"}},
	}
	html := renderString(t, func(b *bytes.Buffer) error { return filterForm(v).Render(context.Background(), b) })

	assert.Contains(t, html, `<option value="1">Strategy</option>`)
	assert.Contains(t, html, `<option value="1">Alpha</option>`)
	assert.Contains(t, html, `<option value="2" selected>Beta</option>`)
	assert.Contains(t, html, `<a href="/" data-testid="clear-filters">Clear filters</a>`)

	v.Filters = listview.Filters{}
	html = renderString(t, func(b *bytes.Buffer) error { return filterForm(v).Render(context.Background(), b) })
	assert.NotContains(t, html, "selected")
	assert.NotContains(t, html, `data-testid="clear-filters"`)
}

func TestLayoutWrapsBody(t *testing.T) {
	html := renderString(t, func(b *bytes.Buffer) error {
		return Layout("About", Message("Heading", "Detail & more", "custom-id")).Render(context.Background(), b)
	})

	assert.Contains(t, html, "<title>About - Tailspin Toys</title>")
	assert.Contains(t, html, `<main><section data-testid="custom-id"><h1>Heading</h1><p>Detail &amp; more</p>`)
}

func TestRenderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	assert.ErrorIs(t, About().Render(ctx, &buf), context.Canceled)
	assert.Empty(t, buf.String())
}
