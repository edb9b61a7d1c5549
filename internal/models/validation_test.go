package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameBeforeSave(t *testing.T) {
	tests := []struct {
		name    string
		game    Game
		wantErr string
	}{
		{name: "valid", game: Game{Title: "Pipeline Panic", Description: "Build your DevOps pipeline before chaos ensues"}},
		{name: "empty description", game: Game{Title: "Go"}, wantErr: "Description must be at least 10 characters"},
		{name: "blank description", game: Game{Title: "Go", Description: "          "}, wantErr: "Description must be at least 10 characters"},
		{name: "missing title", game: Game{Description: "A perfectly fine description"}, wantErr: "Game title cannot be empty"},
		{name: "short title", game: Game{Title: " x ", Description: "A perfectly fine description"}, wantErr: "Game title must be at least 2 characters"},
		{name: "short description", game: Game{Title: "Agile", Description: "too short"}, wantErr: "Description must be at least 10 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.game.BeforeSave(nil)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr))
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestCategoryAndPublisherNames(t *testing.T) {
	assert.NoError(t, (&Category{Name: "Strategy"}).BeforeSave(nil))
	assert.EqualError(t, (&Category{Name: "S"}).BeforeSave(nil), "Category name must be at least 2 characters")
	assert.NoError(t, (&Publisher{Name: "DevGames Inc"}).BeforeSave(nil))
	assert.EqualError(t, (&Publisher{}).BeforeSave(nil), "Publisher name cannot be empty")
}

func TestCategoryAndPublisherDescriptions(t *testing.T) {
	desc := func(s string) *string { return &s }

	assert.NoError(t, (&Category{Name: "Strategy"}).BeforeSave(nil), "unset description")
	assert.NoError(t, (&Category{Name: "Strategy", Description: desc("Plan ahead and outthink everyone.")}).BeforeSave(nil))
	assert.EqualError(t, (&Category{Name: "Strategy", Description: desc("")}).BeforeSave(nil),
		"Description must be at least 10 characters")
	assert.EqualError(t, (&Publisher{Name: "DevGames Inc", Description: desc("Short")}).BeforeSave(nil),
		"Description must be at least 10 characters")
}
