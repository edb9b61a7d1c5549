// Package store implements the catalog queries behind the REST surface.
package store

import (
	"context"
	"errors"
	"fmt"

	"tailspin/catalog/internal/models"

	"gorm.io/gorm"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrPublisherNotFound = errors.New("publisher not found")
)

// GameFilter restricts ListGames. Nil fields are not applied; set fields
// are combined with AND.
type GameFilter struct {
	CategoryID  *uint
	PublisherID *uint
}

// CategoryCount is a category together with the number of games that
// currently reference it.
type CategoryCount struct {
	ID          uint
	Name        string
	Description *string
	GameCount   int64
}

// PublisherCount is a publisher together with the number of games that
// currently reference it.
type PublisherCount struct {
	ID          uint
	Name        string
	Description *string
	GameCount   int64
}

// GameChanges carries the fields of a game write. Nil fields are left
// untouched on update.
type GameChanges struct {
	Title       *string
	Description *string
	CategoryID  *uint
	PublisherID *uint
	StarRating  *float64
}

// Catalog reads and writes games, categories and publishers.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

func (s *Catalog) gamesQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Game{}).
		Preload("Publisher").
		Preload("Category")
}

// ListGames returns the games matching f, ordered by id.
func (s *Catalog) ListGames(ctx context.Context, f GameFilter) ([]models.Game, error) {
	q := s.gamesQuery(ctx)
	if f.CategoryID != nil {
		q = q.Where("games.category_id = ?", *f.CategoryID)
	}
	if f.PublisherID != nil {
		q = q.Where("games.publisher_id = ?", *f.PublisherID)
	}

	games := []models.Game{}
	if err := q.Order("games.id ASC").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// GetGame returns the game with the given id or ErrGameNotFound.
func (s *Catalog) GetGame(ctx context.Context, id uint) (models.Game, error) {
	var game models.Game
	err := s.gamesQuery(ctx).Where("games.id = ?", id).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Game{}, ErrGameNotFound
	}
	if err != nil {
		return models.Game{}, fmt.Errorf("get game %d: %w", id, err)
	}
	return game, nil
}

// ListCategories returns every category sorted by name, each with its
// current game count.
func (s *Catalog) ListCategories(ctx context.Context) ([]CategoryCount, error) {
	rows := []CategoryCount{}
	err := s.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("categories.id, categories.name, categories.description, COUNT(games.id) AS game_count").
		Joins("LEFT JOIN games ON games.category_id = categories.id AND games.deleted_at IS NULL").
		Group("categories.id, categories.name, categories.description").
		Order("categories.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return rows, nil
}

// ListPublishers returns every publisher sorted by name, each with its
// current game count.
func (s *Catalog) ListPublishers(ctx context.Context) ([]PublisherCount, error) {
	rows := []PublisherCount{}
	err := s.db.WithContext(ctx).
		Model(&models.Publisher{}).
		Select("publishers.id, publishers.name, publishers.description, COUNT(games.id) AS game_count").
		Joins("LEFT JOIN games ON games.publisher_id = publishers.id AND games.deleted_at IS NULL").
		Group("publishers.id, publishers.name, publishers.description").
		Order("publishers.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}
	return rows, nil
}

// CreateGame inserts a game. Title, description, category and publisher
// must be set by the caller.
func (s *Catalog) CreateGame(ctx context.Context, in GameChanges) (models.Game, error) {
	var id uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, in); err != nil {
			return err
		}
		game := models.Game{
			CategoryID:  in.CategoryID,
			PublisherID: in.PublisherID,
			StarRating:  in.StarRating,
		}
		if in.Title != nil {
			game.Title = *in.Title
		}
		if in.Description != nil {
			game.Description = *in.Description
		}
		if err := tx.Create(&game).Error; err != nil {
			return fmt.Errorf("create game: %w", err)
		}
		id = game.ID
		return nil
	})
	if err != nil {
		return models.Game{}, err
	}
	return s.GetGame(ctx, id)
}

// UpdateGame applies the non-nil fields of in to the game with the given id.
func (s *Catalog) UpdateGame(ctx context.Context, id uint, in GameChanges) (models.Game, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGameNotFound
			}
			return fmt.Errorf("load game %d: %w", id, err)
		}
		if err := checkReferences(tx, in); err != nil {
			return err
		}

		if in.Title != nil {
			game.Title = *in.Title
		}
		if in.Description != nil {
			game.Description = *in.Description
		}
		if in.CategoryID != nil {
			game.CategoryID = in.CategoryID
		}
		if in.PublisherID != nil {
			game.PublisherID = in.PublisherID
		}
		if in.StarRating != nil {
			game.StarRating = in.StarRating
		}
		if err := tx.Omit("Category", "Publisher").Save(&game).Error; err != nil {
			return fmt.Errorf("update game %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return models.Game{}, err
	}
	return s.GetGame(ctx, id)
}

// DeleteGame removes the game with the given id and returns it as it was.
func (s *Catalog) DeleteGame(ctx context.Context, id uint) (models.Game, error) {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		return models.Game{}, err
	}
	result := s.db.WithContext(ctx).Delete(&models.Game{}, id)
	if result.Error != nil {
		return models.Game{}, fmt.Errorf("delete game %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.Game{}, ErrGameNotFound
	}
	return game, nil
}

func checkReferences(tx *gorm.DB, in GameChanges) error {
	if in.CategoryID != nil {
		var n int64
		if err := tx.Model(&models.Category{}).Where("id = ?", *in.CategoryID).Count(&n).Error; err != nil {
			return fmt.Errorf("check category: %w", err)
		}
		if n == 0 {
			return ErrCategoryNotFound
		}
	}
	if in.PublisherID != nil {
		var n int64
		if err := tx.Model(&models.Publisher{}).Where("id = ?", *in.PublisherID).Count(&n).Error; err != nil {
			return fmt.Errorf("check publisher: %w", err)
		}
		if n == 0 {
			return ErrPublisherNotFound
		}
	}
	return nil
}
