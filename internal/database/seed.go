package database

import (
	"context"
	"fmt"

	"tailspin/catalog/internal/models"

	"gorm.io/gorm"
)

type seedGame struct {
	title       string
	description string
	category    string
	publisher   string
	rating      float64
}

var (
	seedCategories = []models.Category{
		{Name: "Strategy", Description: text("Plan ahead, outthink your opponents and manage scarce resources.")},
		{Name: "Card Game", Description: text("Decks, draws and hands full of tough decisions.")},
		{Name: "Party Game", Description: text("Quick rules and loud tables for larger groups.")},
		{Name: "Cooperative", Description: text("Everyone wins or everyone loses against the game itself.")},
	}

	seedPublishers = []models.Publisher{
		{Name: "DevGames Inc", Description: text("Tabletop games for people who ship software.")},
		{Name: "Scrum Masters", Description: text("Fast-paced games about teams, sprints and retrospectives.")},
		{Name: "Kernel Panic Studios", Description: text("Puzzle and logic games with a systems twist.")},
	}

	seedGames = []seedGame{
		{"Pipeline Panic", "Build your DevOps pipeline before chaos ensues.", "Strategy", "DevGames Inc", 4.5},
		{"Agile Adventures", "Navigate your team through sprints and releases.", "Card Game", "Scrum Masters", 4.2},
		{"Merge Conflict", "Race to land your branch before someone else rewrites history.", "Party Game", "DevGames Inc", 3.9},
		{"On-Call Odyssey", "Survive a week of pages together without burning out.", "Cooperative", "Kernel Panic Studios", 4.7},
		{"Stand-up Showdown", "Give the shortest status update without missing a blocker.", "Party Game", "Scrum Masters", 3.6},
		{"Deadlock", "Acquire resources in the right order or stall the whole table.", "Strategy", "Kernel Panic Studios", 4.1},
		{"Refactor Rally", "Pay down technical debt faster than your rivals accumulate it.", "Card Game", "DevGames Inc", 4.0},
	}
)

func text(s string) *string { return &s }

// Seed loads the demo catalog. It does nothing when games already exist.
func Seed(ctx context.Context, db *gorm.DB) (int, error) {
	var existing int64
	if err := db.WithContext(ctx).Model(&models.Game{}).Count(&existing).Error; err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := make(map[string]uint, len(seedCategories))
		for _, c := range seedCategories {
			c := c
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("create category %q: %w", c.Name, err)
			}
			categories[c.Name] = c.ID
		}

		publishers := make(map[string]uint, len(seedPublishers))
		for _, p := range seedPublishers {
			p := p
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("create publisher %q: %w", p.Name, err)
			}
			publishers[p.Name] = p.ID
		}

		for _, g := range seedGames {
			categoryID := categories[g.category]
			publisherID := publishers[g.publisher]
			rating := g.rating
			game := models.Game{
				Title:       g.title,
				Description: g.description,
				StarRating:  &rating,
				CategoryID:  &categoryID,
				PublisherID: &publisherID,
			}
			if err := tx.Create(&game).Error; err != nil {
				return fmt.Errorf("create game %q: %w", g.title, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
