package models

import "gorm.io/gorm"

// Game represents a crowdfunding game in the catalog.
type Game struct {
	gorm.Model
	Title       string   `gorm:"size:100;not null"`
	Description string   `gorm:"type:text;not null"`
	StarRating  *float64 `gorm:"column:star_rating"`

	// Both associations are optional; the store enforces that a set id resolves.
	CategoryID  *uint `gorm:"index"`
	PublisherID *uint `gorm:"index"`

	Category  *Category  `gorm:"foreignKey:CategoryID"`
	Publisher *Publisher `gorm:"foreignKey:PublisherID"`
}

// BeforeSave validates string lengths before every insert or update.
func (g *Game) BeforeSave(tx *gorm.DB) error {
	if err := validateRequired("Game title", g.Title, 2); err != nil {
		return err
	}
	return validateLength("Description", g.Description, 10)
}
