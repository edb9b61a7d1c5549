package models

import "gorm.io/gorm"

// Category groups games by genre (e.g. "Strategy", "Card Game").
type Category struct {
	gorm.Model
	Name        string  `gorm:"size:100;uniqueIndex;not null"`
	Description *string `gorm:"type:text"`

	Games []Game `gorm:"foreignKey:CategoryID"`
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	if err := validateRequired("Category name", c.Name, 2); err != nil {
		return err
	}
	return validateOptional("Description", c.Description, 10)
}
