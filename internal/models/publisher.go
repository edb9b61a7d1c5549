package models

import "gorm.io/gorm"

// Publisher is the studio or company behind a game.
type Publisher struct {
	gorm.Model
	Name        string  `gorm:"size:100;uniqueIndex;not null"`
	Description *string `gorm:"type:text"`

	Games []Game `gorm:"foreignKey:PublisherID"`
}

func (p *Publisher) BeforeSave(tx *gorm.DB) error {
	if err := validateRequired("Publisher name", p.Name, 2); err != nil {
		return err
	}
	return validateOptional("Description", p.Description, 10)
}
