package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Brewery owns zero or more beers, linked through Beer.CompanyID.
type Brewery struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	DateCreated time.Time `gorm:"autoCreateTime" json:"date_created"`
	LastUpdated time.Time `gorm:"autoUpdateTime" json:"last_updated"`

	Beers []Beer `gorm:"foreignKey:CompanyID" json:"beers,omitempty"`
}

func (Brewery) TableName() string {
	return "breweries"
}

// BeforeCreate assigns the generated identifier.
func (b *Brewery) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
