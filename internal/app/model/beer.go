package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Beer belongs to exactly one brewery. Company carries the brewery name
// alongside CompanyID so clients can create beers by brewery name alone.
//
// Score is the running mean of all review scores for this beer. It is
// maintained incrementally on review writes, never recomputed on read.
type Beer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Company     string    `gorm:"index;not null" json:"company"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Score       float64   `gorm:"default:0;index" json:"score"`
	DateCreated time.Time `gorm:"autoCreateTime" json:"date_created"`
	LastUpdated time.Time `gorm:"autoUpdateTime" json:"last_updated"`

	Brewery *Brewery `gorm:"foreignKey:CompanyID" json:"brewery,omitempty"`
	Reviews []Review `gorm:"foreignKey:BeerID" json:"reviews,omitempty"`
}

func (Beer) TableName() string {
	return "beers"
}

// BeforeCreate assigns the generated identifier.
func (b *Beer) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
