package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review belongs to exactly one beer. BeerName is denormalized from the
// beer so reviews can be filtered by name without a join.
//
// The composite unique index on (username, beer_name) enforces one review
// per user per beer at the store level, so two concurrent creations for
// the same pair cannot both slip past the duplicate check.
type Review struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string    `gorm:"not null;index:idx_reviews_user_beer,unique" json:"username"`
	Score       float64   `gorm:"not null;index;check:score > 0 AND score <= 10" json:"score"`
	Comment     *string   `json:"comment,omitempty"`
	BeerName    string    `gorm:"not null;index:idx_reviews_user_beer,unique" json:"beer_name"`
	BeerID      uuid.UUID `gorm:"type:uuid;not null;index" json:"beer_id"`
	DateCreated time.Time `gorm:"autoCreateTime" json:"date_created"`
	LastUpdated time.Time `gorm:"autoUpdateTime" json:"last_updated"`

	Beer *Beer `gorm:"foreignKey:BeerID" json:"beer,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

// BeforeCreate assigns the generated identifier.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
