// internal/models/favorite.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite joins a user to a brand. At most one row exists per
// (user_id, brand_id); adding a duplicate is treated as idempotent success.
type Favorite struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_brand"`
	BrandID   uuid.UUID `json:"brand_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_brand"`
	CreatedAt time.Time `json:"created_at"`

	Brand *Brand `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
