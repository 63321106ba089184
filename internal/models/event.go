// internal/models/event.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is the append-only analytics log. Rows are written once and never
// mutated; the admin dashboard only reads aggregates over them.
type Event struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Type      EventType  `json:"type" gorm:"type:varchar(30);not null;index"`
	UserID    *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`
	BrandID   *uuid.UUID `json:"brand_id,omitempty" gorm:"type:uuid;index"`
	Path      string     `json:"path,omitempty" gorm:"size:500"`
	Query     string     `json:"query,omitempty" gorm:"size:255"`
	Metadata  JSONB      `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time  `json:"created_at" gorm:"index"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
