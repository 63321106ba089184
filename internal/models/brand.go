// internal/models/brand.go
package models

import (
	"github.com/google/uuid"
)

type Brand struct {
	BaseModel
	Slug             string           `json:"slug" gorm:"uniqueIndex;size:140;not null"`
	Name             string           `json:"name" gorm:"size:120;not null"`
	Tagline          string           `json:"tagline" gorm:"size:180"`
	ShortDescription string           `json:"short_description" gorm:"size:300"`
	LongDescription  string           `json:"long_description" gorm:"type:text"`
	City             string           `json:"city" gorm:"size:120;index"`
	Latitude         *float64         `json:"latitude"`
	Longitude        *float64         `json:"longitude"`
	RegionID         *uuid.UUID       `json:"region_id" gorm:"type:uuid;index"`
	SectorID         *uuid.UUID       `json:"sector_id" gorm:"type:uuid;index"`
	WebsiteURL       string           `json:"website_url" gorm:"size:500"`
	LogoURL          string           `json:"logo_url" gorm:"size:500"`
	SocialLinks      JSONB            `json:"social_links" gorm:"type:jsonb"`
	Status           BrandStatus      `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier" gorm:"type:varchar(20);default:'free'"`
	StripeCustomerID string           `json:"-" gorm:"size:255"`
	OwnerID          *uuid.UUID       `json:"owner_id,omitempty" gorm:"type:uuid;index"`

	// External-source bookkeeping for imported brands
	ExternalSource string `json:"external_source,omitempty" gorm:"size:40"`

	// Relationships
	Region   *Region   `json:"region,omitempty" gorm:"foreignKey:RegionID"`
	Sector   *Sector   `json:"sector,omitempty" gorm:"foreignKey:SectorID"`
	Owner    *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Labels   []Label   `json:"labels,omitempty" gorm:"many2many:brand_labels"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:BrandID"`
}

// BrandLabel is the brands<->labels join row. (brand_id, label_id) is the
// composite key; re-adding an existing pair must stay a no-op.
type BrandLabel struct {
	BrandID uuid.UUID `json:"brand_id" gorm:"type:uuid;primaryKey"`
	LabelID uuid.UUID `json:"label_id" gorm:"type:uuid;primaryKey"`
}

func (BrandLabel) TableName() string {
	return "brand_labels"
}
