// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	BrandID          uuid.UUID     `json:"brand_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_products_brand_slug"`
	Slug             string        `json:"slug" gorm:"size:140;not null;uniqueIndex:idx_products_brand_slug"`
	Name             string        `json:"name" gorm:"size:255;not null"`
	ShortDescription string        `json:"short_description" gorm:"size:300"`
	LongDescription  string        `json:"long_description" gorm:"type:text"`
	PriceMin         *decimal.Decimal `json:"price_min" gorm:"type:decimal(10,2)"`
	PriceMax         *decimal.Decimal `json:"price_max" gorm:"type:decimal(10,2)"`
	ImageURL         string        `json:"image_url" gorm:"size:500"`
	Status           ProductStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`

	// Enrichment metadata, empty until a batch run fills it
	Tags       StringList `json:"tags" gorm:"type:text"`
	Materials  StringList `json:"materials" gorm:"type:text"`
	Attributes JSONB      `json:"attributes" gorm:"type:jsonb"`

	// External-source bookkeeping; the scraper upserts on
	// (brand_id, external_source, external_id)
	ExternalSource  ExternalSource `json:"external_source,omitempty" gorm:"size:40;index:idx_products_external"`
	ExternalID      string         `json:"external_id,omitempty" gorm:"size:255;index:idx_products_external"`
	ExternalURL     string         `json:"external_url,omitempty" gorm:"size:500"`
	ExternalPayload JSONB          `json:"-" gorm:"type:jsonb"`

	// Relationships
	Brand *Brand `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
}

// HasPrice reports whether the product carries any listed price.
func (p *Product) HasPrice() bool {
	return p.PriceMin != nil || p.PriceMax != nil
}

// NeedsEnrichment is the candidate predicate of the AI enrichment run: only
// active products with no tags yet are selected.
func (p *Product) NeedsEnrichment() bool {
	return p.Status == ProductStatusActive && len(p.Tags) == 0
}
