// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields. The UUID primary key is assigned in
// BeforeCreate rather than by a column default, so the same models migrate
// onto both the postgres and sqlite drivers.
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}

	return json.Unmarshal(bytes, j)
}

// StringList is a JSON-encoded string slice column. It backs the enrichment
// fields (tags, materials) and works on both the postgres and sqlite drivers.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}

	return json.Unmarshal(bytes, l)
}

// Enums
type BrandStatus string

const (
	BrandStatusDraft         BrandStatus = "draft"
	BrandStatusPendingReview BrandStatus = "pending_review"
	BrandStatusActive        BrandStatus = "active"
	BrandStatusSuspended     BrandStatus = "suspended"
	BrandStatusRejected      BrandStatus = "rejected"
)

type ProductStatus string

const (
	ProductStatusDraft        ProductStatus = "draft"
	ProductStatusActive       ProductStatus = "active"
	ProductStatusOutOfStock   ProductStatus = "out_of_stock"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

type SubscriptionTier string

const (
	SubscriptionTierFree     SubscriptionTier = "free"
	SubscriptionTierStarter  SubscriptionTier = "starter"
	SubscriptionTierStandard SubscriptionTier = "standard"
	SubscriptionTierPremium  SubscriptionTier = "premium"
)

type UserRole string

const (
	UserRoleConsumer     UserRole = "consumer"
	UserRoleBrandOwner   UserRole = "brand_owner"
	UserRoleBrandManager UserRole = "brand_manager"
	UserRoleAdmin        UserRole = "admin"
	UserRoleSuperAdmin   UserRole = "super_admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type EventType string

const (
	EventTypePageView        EventType = "page_view"
	EventTypeSearch          EventType = "search"
	EventTypeClickOut        EventType = "click_out"
	EventTypeFavoriteAdded   EventType = "favorite_added"
	EventTypeFavoriteRemoved EventType = "favorite_removed"
	EventTypeAIInteraction   EventType = "ai_interaction"
	EventTypeBrandClaimed    EventType = "brand_claimed"
	EventTypeSignup          EventType = "signup"
)

// ValidEventTypes lists every type the events endpoint accepts.
var ValidEventTypes = map[EventType]bool{
	EventTypePageView:        true,
	EventTypeSearch:          true,
	EventTypeClickOut:        true,
	EventTypeFavoriteAdded:   true,
	EventTypeFavoriteRemoved: true,
	EventTypeAIInteraction:   true,
	EventTypeBrandClaimed:    true,
	EventTypeSignup:          true,
}

// ExternalSource identifies the storefront platform a product was scraped from.
type ExternalSource string

const (
	ExternalSourceShopify     ExternalSource = "shopify"
	ExternalSourceWooCommerce ExternalSource = "woocommerce"
)

// Validation limits shared by the API, the studio portal and the import tools.
const (
	MaxNameLength      = 120
	MaxTaglineLength   = 180
	MaxShortDescLength = 300
	MaxSlugLength      = 140
	MaxTagCount        = 13
	MaxLabelCount      = 10
)

// IsAdmin reports whether the role grants access to the admin surface.
func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin || r == UserRoleSuperAdmin
}

// CanManageBrand reports whether the role may use the studio portal.
func (r UserRole) CanManageBrand() bool {
	return r == UserRoleBrandOwner || r == UserRoleBrandManager || r.IsAdmin()
}
