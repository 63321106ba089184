// internal/services/brand_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/madeinfrance/mif-backend/internal/models"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

type BrandService struct {
	db           *gorm.DB
	eventService *EventService
}

type CreateBrandRequest struct {
	Name             string                 `json:"name" validate:"required,min=2,max=120"`
	Tagline          string                 `json:"tagline,omitempty" validate:"max=180"`
	ShortDescription string                 `json:"short_description,omitempty" validate:"max=300"`
	LongDescription  string                 `json:"long_description,omitempty"`
	City             string                 `json:"city,omitempty" validate:"max=120"`
	SectorSlug       string                 `json:"sector_slug,omitempty"`
	RegionSlug       string                 `json:"region_slug,omitempty"`
	WebsiteURL       string                 `json:"website_url,omitempty" validate:"omitempty,url"`
	SocialLinks      map[string]interface{} `json:"social_links,omitempty"`
}

type UpdateBrandRequest struct {
	Name             string                 `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Tagline          *string                `json:"tagline,omitempty" validate:"omitempty,max=180"`
	ShortDescription *string                `json:"short_description,omitempty" validate:"omitempty,max=300"`
	LongDescription  *string                `json:"long_description,omitempty"`
	City             *string                `json:"city,omitempty" validate:"omitempty,max=120"`
	SectorSlug       *string                `json:"sector_slug,omitempty"`
	RegionSlug       *string                `json:"region_slug,omitempty"`
	WebsiteURL       *string                `json:"website_url,omitempty" validate:"omitempty,url"`
	LogoURL          *string                `json:"logo_url,omitempty" validate:"omitempty,url"`
	SocialLinks      map[string]interface{} `json:"social_links,omitempty"`
	LabelSlugs       []string               `json:"label_slugs,omitempty" validate:"omitempty,max=10"`
}

func NewBrandService(db *gorm.DB, eventService *EventService) *BrandService {
	return &BrandService{
		db:           db,
		eventService: eventService,
	}
}

// SearchBrands lists active brands filtered by sector slug, region slug and a
// free-text search over name and descriptions. Results sort by name ascending
// unless the caller asked otherwise; an out-of-range page returns an empty
// slice, not an error.
func (s *BrandService) SearchBrands(params utils.PaginationParams) ([]models.Brand, int64, error) {
	query := s.db.Model(&models.Brand{}).Where("status = ?", models.BrandStatusActive)

	if params.Sector != "" {
		query = query.Joins("JOIN sectors ON sectors.id = brands.sector_id").
			Where("sectors.slug = ?", params.Sector)
	}

	if params.Region != "" {
		query = query.Joins("JOIN regions ON regions.id = brands.region_id").
			Where("regions.slug = ?", params.Region)
	}

	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(brands.name) LIKE ? OR LOWER(brands.short_description) LIKE ? OR LOWER(brands.long_description) LIKE ?",
			term, term, term,
		)

		go s.eventService.RecordSearch(params.Search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count brands: %w", err)
	}

	var brands []models.Brand
	query = utils.ApplySort(query.Preload("Sector").Preload("Region").Preload("Labels"),
		params, []string{"name", "created_at", "city"})
	if err := utils.ApplyPagination(query, params).Find(&brands).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list brands: %w", err)
	}

	return brands, total, nil
}

// GetBrandBySlug returns an active brand with its sector, region and labels.
// includeAll lifts the status filter for the studio and admin surfaces.
func (s *BrandService) GetBrandBySlug(slug string, includeAll bool) (*models.Brand, error) {
	query := s.db.Preload("Sector").Preload("Region").Preload("Labels")
	if !includeAll {
		query = query.Where("status = ?", models.BrandStatusActive)
	}

	var brand models.Brand
	if err := query.Where("slug = ?", slug).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}

	return &brand, nil
}

// GetFeaturedBrands returns a bounded list of active paying brands for the
// home page.
func (s *BrandService) GetFeaturedBrands(limit int) ([]models.Brand, error) {
	if limit < 1 || limit > 24 {
		limit = 12
	}

	var brands []models.Brand
	err := s.db.Preload("Sector").Preload("Region").
		Where("status = ?", models.BrandStatusActive).
		Where("subscription_tier IN ?", []models.SubscriptionTier{
			models.SubscriptionTierStandard,
			models.SubscriptionTierPremium,
		}).
		Order("name asc").
		Limit(limit).
		Find(&brands).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list featured brands: %w", err)
	}

	return brands, nil
}

// GetBrandsByOwnerEmail returns the brands owned by a user, used to route a
// freshly authenticated brand owner to their dashboard.
func (s *BrandService) GetBrandsByOwnerEmail(email string) ([]models.Brand, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.Brand{}, nil
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var brands []models.Brand
	if err := s.db.Preload("Sector").Preload("Region").
		Where("owner_id = ?", user.ID).
		Order("name asc").
		Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to list owned brands: %w", err)
	}

	return brands, nil
}

// CreateBrand creates a DRAFT brand owned by the given user. The slug derives
// from the name; a taken slug is a conflict, not an overwrite.
func (s *BrandService) CreateBrand(ownerID uuid.UUID, req *CreateBrandRequest) (*models.Brand, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	slug := utils.Slugify(req.Name)
	if slug == "" {
		return nil, errors.New("brand name yields an empty slug")
	}

	var count int64
	if err := s.db.Model(&models.Brand{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("brand slug %q %w", slug, ErrConflict)
	}

	brand := &models.Brand{
		Slug:             slug,
		Name:             req.Name,
		Tagline:          req.Tagline,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		City:             req.City,
		WebsiteURL:       req.WebsiteURL,
		SocialLinks:      models.JSONB(req.SocialLinks),
		Status:           models.BrandStatusDraft,
		SubscriptionTier: models.SubscriptionTierFree,
		OwnerID:          &ownerID,
	}

	if err := s.resolveTaxonomy(brand, req.SectorSlug, req.RegionSlug); err != nil {
		return nil, err
	}

	if err := s.db.Create(brand).Error; err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	return brand, nil
}

// ClaimBrand attaches an unowned brand to the user. Claiming a brand someone
// else owns is forbidden.
func (s *BrandService) ClaimBrand(userID uuid.UUID, slug string) (*models.Brand, error) {
	var brand models.Brand
	if err := s.db.Where("slug = ?", slug).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}

	if brand.OwnerID != nil && *brand.OwnerID != userID {
		return nil, ErrForbidden
	}

	brand.OwnerID = &userID
	if err := s.db.Model(&brand).Update("owner_id", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to claim brand: %w", err)
	}

	go s.eventService.Record(&models.Event{
		Type:    models.EventTypeBrandClaimed,
		UserID:  &userID,
		BrandID: &brand.ID,
	})

	return &brand, nil
}

// UpdateBrand applies a studio edit. Only the owner (or an admin via
// isAdmin) may touch the brand.
func (s *BrandService) UpdateBrand(userID uuid.UUID, slug string, req *UpdateBrandRequest, isAdmin bool) (*models.Brand, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var brand models.Brand
	if err := s.db.Where("slug = ?", slug).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}

	if !isAdmin && (brand.OwnerID == nil || *brand.OwnerID != userID) {
		return nil, ErrForbidden
	}

	if req.Name != "" {
		brand.Name = req.Name
	}
	if req.Tagline != nil {
		brand.Tagline = *req.Tagline
	}
	if req.ShortDescription != nil {
		brand.ShortDescription = *req.ShortDescription
	}
	if req.LongDescription != nil {
		brand.LongDescription = *req.LongDescription
	}
	if req.City != nil {
		brand.City = *req.City
	}
	if req.WebsiteURL != nil {
		brand.WebsiteURL = *req.WebsiteURL
	}
	if req.LogoURL != nil {
		brand.LogoURL = *req.LogoURL
	}
	if req.SocialLinks != nil {
		brand.SocialLinks = models.JSONB(req.SocialLinks)
	}

	sectorSlug, regionSlug := "", ""
	if req.SectorSlug != nil {
		sectorSlug = *req.SectorSlug
	}
	if req.RegionSlug != nil {
		regionSlug = *req.RegionSlug
	}
	if err := s.resolveTaxonomy(&brand, sectorSlug, regionSlug); err != nil {
		return nil, err
	}

	if err := s.db.Save(&brand).Error; err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}

	if req.LabelSlugs != nil {
		if err := s.replaceLabels(&brand, req.LabelSlugs); err != nil {
			return nil, err
		}
	}

	s.db.Preload("Sector").Preload("Region").Preload("Labels").First(&brand, brand.ID)
	return &brand, nil
}

// UpdateBrandStatus is the admin lifecycle transition; brands are soft-retired
// via status, never hard-deleted here.
func (s *BrandService) UpdateBrandStatus(slug string, status models.BrandStatus) (*models.Brand, error) {
	switch status {
	case models.BrandStatusDraft, models.BrandStatusPendingReview, models.BrandStatusActive,
		models.BrandStatusSuspended, models.BrandStatusRejected:
	default:
		return nil, fmt.Errorf("invalid brand status %q", status)
	}

	var brand models.Brand
	if err := s.db.Where("slug = ?", slug).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}

	if err := s.db.Model(&brand).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update brand status: %w", err)
	}

	brand.Status = status
	return &brand, nil
}

// AdminSearchBrands lists brands in any status for the admin surface,
// optionally filtered by status.
func (s *BrandService) AdminSearchBrands(params utils.PaginationParams, status models.BrandStatus) ([]models.Brand, int64, error) {
	query := s.db.Model(&models.Brand{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR slug LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count brands: %w", err)
	}

	var brands []models.Brand
	query = utils.ApplySort(query.Preload("Sector").Preload("Region"), params,
		[]string{"name", "created_at", "status"})
	if err := utils.ApplyPagination(query, params).Find(&brands).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list brands: %w", err)
	}

	return brands, total, nil
}

// AttachLabel links a label to a brand. Re-adding an existing pair is a no-op.
func (s *BrandService) AttachLabel(brandID, labelID uuid.UUID) error {
	link := models.BrandLabel{BrandID: brandID, LabelID: labelID}
	err := s.db.Where(&link).FirstOrCreate(&link).Error
	if err != nil {
		return fmt.Errorf("failed to attach label: %w", err)
	}
	return nil
}

func (s *BrandService) resolveTaxonomy(brand *models.Brand, sectorSlug, regionSlug string) error {
	if sectorSlug != "" {
		var sector models.Sector
		if err := s.db.Where("slug = ?", sectorSlug).First(&sector).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("sector %q %w", sectorSlug, ErrNotFound)
			}
			return fmt.Errorf("failed to load sector: %w", err)
		}
		brand.SectorID = &sector.ID
	}

	if regionSlug != "" {
		var region models.Region
		if err := s.db.Where("slug = ?", regionSlug).First(&region).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("region %q %w", regionSlug, ErrNotFound)
			}
			return fmt.Errorf("failed to load region: %w", err)
		}
		brand.RegionID = &region.ID
	}

	return nil
}

func (s *BrandService) replaceLabels(brand *models.Brand, labelSlugs []string) error {
	var labels []models.Label
	if len(labelSlugs) > 0 {
		if err := s.db.Where("slug IN ?", labelSlugs).Find(&labels).Error; err != nil {
			return fmt.Errorf("failed to load labels: %w", err)
		}
		if len(labels) != len(labelSlugs) {
			return fmt.Errorf("label %w", ErrNotFound)
		}
	}

	if err := s.db.Where("brand_id = ?", brand.ID).Delete(&models.BrandLabel{}).Error; err != nil {
		return fmt.Errorf("failed to clear labels: %w", err)
	}

	for _, label := range labels {
		if err := s.AttachLabel(brand.ID, label.ID); err != nil {
			return err
		}
	}

	return nil
}
