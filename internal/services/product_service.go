// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/madeinfrance/mif-backend/internal/models"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name             string           `json:"name" validate:"required,min=2,max=255"`
	ShortDescription string           `json:"short_description,omitempty" validate:"max=300"`
	LongDescription  string           `json:"long_description,omitempty"`
	PriceMin         *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax         *decimal.Decimal `json:"price_max,omitempty"`
	ImageURL         string           `json:"image_url,omitempty" validate:"omitempty,url"`
	Tags             []string         `json:"tags,omitempty" validate:"omitempty,max=13"`
	Materials        []string         `json:"materials,omitempty"`
}

type UpdateProductRequest struct {
	Name             string           `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	ShortDescription *string          `json:"short_description,omitempty" validate:"omitempty,max=300"`
	LongDescription  *string          `json:"long_description,omitempty"`
	PriceMin         *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax         *decimal.Decimal `json:"price_max,omitempty"`
	ImageURL         *string          `json:"image_url,omitempty" validate:"omitempty,url"`
	Tags             []string         `json:"tags,omitempty" validate:"omitempty,max=13"`
	Materials        []string         `json:"materials,omitempty"`
	Status           models.ProductStatus `json:"status,omitempty"`
}

// ExternalProduct is a scraped storefront row, normalized by the scraper
// before the upsert.
type ExternalProduct struct {
	Source      models.ExternalSource
	ExternalID  string
	Slug        string
	Name        string
	Description string
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
	ImageURL    string
	Permalink   string
	RawPayload  map[string]interface{}
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// GetActiveProducts returns a brand's active products, name ascending.
func (s *ProductService) GetActiveProducts(brandID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := s.db.
		Where("brand_id = ? AND status = ?", brandID, models.ProductStatusActive).
		Order("name asc").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetBrandProducts returns every product of a brand for the studio, any status.
func (s *ProductService) GetBrandProducts(brandID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Where("brand_id = ?", brandID).Order("name asc").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// CreateProduct adds a DRAFT product to a brand. The slug derives from the
// name and must be unique within the brand.
func (s *ProductService) CreateProduct(brandID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := validatePriceRange(req.PriceMin, req.PriceMax); err != nil {
		return nil, err
	}

	slug := utils.Slugify(req.Name)
	if slug == "" {
		return nil, errors.New("product name yields an empty slug")
	}

	var count int64
	if err := s.db.Model(&models.Product{}).
		Where("brand_id = ? AND slug = ?", brandID, slug).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("product slug %q %w", slug, ErrConflict)
	}

	product := &models.Product{
		BrandID:          brandID,
		Slug:             slug,
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		PriceMin:         req.PriceMin,
		PriceMax:         req.PriceMax,
		ImageURL:         req.ImageURL,
		Status:           models.ProductStatusDraft,
		Tags:             models.StringList(req.Tags),
		Materials:        models.StringList(req.Materials),
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(brandID uuid.UUID, slug string, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.Where("brand_id = ? AND slug = ?", brandID, slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.ShortDescription != nil {
		product.ShortDescription = *req.ShortDescription
	}
	if req.LongDescription != nil {
		product.LongDescription = *req.LongDescription
	}
	if req.PriceMin != nil {
		product.PriceMin = req.PriceMin
	}
	if req.PriceMax != nil {
		product.PriceMax = req.PriceMax
	}
	if err := validatePriceRange(product.PriceMin, product.PriceMax); err != nil {
		return nil, err
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Tags != nil {
		product.Tags = models.StringList(req.Tags)
	}
	if req.Materials != nil {
		product.Materials = models.StringList(req.Materials)
	}
	if req.Status != "" {
		switch req.Status {
		case models.ProductStatusDraft, models.ProductStatusActive,
			models.ProductStatusOutOfStock, models.ProductStatusDiscontinued:
			product.Status = req.Status
		default:
			return nil, fmt.Errorf("invalid product status %q", req.Status)
		}
	}

	if err := s.db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}

func (s *ProductService) DeleteProduct(brandID uuid.UUID, slug string) error {
	result := s.db.Where("brand_id = ? AND slug = ?", brandID, slug).Delete(&models.Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertExternalProduct writes a scraped product, keyed on
// (brand_id, external_source, external_id) so re-runs never duplicate rows.
// The returned bool is true when a new row was inserted.
func (s *ProductService) UpsertExternalProduct(brand *models.Brand, ext *ExternalProduct) (bool, error) {
	if ext.ExternalID == "" || ext.Source == "" {
		return false, errors.New("external product is missing its source key")
	}

	localSlug := ext.Slug
	if localSlug == "" {
		localSlug = utils.Slugify(ext.Name)
	}
	localSlug = brand.Slug + "-" + localSlug

	var existing models.Product
	err := s.db.Where(
		"brand_id = ? AND external_source = ? AND external_id = ?",
		brand.ID, ext.Source, ext.ExternalID,
	).First(&existing).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up external product: %w", err)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		product := &models.Product{
			BrandID:          brand.ID,
			Slug:             localSlug,
			Name:             ext.Name,
			ShortDescription: utils.Truncate(ext.Description, models.MaxShortDescLength),
			LongDescription:  ext.Description,
			PriceMin:         ext.PriceMin,
			PriceMax:         ext.PriceMax,
			ImageURL:         ext.ImageURL,
			Status:           models.ProductStatusActive,
			ExternalSource:   ext.Source,
			ExternalID:       ext.ExternalID,
			ExternalURL:      ext.Permalink,
			ExternalPayload:  models.JSONB(ext.RawPayload),
		}
		if err := s.db.Create(product).Error; err != nil {
			return false, fmt.Errorf("failed to insert external product: %w", err)
		}
		return true, nil
	}

	existing.Name = ext.Name
	existing.ShortDescription = utils.Truncate(ext.Description, models.MaxShortDescLength)
	existing.LongDescription = ext.Description
	existing.PriceMin = ext.PriceMin
	existing.PriceMax = ext.PriceMax
	existing.ImageURL = ext.ImageURL
	existing.ExternalURL = ext.Permalink
	existing.ExternalPayload = models.JSONB(ext.RawPayload)
	if err := s.db.Save(&existing).Error; err != nil {
		return false, fmt.Errorf("failed to update external product: %w", err)
	}

	return false, nil
}

// RemoveStaleExternalProducts deletes a brand's external-sourced rows whose
// external IDs are gone upstream. This is the one place products are hard
// deleted.
func (s *ProductService) RemoveStaleExternalProducts(brandID uuid.UUID, source models.ExternalSource, liveIDs []string) (int64, error) {
	query := s.db.Where("brand_id = ? AND external_source = ?", brandID, source)
	if len(liveIDs) > 0 {
		query = query.Where("external_id NOT IN ?", liveIDs)
	}

	result := query.Delete(&models.Product{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to remove stale products: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// EnrichmentCandidates returns active products with no tags yet, the
// selection predicate of the AI batch run.
func (s *ProductService) EnrichmentCandidates(limit int) ([]models.Product, error) {
	if limit < 1 {
		limit = 25
	}

	var products []models.Product
	err := s.db.Preload("Brand").
		Where("status = ?", models.ProductStatusActive).
		Where("tags IS NULL OR tags = '' OR tags = '[]'").
		Order("created_at asc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list enrichment candidates: %w", err)
	}

	return products, nil
}

// ApplyEnrichment writes the AI payload back to the product.
func (s *ProductService) ApplyEnrichment(productID uuid.UUID, tags, materials []string, attributes map[string]interface{}) error {
	updates := map[string]interface{}{
		"tags":       models.StringList(tags),
		"materials":  models.StringList(materials),
		"attributes": models.JSONB(attributes),
	}

	result := s.db.Model(&models.Product{}).Where("id = ?", productID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to apply enrichment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func validatePriceRange(min, max *decimal.Decimal) error {
	if min != nil && min.IsNegative() {
		return errors.New("price_min must not be negative")
	}
	if max != nil && max.IsNegative() {
		return errors.New("price_max must not be negative")
	}
	if min != nil && max != nil && min.GreaterThan(*max) {
		return errors.New("price_min must not exceed price_max")
	}
	return nil
}
