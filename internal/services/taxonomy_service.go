// internal/services/taxonomy_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/madeinfrance/mif-backend/internal/models"
)

// TaxonomyService serves the sector/region/label lists the whole site browses
// by. The lists are small and fully returned, name ascending.
type TaxonomyService struct {
	db *gorm.DB
}

func NewTaxonomyService(db *gorm.DB) *TaxonomyService {
	return &TaxonomyService{db: db}
}

func (s *TaxonomyService) GetSectors() ([]models.Sector, error) {
	var sectors []models.Sector
	if err := s.db.Order("name asc").Find(&sectors).Error; err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}
	return sectors, nil
}

func (s *TaxonomyService) GetRegions() ([]models.Region, error) {
	var regions []models.Region
	if err := s.db.Order("name asc").Find(&regions).Error; err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	return regions, nil
}

func (s *TaxonomyService) GetLabels() ([]models.Label, error) {
	var labels []models.Label
	if err := s.db.Order("name asc").Find(&labels).Error; err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

func (s *TaxonomyService) GetSectorBySlug(slug string) (*models.Sector, error) {
	var sector models.Sector
	if err := s.db.Where("slug = ?", slug).First(&sector).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load sector: %w", err)
	}
	return &sector, nil
}

func (s *TaxonomyService) GetRegionBySlug(slug string) (*models.Region, error) {
	var region models.Region
	if err := s.db.Where("slug = ?", slug).First(&region).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load region: %w", err)
	}
	return &region, nil
}
