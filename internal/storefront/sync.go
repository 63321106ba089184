// internal/storefront/sync.go
package storefront

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/madeinfrance/mif-backend/internal/config"
	"github.com/madeinfrance/mif-backend/internal/models"
	"github.com/madeinfrance/mif-backend/internal/services"
)

// Scraper is one storefront platform's product fetcher.
type Scraper interface {
	Source() models.ExternalSource
	Fetch(websiteURL string) ([]services.ExternalProduct, error)
}

// PlatformDetector classifies a brand's website into a storefront platform.
type PlatformDetector interface {
	Detect(websiteURL string) (models.ExternalSource, error)
}

// Syncer detects brand storefronts and mirrors their catalogs into the
// products table.
type Syncer struct {
	db       *gorm.DB
	products *services.ProductService
	detector PlatformDetector
	scrapers map[models.ExternalSource]Scraper
}

type SyncResult struct {
	Inserted int
	Updated  int
	Removed  int64
}

type DetectResult struct {
	Processed int
	Detected  int
}

func NewSyncer(db *gorm.DB, products *services.ProductService, cfg config.ScraperConfig) *Syncer {
	shopify := NewShopifyScraper(cfg)
	woo := NewWooCommerceScraper(cfg)

	return &Syncer{
		db:       db,
		products: products,
		detector: NewDetector(cfg),
		scrapers: map[models.ExternalSource]Scraper{
			shopify.Source(): shopify,
			woo.Source():     woo,
		},
	}
}

// DetectBrand classifies one brand's website and stores the result.
func (s *Syncer) DetectBrand(brand *models.Brand) (models.ExternalSource, error) {
	source, err := s.detector.Detect(brand.WebsiteURL)
	if err != nil {
		return "", err
	}
	if source == "" {
		return "", nil
	}

	if err := s.db.Model(&models.Brand{}).
		Where("id = ?", brand.ID).
		Update("external_source", string(source)).Error; err != nil {
		return "", fmt.Errorf("failed to store detected source for %s: %w", brand.Slug, err)
	}

	return source, nil
}

// DetectAll runs detection over every active brand that has a website but no
// detected source yet.
func (s *Syncer) DetectAll() (*DetectResult, error) {
	var brands []models.Brand
	if err := s.db.
		Where("status = ? AND website_url <> '' AND external_source = ''", models.BrandStatusActive).
		Order("name asc").
		Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to list brands for detection: %w", err)
	}

	result := &DetectResult{}
	for i := range brands {
		result.Processed++
		source, err := s.DetectBrand(&brands[i])
		if err != nil {
			return result, err
		}
		if source != "" {
			result.Detected++
			logrus.WithFields(logrus.Fields{
				"brand":  brands[i].Slug,
				"source": source,
			}).Info("Storefront detected")
		}
	}

	return result, nil
}

// SyncBrand scrapes one brand's storefront and reconciles the mirror:
// upsert everything live, then drop rows the shop no longer lists.
func (s *Syncer) SyncBrand(brand *models.Brand) (*SyncResult, error) {
	source := models.ExternalSource(brand.ExternalSource)
	scraper, ok := s.scrapers[source]
	if !ok {
		return nil, fmt.Errorf("brand %s has no detected storefront", brand.Slug)
	}

	externals, err := scraper.Fetch(brand.WebsiteURL)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	liveIDs := make([]string, 0, len(externals))
	for i := range externals {
		inserted, err := s.products.UpsertExternalProduct(brand, &externals[i])
		if err != nil {
			return result, err
		}
		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
		liveIDs = append(liveIDs, externals[i].ExternalID)
	}

	removed, err := s.products.RemoveStaleExternalProducts(brand.ID, source, liveIDs)
	if err != nil {
		return result, err
	}
	result.Removed = removed

	return result, nil
}

// SyncAll scrapes every brand with a detected storefront. A failing shop is
// logged and skipped so one broken site cannot stall the whole run.
func (s *Syncer) SyncAll() (*SyncResult, error) {
	var brands []models.Brand
	if err := s.db.
		Where("status = ? AND external_source <> ''", models.BrandStatusActive).
		Order("name asc").
		Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to list brands to sync: %w", err)
	}

	total := &SyncResult{}
	for i := range brands {
		result, err := s.SyncBrand(&brands[i])
		if err != nil {
			logrus.WithField("brand", brands[i].Slug).WithError(err).Warn("Storefront sync failed")
			continue
		}
		total.Inserted += result.Inserted
		total.Updated += result.Updated
		total.Removed += result.Removed
	}

	return total, nil
}
