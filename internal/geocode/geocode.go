// internal/geocode/geocode.go
package geocode

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/madeinfrance/mif-backend/internal/config"
	"github.com/madeinfrance/mif-backend/internal/models"
)

// Client wraps the adresse.data.gouv.fr search endpoint. One city name in,
// one WGS84 coordinate pair out.
type Client struct {
	http *resty.Client
}

type searchResponse struct {
	Features []struct {
		Geometry struct {
			// GeoJSON order: [longitude, latitude]
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label string  `json:"label"`
			Score float64 `json:"score"`
		} `json:"properties"`
	} `json:"features"`
}

func NewClient(cfg config.GeocodingConfig) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second),
	}
}

// Lookup resolves a French city name to coordinates. No match is an error so
// callers can count skips.
func (c *Client) Lookup(city string) (lat, lng float64, err error) {
	var result searchResponse

	resp, err := c.http.R().
		SetQueryParams(map[string]string{
			"q":     city,
			"type":  "municipality",
			"limit": "1",
		}).
		SetResult(&result).
		Get("/search/")
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return 0, 0, fmt.Errorf("geocoding returned status %d", resp.StatusCode())
	}

	if len(result.Features) == 0 || len(result.Features[0].Geometry.Coordinates) < 2 {
		return 0, 0, fmt.Errorf("no geocoding match for %q", city)
	}

	coords := result.Features[0].Geometry.Coordinates
	return coords[1], coords[0], nil
}

// Runner backfills coordinates for brands that have a city but no latitude.
type Runner struct {
	db     *gorm.DB
	client *Client
	delay  time.Duration
}

type RunResult struct {
	Processed int
	Updated   int
	Skipped   int
}

func NewRunner(db *gorm.DB, cfg config.GeocodingConfig) *Runner {
	return &Runner{
		db:     db,
		client: NewClient(cfg),
		delay:  time.Duration(cfg.DelayMillis) * time.Millisecond,
	}
}

// Run geocodes every pending brand sequentially. A failed lookup is counted
// and skipped, never fatal; the public API stays rate-limit friendly via the
// configured delay between calls.
func (r *Runner) Run() (*RunResult, error) {
	var brands []models.Brand
	if err := r.db.
		Where("city <> '' AND latitude IS NULL").
		Order("name asc").
		Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to list brands to geocode: %w", err)
	}

	result := &RunResult{}
	for i := range brands {
		result.Processed++
		if err := r.geocodeOne(&brands[i], result); err != nil {
			return result, err
		}

		if i < len(brands)-1 {
			time.Sleep(r.delay)
		}
	}

	return result, nil
}

// RunBrand geocodes a single brand by slug, even when it already has
// coordinates.
func (r *Runner) RunBrand(slug string) (*RunResult, error) {
	var brand models.Brand
	if err := r.db.Where("slug = ?", slug).First(&brand).Error; err != nil {
		return nil, fmt.Errorf("brand %q not found", slug)
	}
	if brand.City == "" {
		return nil, fmt.Errorf("brand %q has no city to geocode", slug)
	}

	result := &RunResult{Processed: 1}
	if err := r.geocodeOne(&brand, result); err != nil {
		return result, err
	}
	return result, nil
}

// geocodeOne looks up one brand's city and stores the coordinates. A failed
// lookup is counted as skipped; only a write failure is fatal.
func (r *Runner) geocodeOne(brand *models.Brand, result *RunResult) error {
	lat, lng, err := r.client.Lookup(brand.City)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"brand": brand.Slug,
			"city":  brand.City,
		}).WithError(err).Warn("Geocoding skipped")
		result.Skipped++
		return nil
	}

	updates := map[string]interface{}{"latitude": lat, "longitude": lng}
	if err := r.db.Model(&models.Brand{}).Where("id = ?", brand.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to store coordinates for %s: %w", brand.Slug, err)
	}
	result.Updated++
	return nil
}
