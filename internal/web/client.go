// internal/web/client.go
package web

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/madeinfrance/mif-backend/internal/config"
)

// APIClient is the web front's only way at the data: plain HTTP against the
// public API, no shared database handle.
type APIClient struct {
	http *resty.Client
}

// Envelope mirrors the API's response wrapper.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

// Meta is the pagination block of list endpoints.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// View-side mirrors of the API payloads. Only the fields the templates
// render.
type Brand struct {
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	Tagline          string   `json:"tagline"`
	ShortDescription string   `json:"short_description"`
	LongDescription  string   `json:"long_description"`
	City             string   `json:"city"`
	WebsiteURL       string   `json:"website_url"`
	LogoURL          string   `json:"logo_url"`
	SubscriptionTier string   `json:"subscription_tier"`
	Sector           *Sector  `json:"sector,omitempty"`
	Region           *Region  `json:"region,omitempty"`
	Labels           []Label  `json:"labels,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	UpdatedAt        string   `json:"updated_at"`
}

type Product struct {
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description"`
	PriceMin         *string  `json:"price_min,omitempty"`
	PriceMax         *string  `json:"price_max,omitempty"`
	ImageURL         string   `json:"image_url"`
	ExternalURL      string   `json:"external_url"`
	Tags             []string `json:"tags"`
}

type Sector struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type Region struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type Label struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func NewAPIClient(cfg config.WebConfig) *APIClient {
	return &APIClient{
		http: resty.New().
			SetBaseURL(cfg.APIBaseURL).
			SetTimeout(10 * time.Second),
	}
}

// get decodes one envelope. A transport failure or API-side error comes back
// as an error; callers decide between failing the page and rendering empty.
func (c *APIClient) get(path string, query map[string]string, out interface{}) (*Meta, error) {
	var envelope Envelope
	req := c.http.R().SetResult(&envelope)
	if query != nil {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	if resp.StatusCode() != 200 || !envelope.Success {
		if envelope.Error != nil {
			return nil, fmt.Errorf("%s returned %s: %s", path, envelope.Error.Code, envelope.Error.Message)
		}
		return nil, fmt.Errorf("%s returned status %d", path, resp.StatusCode())
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", path, err)
		}
	}

	var meta *Meta
	if len(envelope.Meta) > 0 {
		var wrapper struct {
			Pagination Meta `json:"pagination"`
		}
		if err := json.Unmarshal(envelope.Meta, &wrapper); err == nil {
			meta = &wrapper.Pagination
		}
	}

	return meta, nil
}

// Fail-soft list fetch: any error is logged and an empty slice rendered, so
// a hiccup on the API never takes down the whole page.
func (c *APIClient) listBrands(query map[string]string) ([]Brand, *Meta) {
	var brands []Brand
	meta, err := c.get("/v1/brands", query, &brands)
	if err != nil {
		logrus.WithError(err).Warn("Brand listing unavailable")
		return nil, nil
	}
	return brands, meta
}

func (c *APIClient) FeaturedBrands(limit int) []Brand {
	var brands []Brand
	if _, err := c.get("/v1/brands/featured", map[string]string{"limit": fmt.Sprint(limit)}, &brands); err != nil {
		logrus.WithError(err).Warn("Featured brands unavailable")
		return nil
	}
	return brands
}

func (c *APIClient) Brands(page int, sectorSlug, regionSlug, search string) ([]Brand, *Meta) {
	query := map[string]string{"page": fmt.Sprint(page)}
	if sectorSlug != "" {
		query["sector"] = sectorSlug
	}
	if regionSlug != "" {
		query["region"] = regionSlug
	}
	if search != "" {
		query["search"] = search
	}
	return c.listBrands(query)
}

func (c *APIClient) RegionBrands(regionSlug string, limit int) []Brand {
	brands, _ := c.listBrands(map[string]string{
		"region": regionSlug,
		"limit":  fmt.Sprint(limit),
	})
	return brands
}

// Brand is the one fetch that fails hard: a missing brand must 404.
func (c *APIClient) Brand(slug string) (*Brand, error) {
	var brand Brand
	if _, err := c.get("/v1/brands/"+slug, nil, &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

func (c *APIClient) BrandProducts(slug string) []Product {
	var products []Product
	if _, err := c.get("/v1/brands/"+slug+"/products", nil, &products); err != nil {
		logrus.WithError(err).Warn("Brand products unavailable")
		return nil
	}
	return products
}

func (c *APIClient) Sectors() []Sector {
	var sectors []Sector
	if _, err := c.get("/v1/sectors", nil, &sectors); err != nil {
		logrus.WithError(err).Warn("Sectors unavailable")
		return nil
	}
	return sectors
}

func (c *APIClient) Regions() []Region {
	var regions []Region
	if _, err := c.get("/v1/regions", nil, &regions); err != nil {
		logrus.WithError(err).Warn("Regions unavailable")
		return nil
	}
	return regions
}

func (c *APIClient) Labels() []Label {
	var labels []Label
	if _, err := c.get("/v1/labels", nil, &labels); err != nil {
		logrus.WithError(err).Warn("Labels unavailable")
		return nil
	}
	return labels
}

// AllBrandSlugs walks the paginated listing for the sitemap.
func (c *APIClient) AllBrandSlugs() []Brand {
	var all []Brand
	for page := 1; ; page++ {
		brands, meta := c.listBrands(map[string]string{
			"page":  fmt.Sprint(page),
			"limit": "100",
		})
		if len(brands) == 0 {
			break
		}
		all = append(all, brands...)
		if meta == nil || page >= meta.TotalPages {
			break
		}
	}
	return all
}
