// internal/storefront/shopify.go
package storefront

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/madeinfrance/mif-backend/internal/config"
	"github.com/madeinfrance/mif-backend/internal/models"
	"github.com/madeinfrance/mif-backend/internal/services"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

// ShopifyScraper reads a shop's public /products.json listing. No API key,
// pagination via page= until an empty page comes back.
type ShopifyScraper struct {
	http     *resty.Client
	pageSize int
	delay    time.Duration
}

type shopifyListing struct {
	Products []shopifyProduct `json:"products"`
}

type shopifyProduct struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Handle   string `json:"handle"`
	BodyHTML string `json:"body_html"`
	Images   []struct {
		Src string `json:"src"`
	} `json:"images"`
	Variants []struct {
		Price string `json:"price"`
	} `json:"variants"`
}

func NewShopifyScraper(cfg config.ScraperConfig) *ShopifyScraper {
	return &ShopifyScraper{
		http: resty.New().
			SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
			SetHeader("User-Agent", cfg.UserAgent),
		pageSize: cfg.PageSize,
		delay:    time.Duration(cfg.DelayMillis) * time.Millisecond,
	}
}

func (s *ShopifyScraper) Source() models.ExternalSource {
	return models.ExternalSourceShopify
}

// Fetch pages through the whole listing and normalizes every product.
func (s *ShopifyScraper) Fetch(websiteURL string) ([]services.ExternalProduct, error) {
	base := strings.TrimRight(websiteURL, "/")
	var all []services.ExternalProduct

	for page := 1; ; page++ {
		var listing shopifyListing
		resp, err := s.http.R().
			SetQueryParams(map[string]string{
				"limit": strconv.Itoa(s.pageSize),
				"page":  strconv.Itoa(page),
			}).
			SetResult(&listing).
			Get(base + "/products.json")
		if err != nil {
			return nil, fmt.Errorf("shopify listing request failed: %w", err)
		}
		if resp.StatusCode() != 200 {
			return nil, fmt.Errorf("shopify listing returned status %d", resp.StatusCode())
		}

		if len(listing.Products) == 0 {
			break
		}

		for _, p := range listing.Products {
			all = append(all, s.normalize(base, p))
		}

		if len(listing.Products) < s.pageSize {
			break
		}
		time.Sleep(s.delay)
	}

	return all, nil
}

func (s *ShopifyScraper) normalize(base string, p shopifyProduct) services.ExternalProduct {
	ext := services.ExternalProduct{
		Source:      models.ExternalSourceShopify,
		ExternalID:  strconv.FormatInt(p.ID, 10),
		Slug:        utils.Slugify(p.Handle),
		Name:        p.Title,
		Description: utils.Truncate(utils.StripHTML(p.BodyHTML), models.MaxShortDescLength),
		Permalink:   fmt.Sprintf("%s/products/%s", base, p.Handle),
		RawPayload: map[string]interface{}{
			"id":     p.ID,
			"handle": p.Handle,
		},
	}

	if len(p.Images) > 0 {
		ext.ImageURL = p.Images[0].Src
	}

	// Variants carry one price each; keep the observed range
	var min, max *decimal.Decimal
	for _, v := range p.Variants {
		price, err := decimal.NewFromString(v.Price)
		if err != nil {
			continue
		}
		if min == nil || price.LessThan(*min) {
			value := price
			min = &value
		}
		if max == nil || price.GreaterThan(*max) {
			value := price
			max = &value
		}
	}
	ext.PriceMin = min
	ext.PriceMax = max

	return ext
}
