// internal/storefront/woocommerce.go
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

// WooCommerceScraper reads the public Store API, which needs no key. Prices
// come back in minor units with a declared decimal count.
type WooCommerceScraper struct {
	http     *resty.Client
	pageSize int
	delay    time.Duration
}

type wooProduct struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
	Permalink        string `json:"permalink"`
	Images           []struct {
		Src string `json:"src"`
	} `json:"images"`
	Prices struct {
		Price         string `json:"price"`
		RegularPrice  string `json:"regular_price"`
		CurrencyMinor int    `json:"currency_minor_unit"`
	} `json:"prices"`
}

func NewWooCommerceScraper(cfg config.ScraperConfig) *WooCommerceScraper {
	return &WooCommerceScraper{
		http: resty.New().
			SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
			SetHeader("User-Agent", cfg.UserAgent),
		pageSize: cfg.PageSize,
		delay:    time.Duration(cfg.DelayMillis) * time.Millisecond,
	}
}

func (s *WooCommerceScraper) Source() models.ExternalSource {
	return models.ExternalSourceWooCommerce
}

func (s *WooCommerceScraper) Fetch(websiteURL string) ([]services.ExternalProduct, error) {
	base := strings.TrimRight(websiteURL, "/")
	var all []services.ExternalProduct

	for page := 1; ; page++ {
		var products []wooProduct
		resp, err := s.http.R().
			SetQueryParams(map[string]string{
				"per_page": strconv.Itoa(s.pageSize),
				"page":     strconv.Itoa(page),
			}).
			SetResult(&products).
			Get(base + "/wp-json/wc/store/v1/products")
		if err != nil {
			return nil, fmt.Errorf("woocommerce listing request failed: %w", err)
		}
		if resp.StatusCode() != 200 {
			return nil, fmt.Errorf("woocommerce listing returned status %d", resp.StatusCode())
		}

		if len(products) == 0 {
			break
		}

		for _, p := range products {
			all = append(all, s.normalize(p))
		}

		if len(products) < s.pageSize {
			break
		}
		time.Sleep(s.delay)
	}

	return all, nil
}

func (s *WooCommerceScraper) normalize(p wooProduct) services.ExternalProduct {
	description := utils.StripHTML(p.ShortDescription)
	if description == "" {
		description = utils.StripHTML(p.Description)
	}

	ext := services.ExternalProduct{
		Source:      models.ExternalSourceWooCommerce,
		ExternalID:  strconv.Itoa(p.ID),
		Slug:        utils.Slugify(p.Slug),
		Name:        p.Name,
		Description: utils.Truncate(description, models.MaxShortDescLength),
		Permalink:   p.Permalink,
		RawPayload: map[string]interface{}{
			"id":   p.ID,
			"slug": p.Slug,
		},
	}

	if len(p.Images) > 0 {
		ext.ImageURL = p.Images[0].Src
	}

	if price := minorUnitsToDecimal(p.Prices.Price, p.Prices.CurrencyMinor); price != nil {
		ext.PriceMin = price
		ext.PriceMax = price
	}

	return ext
}

// minorUnitsToDecimal converts "2450" with 2 minor units into 24.50.
func minorUnitsToDecimal(raw string, minorUnits int) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	shifted := value.Shift(int32(-minorUnits))
	return &shifted
}
