// internal/storefront/detect.go
package storefront

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/madeinfrance/mif-backend/internal/config"
	"github.com/madeinfrance/mif-backend/internal/models"
)

// Detector figures out which e-commerce platform backs a brand's website.
// Markup markers are checked first because they need a single page fetch;
// the WooCommerce Store API probe runs only when markers are inconclusive.
type Detector struct {
	http *resty.Client
}

type markerRule struct {
	substr string
	source models.ExternalSource
}

// Ordered: the first matching marker wins.
var markerRules = []markerRule{
	{"cdn.shopify.com", models.ExternalSourceShopify},
	{"myshopify.com", models.ExternalSourceShopify},
	{"Shopify.theme", models.ExternalSourceShopify},
	{"wp-content/plugins/woocommerce", models.ExternalSourceWooCommerce},
	{"woocommerce", models.ExternalSourceWooCommerce},
}

func NewDetector(cfg config.ScraperConfig) *Detector {
	return &Detector{
		http: resty.New().
			SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
			SetHeader("User-Agent", cfg.UserAgent),
	}
}

// Detect fetches the site's home page and classifies it. An unreachable or
// unrecognized site returns an empty source and no error; only transport
// setup failures are errors.
func (d *Detector) Detect(websiteURL string) (models.ExternalSource, error) {
	if websiteURL == "" {
		return "", fmt.Errorf("website URL is empty")
	}
	base := strings.TrimRight(websiteURL, "/")

	resp, err := d.http.R().Get(base)
	if err != nil {
		return "", nil
	}

	if resp.StatusCode() == 200 {
		body := resp.String()
		for _, rule := range markerRules {
			if strings.Contains(body, rule.substr) {
				return rule.source, nil
			}
		}
	}

	// Headless WooCommerce fronts carry no theme markers, so probe the
	// Store API directly. A real Store API answers with a JSON array and the
	// X-WP-Total product-count header.
	probe, err := d.http.R().Get(base + "/wp-json/wc/store/v1/products?per_page=1")
	if err == nil && probe.StatusCode() == 200 {
		if probe.Header().Get("X-WP-Total") != "" || strings.HasPrefix(strings.TrimSpace(probe.String()), "[") {
			return models.ExternalSourceWooCommerce, nil
		}
	}

	// Same idea for Shopify shops with customized themes.
	probe, err = d.http.R().Get(base + "/products.json?limit=1")
	if err == nil && probe.StatusCode() == 200 && strings.Contains(probe.String(), "\"products\"") {
		return models.ExternalSourceShopify, nil
	}

	return "", nil
}
