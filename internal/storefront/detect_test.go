// internal/storefront/detect_test.go
package storefront

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/madeinfrance/mif-backend/internal/config"
	"github.com/madeinfrance/mif-backend/internal/models"
)

func testScraperConfig() config.ScraperConfig {
	return config.ScraperConfig{
		TimeoutSeconds: 5,
		DelayMillis:    0,
		PageSize:       2,
		UserAgent:      "test-agent",
	}
}

func TestDetectShopifyMarker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><link href="https://cdn.shopify.com/s/files/theme.css"></head></html>`))
	}))
	defer server.Close()

	source, err := NewDetector(testScraperConfig()).Detect(server.URL)
	assert.NoError(t, err)
	assert.Equal(t, models.ExternalSourceShopify, source)
}

func TestDetectWooCommerceMarker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><script src="/wp-content/plugins/woocommerce/assets/js/cart.js"></script></html>`))
	}))
	defer server.Close()

	source, err := NewDetector(testScraperConfig()).Detect(server.URL)
	assert.NoError(t, err)
	assert.Equal(t, models.ExternalSourceWooCommerce, source)
}

func TestDetectShopifyWinsWhenBothMarkersPresent(t *testing.T) {
	// Marker order is fixed, the first match decides
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`cdn.shopify.com and also woocommerce somewhere`))
	}))
	defer server.Close()

	source, err := NewDetector(testScraperConfig()).Detect(server.URL)
	assert.NoError(t, err)
	assert.Equal(t, models.ExternalSourceShopify, source)
}

func TestDetectWooCommerceStoreAPIProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wp-json/wc/store/v1/products":
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-WP-Total", "1")
			w.Write([]byte(`[{"id": 1, "name": "Produit"}]`))
		default:
			// Headless front without any platform markers
			w.Write([]byte(`<html><body>Boutique</body></html>`))
		}
	}))
	defer server.Close()

	source, err := NewDetector(testScraperConfig()).Detect(server.URL)
	assert.NoError(t, err)
	assert.Equal(t, models.ExternalSourceWooCommerce, source)
}

func TestDetectNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`<html><body>Site vitrine artisanal</body></html>`))
	}))
	defer server.Close()

	source, err := NewDetector(testScraperConfig()).Detect(server.URL)
	assert.NoError(t, err)
	assert.Empty(t, source)
}

func TestDetectUnreachableSite(t *testing.T) {
	// A dead site is a skip, not a failure
	source, err := NewDetector(testScraperConfig()).Detect("http://127.0.0.1:1")
	assert.NoError(t, err)
	assert.Empty(t, source)
}
