// internal/geocode/geocode_test.go
package geocode

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/madeinfrance/mif-backend/internal/config"
	"github.com/madeinfrance/mif-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Sector{},
		&models.Region{},
		&models.Label{},
		&models.Brand{},
		&models.BrandLabel{},
	))
	return db
}

// addressServer answers like api-adresse.data.gouv.fr for a fixed set of
// cities; anything else gets an empty feature list.
func addressServer(t *testing.T) *httptest.Server {
	t.Helper()

	coords := map[string]string{
		"Rennes":    `[-1.6778, 48.1173]`,
		"Marseille": `[5.3698, 43.2965]`,
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if c, ok := coords[r.URL.Query().Get("q")]; ok {
			fmt.Fprintf(w, `{"features":[{"geometry":{"coordinates":%s},"properties":{"label":"ville","score":0.9}}]}`, c)
			return
		}
		w.Write([]byte(`{"features":[]}`))
	}))
}

func testRunner(t *testing.T, db *gorm.DB, baseURL string) *Runner {
	t.Helper()
	return NewRunner(db, config.GeocodingConfig{
		BaseURL:        baseURL,
		TimeoutSeconds: 5,
		DelayMillis:    0,
	})
}

func TestRunBackfillsPendingBrands(t *testing.T) {
	db := setupTestDB(t)
	server := addressServer(t)
	defer server.Close()

	lat := 48.8566
	lng := 2.3522
	brands := []models.Brand{
		{Slug: "crepes-bretonnes", Name: "Crêpes Bretonnes", City: "Rennes", Status: models.BrandStatusActive},
		{Slug: "savons-du-sud", Name: "Savons du Sud", City: "Trifouillis", Status: models.BrandStatusActive},
		{Slug: "deja-place", Name: "Déjà Placée", City: "Paris", Latitude: &lat, Longitude: &lng, Status: models.BrandStatusActive},
		{Slug: "sans-ville", Name: "Sans Ville", Status: models.BrandStatusActive},
	}
	for i := range brands {
		require.NoError(t, db.Create(&brands[i]).Error)
	}

	result, err := testRunner(t, db, server.URL).Run()
	require.NoError(t, err)

	// Only the two pending brands are candidates; the unknown city is skipped
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Skipped)

	var rennes models.Brand
	require.NoError(t, db.Where("slug = ?", "crepes-bretonnes").First(&rennes).Error)
	require.NotNil(t, rennes.Latitude)
	require.NotNil(t, rennes.Longitude)
	// GeoJSON order is [lng, lat]; the runner must swap them
	assert.InDelta(t, 48.1173, *rennes.Latitude, 0.0001)
	assert.InDelta(t, -1.6778, *rennes.Longitude, 0.0001)

	// Already-placed coordinates stay untouched by the sweep
	var paris models.Brand
	require.NoError(t, db.Where("slug = ?", "deja-place").First(&paris).Error)
	assert.InDelta(t, 48.8566, *paris.Latitude, 0.0001)
}

func TestRunBrandRefreshesCoordinates(t *testing.T) {
	db := setupTestDB(t)
	server := addressServer(t)
	defer server.Close()

	lat := 1.0
	lng := 1.0
	brand := models.Brand{
		Slug:      "savonnerie",
		Name:      "Savonnerie",
		City:      "Marseille",
		Latitude:  &lat,
		Longitude: &lng,
		Status:    models.BrandStatusActive,
	}
	require.NoError(t, db.Create(&brand).Error)

	result, err := testRunner(t, db, server.URL).RunBrand("savonnerie")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Updated)

	var got models.Brand
	require.NoError(t, db.Where("slug = ?", "savonnerie").First(&got).Error)
	assert.InDelta(t, 43.2965, *got.Latitude, 0.0001)
	assert.InDelta(t, 5.3698, *got.Longitude, 0.0001)
}

func TestRunBrandErrors(t *testing.T) {
	db := setupTestDB(t)
	server := addressServer(t)
	defer server.Close()

	require.NoError(t, db.Create(&models.Brand{
		Slug: "sans-ville", Name: "Sans Ville", Status: models.BrandStatusActive,
	}).Error)

	runner := testRunner(t, db, server.URL)

	_, err := runner.RunBrand("inconnue")
	assert.Error(t, err)

	_, err = runner.RunBrand("sans-ville")
	assert.Error(t, err)
}
