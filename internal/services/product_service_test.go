// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/madeinfrance/mif-backend/internal/models"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateProductSlugConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	brand := createTestBrand(t, db, "Maison Test", "maison-test", models.BrandStatusActive)
	other := createTestBrand(t, db, "Autre Maison", "autre-maison", models.BrandStatusActive)

	product, err := svc.CreateProduct(brand.ID, &CreateProductRequest{Name: "Sac Cabas"})
	assert.NoError(t, err)
	assert.Equal(t, "sac-cabas", product.Slug)

	_, err = svc.CreateProduct(brand.ID, &CreateProductRequest{Name: "Sac Cabas"})
	assert.ErrorIs(t, err, ErrConflict)

	// Slugs are only unique per brand
	_, err = svc.CreateProduct(other.ID, &CreateProductRequest{Name: "Sac Cabas"})
	assert.NoError(t, err)
}

func TestUpsertExternalProductIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	brand := createTestBrand(t, db, "Maison Test", "maison-test", models.BrandStatusActive)

	ext := &ExternalProduct{
		Source:     models.ExternalSourceShopify,
		ExternalID: "12345",
		Slug:       "bougie-parfumee",
		Name:       "Bougie parfumée",
		PriceMin:   decimalPtr("24.50"),
		PriceMax:   decimalPtr("24.50"),
	}

	inserted, err := svc.UpsertExternalProduct(brand, ext)
	assert.NoError(t, err)
	assert.True(t, inserted)

	// Second run with updated data updates in place
	ext.Name = "Bougie parfumée grand format"
	ext.PriceMin = decimalPtr("29.00")
	inserted, err = svc.UpsertExternalProduct(brand, ext)
	assert.NoError(t, err)
	assert.False(t, inserted)

	var count int64
	db.Model(&models.Product{}).Where("brand_id = ?", brand.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	var product models.Product
	assert.NoError(t, db.Where("brand_id = ? AND external_id = ?", brand.ID, "12345").First(&product).Error)
	assert.Equal(t, "Bougie parfumée grand format", product.Name)
	assert.Equal(t, models.ProductStatusActive, product.Status)
	// Scraped slugs are namespaced by brand
	assert.Equal(t, "maison-test-bougie-parfumee", product.Slug)
	assert.True(t, product.PriceMin.Equal(decimal.RequireFromString("29.00")))
}

func TestRemoveStaleExternalProducts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	brand := createTestBrand(t, db, "Maison Test", "maison-test", models.BrandStatusActive)

	for _, id := range []string{"1", "2", "3"} {
		_, err := svc.UpsertExternalProduct(brand, &ExternalProduct{
			Source:     models.ExternalSourceShopify,
			ExternalID: id,
			Slug:       "produit-" + id,
			Name:       "Produit " + id,
		})
		assert.NoError(t, err)
	}

	// Manually created products are never touched by the reconciliation
	_, err := svc.CreateProduct(brand.ID, &CreateProductRequest{Name: "Fait Main"})
	assert.NoError(t, err)

	removed, err := svc.RemoveStaleExternalProducts(brand.ID, models.ExternalSourceShopify, []string{"1", "3"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var count int64
	db.Model(&models.Product{}).Where("brand_id = ?", brand.ID).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestEnrichmentCandidates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	brand := createTestBrand(t, db, "Maison Test", "maison-test", models.BrandStatusActive)

	untagged, err := svc.CreateProduct(brand.ID, &CreateProductRequest{Name: "Sans Tags"})
	assert.NoError(t, err)
	assert.NoError(t, db.Model(untagged).Update("status", models.ProductStatusActive).Error)

	tagged, err := svc.CreateProduct(brand.ID, &CreateProductRequest{
		Name: "Déjà Tagué",
		Tags: []string{"coton", "bio"},
	})
	assert.NoError(t, err)
	assert.NoError(t, db.Model(tagged).Update("status", models.ProductStatusActive).Error)

	// Draft product stays out even with no tags
	_, err = svc.CreateProduct(brand.ID, &CreateProductRequest{Name: "Brouillon"})
	assert.NoError(t, err)

	candidates, err := svc.EnrichmentCandidates(10)
	assert.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, untagged.ID, candidates[0].ID)
	assert.NotNil(t, candidates[0].Brand)
}

func TestApplyEnrichment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	brand := createTestBrand(t, db, "Maison Test", "maison-test", models.BrandStatusActive)

	product, err := svc.CreateProduct(brand.ID, &CreateProductRequest{Name: "Plaid Laine"})
	assert.NoError(t, err)
	assert.NoError(t, db.Model(product).Update("status", models.ProductStatusActive).Error)

	err = svc.ApplyEnrichment(product.ID, []string{"plaid", "laine"}, []string{"laine mérinos"}, map[string]interface{}{"entretien": "lavage à la main"})
	assert.NoError(t, err)

	var reloaded models.Product
	assert.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, []string{"plaid", "laine"}, []string(reloaded.Tags))
	assert.False(t, reloaded.NeedsEnrichment())

	// Enriched products drop out of the candidate pool
	candidates, err := svc.EnrichmentCandidates(10)
	assert.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestDeleteProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	brand := createTestBrand(t, db, "Maison Test", "maison-test", models.BrandStatusActive)

	_, err := svc.CreateProduct(brand.ID, &CreateProductRequest{Name: "Éphémère"})
	assert.NoError(t, err)

	assert.NoError(t, svc.DeleteProduct(brand.ID, "ephemere"))
	assert.ErrorIs(t, svc.DeleteProduct(brand.ID, "ephemere"), ErrNotFound)
}
