// internal/importer/importer_test.go
package importer

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

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

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	writeSheet := func(name string, rows [][]interface{}) {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	writeSheet("Secteurs", [][]interface{}{
		{"Nom", "Couleur", "Icône"},
		{"Textile", "#1c4b9c", "shirt"},
		{"Cosmétique", "#d96aa5", "sparkles"},
	})
	writeSheet("Régions", [][]interface{}{
		{"Nom", "Latitude", "Longitude"},
		{"Bretagne", "48.2020", "-2.9326"},
	})
	writeSheet("Labels", [][]interface{}{
		{"Nom"},
		{"Origine France Garantie"},
	})
	writeSheet("Marques", [][]interface{}{
		{"Nom", "Accroche", "Description", "Ville", "Secteur", "Région", "Site", "Labels"},
		{"Tricots de Guingamp", "La maille bretonne", "Pulls tricotés en Bretagne.", "Guingamp", "Textile", "Bretagne", "https://tricots.example.com", "Origine France Garantie"},
		{"Savonnerie du Port", "", "Savons saponifiés à froid.", "Marseille", "Cosmétique", "", "", ""},
		{"", "ligne vide ignorée", "", "", "", "", "", ""},
	})

	path := filepath.Join(t.TempDir(), "catalogue.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportWorkbook(t *testing.T) {
	db := setupTestDB(t)
	path := writeWorkbook(t)

	result, err := New(db).Run(path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Sectors)
	assert.Equal(t, 1, result.Regions)
	assert.Equal(t, 1, result.Labels)
	assert.Equal(t, 2, result.Brands)
	assert.Equal(t, 1, result.Skipped)

	var brand models.Brand
	require.NoError(t, db.Preload("Sector").Preload("Region").Preload("Labels").
		Where("slug = ?", "tricots-de-guingamp").First(&brand).Error)
	assert.Equal(t, "Tricots de Guingamp", brand.Name)
	assert.Equal(t, models.BrandStatusActive, brand.Status)
	assert.Equal(t, "Textile", brand.Sector.Name)
	assert.Equal(t, "Bretagne", brand.Region.Name)
	require.Len(t, brand.Labels, 1)
	assert.Equal(t, "origine-france-garantie", brand.Labels[0].Slug)

	// Accented sheet names and cell values slugify cleanly
	var sector models.Sector
	require.NoError(t, db.Where("slug = ?", "cosmetique").First(&sector).Error)
}

func TestImportIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	path := writeWorkbook(t)
	imp := New(db)

	_, err := imp.Run(path)
	require.NoError(t, err)
	_, err = imp.Run(path)
	require.NoError(t, err)

	var brandCount, sectorCount, linkCount int64
	db.Model(&models.Brand{}).Count(&brandCount)
	db.Model(&models.Sector{}).Count(&sectorCount)
	db.Model(&models.BrandLabel{}).Count(&linkCount)
	assert.Equal(t, int64(2), brandCount)
	assert.Equal(t, int64(2), sectorCount)
	assert.Equal(t, int64(1), linkCount)
}

func TestImportPreservesManualState(t *testing.T) {
	db := setupTestDB(t)
	path := writeWorkbook(t)
	imp := New(db)

	_, err := imp.Run(path)
	require.NoError(t, err)

	// An admin suspends a brand between two runs
	require.NoError(t, db.Model(&models.Brand{}).
		Where("slug = ?", "savonnerie-du-port").
		Update("status", models.BrandStatusSuspended).Error)

	_, err = imp.Run(path)
	require.NoError(t, err)

	var brand models.Brand
	require.NoError(t, db.Where("slug = ?", "savonnerie-du-port").First(&brand).Error)
	assert.Equal(t, models.BrandStatusSuspended, brand.Status)
}
