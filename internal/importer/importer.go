// internal/importer/importer.go
package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/madeinfrance/mif-backend/internal/models"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

// Importer seeds the catalog from the editorial spreadsheet. Sheets:
// Secteurs, Régions, Labels, Marques. Rows upsert by slug so re-running the
// same file is a no-op.
type Importer struct {
	db *gorm.DB
}

type ImportResult struct {
	Sectors int
	Regions int
	Labels  int
	Brands  int
	Skipped int
}

func New(db *gorm.DB) *Importer {
	return &Importer{db: db}
}

// Run reads the whole workbook inside one transaction.
func (imp *Importer) Run(path string) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	result := &ImportResult{}
	err = imp.db.Transaction(func(tx *gorm.DB) error {
		if err := imp.importSectors(tx, f, result); err != nil {
			return err
		}
		if err := imp.importRegions(tx, f, result); err != nil {
			return err
		}
		if err := imp.importLabels(tx, f, result); err != nil {
			return err
		}
		return imp.importBrands(tx, f, result)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// sheetRows returns data rows, skipping the header line. A missing sheet is
// fine, the workbook does not have to carry all four.
func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	index, err := f.GetSheetIndex(sheet)
	if err != nil || index < 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Secteurs: Nom | Couleur | Icône
func (imp *Importer) importSectors(tx *gorm.DB, f *excelize.File, result *ImportResult) error {
	rows, err := sheetRows(f, "Secteurs")
	if err != nil {
		return err
	}

	for _, row := range rows {
		name := cell(row, 0)
		if name == "" {
			result.Skipped++
			continue
		}

		sector := models.Sector{
			Name:  name,
			Slug:  utils.Slugify(name),
			Color: cell(row, 1),
			Icon:  cell(row, 2),
		}
		if err := upsertBySlug(tx, &models.Sector{}, sector.Slug, &sector); err != nil {
			return err
		}
		result.Sectors++
	}
	return nil
}

// Régions: Nom | Latitude | Longitude
func (imp *Importer) importRegions(tx *gorm.DB, f *excelize.File, result *ImportResult) error {
	rows, err := sheetRows(f, "Régions")
	if err != nil {
		return err
	}

	for _, row := range rows {
		name := cell(row, 0)
		if name == "" {
			result.Skipped++
			continue
		}

		region := models.Region{
			Name: name,
			Slug: utils.Slugify(name),
		}
		if lat, err := strconv.ParseFloat(cell(row, 1), 64); err == nil {
			region.Latitude = lat
		}
		if lng, err := strconv.ParseFloat(cell(row, 2), 64); err == nil {
			region.Longitude = lng
		}

		if err := upsertBySlug(tx, &models.Region{}, region.Slug, &region); err != nil {
			return err
		}
		result.Regions++
	}
	return nil
}

// Labels: Nom
func (imp *Importer) importLabels(tx *gorm.DB, f *excelize.File, result *ImportResult) error {
	rows, err := sheetRows(f, "Labels")
	if err != nil {
		return err
	}

	for _, row := range rows {
		name := cell(row, 0)
		if name == "" {
			result.Skipped++
			continue
		}

		label := models.Label{
			Name: name,
			Slug: utils.Slugify(name),
		}
		if err := upsertBySlug(tx, &models.Label{}, label.Slug, &label); err != nil {
			return err
		}
		result.Labels++
	}
	return nil
}

// Marques: Nom | Accroche | Description | Ville | Secteur | Région | Site | Labels
func (imp *Importer) importBrands(tx *gorm.DB, f *excelize.File, result *ImportResult) error {
	rows, err := sheetRows(f, "Marques")
	if err != nil {
		return err
	}

	for i, row := range rows {
		name := cell(row, 0)
		if name == "" {
			result.Skipped++
			continue
		}

		slug := utils.Slugify(name)
		brand := models.Brand{
			Name:             name,
			Slug:             slug,
			Tagline:          cell(row, 1),
			ShortDescription: utils.Truncate(cell(row, 2), models.MaxShortDescLength),
			City:             cell(row, 3),
			WebsiteURL:       cell(row, 6),
			Status:           models.BrandStatusActive,
			SubscriptionTier: models.SubscriptionTierFree,
		}

		if sectorName := cell(row, 4); sectorName != "" {
			var sector models.Sector
			if err := tx.Where("slug = ?", utils.Slugify(sectorName)).First(&sector).Error; err == nil {
				brand.SectorID = &sector.ID
			} else {
				logrus.WithFields(logrus.Fields{"row": i + 2, "sector": sectorName}).Warn("Unknown sector, left empty")
			}
		}
		if regionName := cell(row, 5); regionName != "" {
			var region models.Region
			if err := tx.Where("slug = ?", utils.Slugify(regionName)).First(&region).Error; err == nil {
				brand.RegionID = &region.ID
			} else {
				logrus.WithFields(logrus.Fields{"row": i + 2, "region": regionName}).Warn("Unknown region, left empty")
			}
		}

		var existing models.Brand
		err := tx.Where("slug = ?", slug).First(&existing).Error
		switch {
		case err == nil:
			brand.ID = existing.ID
			brand.Status = existing.Status
			brand.SubscriptionTier = existing.SubscriptionTier
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"name":              brand.Name,
				"tagline":           brand.Tagline,
				"short_description": brand.ShortDescription,
				"city":              brand.City,
				"website_url":       brand.WebsiteURL,
				"sector_id":         brand.SectorID,
				"region_id":         brand.RegionID,
			}).Error; err != nil {
				return fmt.Errorf("failed to update brand %s: %w", slug, err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&brand).Error; err != nil {
				return fmt.Errorf("failed to create brand %s: %w", slug, err)
			}
		default:
			return fmt.Errorf("failed to look up brand %s: %w", slug, err)
		}

		if err := imp.attachLabels(tx, &brand, cell(row, 7)); err != nil {
			return err
		}
		result.Brands++
	}
	return nil
}

// attachLabels links comma-separated label names; unknown labels are logged
// and skipped, never created implicitly.
func (imp *Importer) attachLabels(tx *gorm.DB, brand *models.Brand, raw string) error {
	if raw == "" {
		return nil
	}

	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var label models.Label
		if err := tx.Where("slug = ?", utils.Slugify(name)).First(&label).Error; err != nil {
			logrus.WithFields(logrus.Fields{"brand": brand.Slug, "label": name}).Warn("Unknown label, skipped")
			continue
		}

		link := models.BrandLabel{BrandID: brand.ID, LabelID: label.ID}
		if err := tx.FirstOrCreate(&link, link).Error; err != nil {
			return fmt.Errorf("failed to attach label %s: %w", label.Slug, err)
		}
	}
	return nil
}

func upsertBySlug(tx *gorm.DB, model interface{}, slug string, record interface{}) error {
	err := tx.Model(model).Where("slug = ?", slug).First(model).Error
	switch {
	case err == nil:
		return tx.Model(model).Where("slug = ?", slug).Updates(record).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return tx.Create(record).Error
	default:
		return err
	}
}
