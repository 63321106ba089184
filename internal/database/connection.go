// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/madeinfrance/mif-backend/internal/config"
	"github.com/madeinfrance/mif-backend/internal/models"
)

// Initialize opens the connection pool and returns the handle. The handle is
// passed explicitly to services and batch tools; there is no package-level
// database singleton.
func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Sector{},
		&models.Region{},
		&models.Label{},
		&models.Brand{},
		&models.BrandLabel{},
		&models.Product{},
		&models.Favorite{},
		&models.Event{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Brand indexes
		"CREATE INDEX IF NOT EXISTS idx_brands_status_name ON brands(status, name)",
		"CREATE INDEX IF NOT EXISTS idx_brands_sector_status ON brands(sector_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_brands_region_status ON brands(region_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_brands_owner ON brands(owner_id)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_brand_status ON products(brand_id, status)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_products_external_key ON products(brand_id, external_source, external_id) WHERE external_id <> ''",

		// Favorite indexes
		"CREATE INDEX IF NOT EXISTS idx_favorites_brand ON favorites(brand_id)",

		// Event indexes
		"CREATE INDEX IF NOT EXISTS idx_events_type_created_at ON events(type, created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
