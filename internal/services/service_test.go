// internal/services/service_test.go
package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/madeinfrance/mif-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database keeps tests isolated from each other while
	// letting pooled connections share the same data
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// One connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
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
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Email:  email,
		Role:   role,
		Status: models.UserStatusActive,
	}
	if err := user.SetPassword("Passw0rdTest"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestBrand(t *testing.T, db *gorm.DB, name, slug string, status models.BrandStatus) *models.Brand {
	t.Helper()

	brand := &models.Brand{
		Name:             name,
		Slug:             slug,
		Status:           status,
		SubscriptionTier: models.SubscriptionTierFree,
	}
	if err := db.Create(brand).Error; err != nil {
		t.Fatalf("failed to create test brand: %v", err)
	}
	return brand
}
