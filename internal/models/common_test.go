// internal/models/common_test.go
package models

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func TestModelsMigrateOnSQLite(t *testing.T) {
	db := openTestDB(t)

	err := db.AutoMigrate(
		&User{},
		&Sector{},
		&Region{},
		&Label{},
		&Brand{},
		&BrandLabel{},
		&Product{},
		&Favorite{},
		&Event{},
	)
	require.NoError(t, err)
}

func TestBaseModelAssignsUUIDOnCreate(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(&Sector{}))

	sector := Sector{Name: "Textile", Slug: "textile"}
	require.NoError(t, db.Create(&sector).Error)
	assert.NotEqual(t, uuid.Nil, sector.ID)

	// An ID set by the caller must survive the hook
	preset := Sector{BaseModel: BaseModel{ID: uuid.New()}, Name: "Cosmétique", Slug: "cosmetique"}
	want := preset.ID
	require.NoError(t, db.Create(&preset).Error)
	assert.Equal(t, want, preset.ID)
}
