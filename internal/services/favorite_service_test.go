// internal/services/favorite_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/madeinfrance/mif-backend/internal/models"
)

func TestAddFavoriteIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFavoriteService(db, NewEventService(db))

	user := createTestUser(t, db, "fan@example.com", models.UserRoleConsumer)
	brand := createTestBrand(t, db, "Maison Favorite", "maison-favorite", models.BrandStatusActive)

	first, err := svc.AddFavorite(user.ID, brand.ID)
	assert.NoError(t, err)
	assert.Equal(t, brand.ID, first.BrandID)

	// Adding the same pair again succeeds and stays a single row
	second, err := svc.AddFavorite(user.ID, brand.ID)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.Favorite{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAddFavoriteMissingBrand(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFavoriteService(db, NewEventService(db))
	user := createTestUser(t, db, "fan@example.com", models.UserRoleConsumer)

	_, err := svc.AddFavorite(user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveFavorite(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFavoriteService(db, NewEventService(db))

	user := createTestUser(t, db, "fan@example.com", models.UserRoleConsumer)
	brand := createTestBrand(t, db, "Maison Favorite", "maison-favorite", models.BrandStatusActive)

	_, err := svc.AddFavorite(user.ID, brand.ID)
	assert.NoError(t, err)

	assert.NoError(t, svc.RemoveFavorite(user.ID, brand.ID))

	favorites, err := svc.GetFavorites(user.ID)
	assert.NoError(t, err)
	assert.Empty(t, favorites)

	// Removing it again reports not found
	assert.ErrorIs(t, svc.RemoveFavorite(user.ID, brand.ID), ErrNotFound)
}

func TestGetFavoritesNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFavoriteService(db, NewEventService(db))

	user := createTestUser(t, db, "fan@example.com", models.UserRoleConsumer)
	older := createTestBrand(t, db, "Première", "premiere", models.BrandStatusActive)
	newer := createTestBrand(t, db, "Seconde", "seconde", models.BrandStatusActive)

	_, err := svc.AddFavorite(user.ID, older.ID)
	assert.NoError(t, err)
	_, err = svc.AddFavorite(user.ID, newer.ID)
	assert.NoError(t, err)

	favorites, err := svc.GetFavorites(user.ID)
	assert.NoError(t, err)
	assert.Len(t, favorites, 2)
	assert.NotNil(t, favorites[0].Brand)
}
