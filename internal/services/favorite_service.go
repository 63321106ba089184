// internal/services/favorite_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/madeinfrance/mif-backend/internal/models"
)

type FavoriteService struct {
	db           *gorm.DB
	eventService *EventService
}

func NewFavoriteService(db *gorm.DB, eventService *EventService) *FavoriteService {
	return &FavoriteService{
		db:           db,
		eventService: eventService,
	}
}

// GetFavorites returns a user's favorites with their brands, newest first.
func (s *FavoriteService) GetFavorites(userID uuid.UUID) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := s.db.Preload("Brand").Preload("Brand.Sector").Preload("Brand.Region").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

// AddFavorite is idempotent: adding an already-favorited brand succeeds
// without creating a second row. The brand must exist.
func (s *FavoriteService) AddFavorite(userID, brandID uuid.UUID) (*models.Favorite, error) {
	var brand models.Brand
	if err := s.db.First(&brand, "id = ?", brandID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("brand %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}

	var favorite models.Favorite
	err := s.db.Where("user_id = ? AND brand_id = ?", userID, brandID).First(&favorite).Error
	if err == nil {
		return &favorite, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up favorite: %w", err)
	}

	favorite = models.Favorite{UserID: userID, BrandID: brandID}
	if err := s.db.Create(&favorite).Error; err != nil {
		// Concurrent insert of the same pair hits the unique index; treat it
		// as the idempotent success it is.
		var existing models.Favorite
		if lookupErr := s.db.Where("user_id = ? AND brand_id = ?", userID, brandID).
			First(&existing).Error; lookupErr == nil {
			return &existing, nil
		}
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}

	go s.eventService.Record(&models.Event{
		Type:    models.EventTypeFavoriteAdded,
		UserID:  &userID,
		BrandID: &brandID,
	})

	return &favorite, nil
}

// RemoveFavorite deletes the pair; a missing pair is a not-found.
func (s *FavoriteService) RemoveFavorite(userID, brandID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND brand_id = ?", userID, brandID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	go s.eventService.Record(&models.Event{
		Type:    models.EventTypeFavoriteRemoved,
		UserID:  &userID,
		BrandID: &brandID,
	})

	return nil
}
