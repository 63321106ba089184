// internal/services/event_service.go
package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/madeinfrance/mif-backend/internal/models"
)

// EventService writes the append-only analytics log and computes the
// aggregates behind the admin dashboard. Events are never mutated.
type EventService struct {
	db *gorm.DB
}

type AnalyticsSummary struct {
	TotalBrands    int64            `json:"total_brands"`
	ActiveBrands   int64            `json:"active_brands"`
	TotalProducts  int64            `json:"total_products"`
	TotalFavorites int64            `json:"total_favorites"`
	EventCounts    map[string]int64 `json:"event_counts"`
	TopSearches    []TermCount      `json:"top_searches"`
	TopBrands      []BrandCount     `json:"top_brands"`
}

type TermCount struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

type BrandCount struct {
	BrandID string `json:"brand_id"`
	Count   int64  `json:"count"`
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// Record appends one event. Failures are logged and swallowed; analytics must
// never break a user-facing flow.
func (s *EventService) Record(event *models.Event) {
	if !models.ValidEventTypes[event.Type] {
		logrus.WithField("type", event.Type).Warn("Dropping event with unknown type")
		return
	}

	if err := s.db.Create(event).Error; err != nil {
		logrus.WithError(err).WithField("type", event.Type).Error("Failed to record event")
	}
}

// RecordSearch logs a search query event.
func (s *EventService) RecordSearch(query string) {
	s.Record(&models.Event{
		Type:  models.EventTypeSearch,
		Query: query,
	})
}

// Ingest validates and stores an event submitted through the API.
func (s *EventService) Ingest(event *models.Event) error {
	if !models.ValidEventTypes[event.Type] {
		return fmt.Errorf("unknown event type %q", event.Type)
	}

	if err := s.db.Create(event).Error; err != nil {
		return fmt.Errorf("failed to store event: %w", err)
	}
	return nil
}

// Summary aggregates the analytics view over the trailing window.
func (s *EventService) Summary(since time.Time) (*AnalyticsSummary, error) {
	summary := &AnalyticsSummary{
		EventCounts: make(map[string]int64),
	}

	if err := s.db.Model(&models.Brand{}).Count(&summary.TotalBrands).Error; err != nil {
		return nil, fmt.Errorf("failed to count brands: %w", err)
	}
	if err := s.db.Model(&models.Brand{}).
		Where("status = ?", models.BrandStatusActive).
		Count(&summary.ActiveBrands).Error; err != nil {
		return nil, fmt.Errorf("failed to count active brands: %w", err)
	}
	if err := s.db.Model(&models.Product{}).Count(&summary.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&models.Favorite{}).Count(&summary.TotalFavorites).Error; err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	var typeCounts []struct {
		Type  string
		Count int64
	}
	if err := s.db.Model(&models.Event{}).
		Select("type, count(*) as count").
		Where("created_at >= ?", since).
		Group("type").
		Scan(&typeCounts).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate events: %w", err)
	}
	for _, tc := range typeCounts {
		summary.EventCounts[tc.Type] = tc.Count
	}

	if err := s.db.Model(&models.Event{}).
		Select("query as term, count(*) as count").
		Where("type = ? AND created_at >= ? AND query <> ''", models.EventTypeSearch, since).
		Group("query").
		Order("count desc").
		Limit(10).
		Scan(&summary.TopSearches).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate searches: %w", err)
	}

	if err := s.db.Model(&models.Event{}).
		Select("brand_id, count(*) as count").
		Where("type = ? AND created_at >= ? AND brand_id IS NOT NULL", models.EventTypeClickOut, since).
		Group("brand_id").
		Order("count desc").
		Limit(10).
		Scan(&summary.TopBrands).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate click-outs: %w", err)
	}

	return summary, nil
}
