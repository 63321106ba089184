// internal/handlers/event.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/madeinfrance/mif-backend/internal/i18n"
	"github.com/madeinfrance/mif-backend/internal/models"
	"github.com/madeinfrance/mif-backend/internal/services"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

type ingestEventRequest struct {
	Type     string                 `json:"type" binding:"required"`
	BrandID  *uuid.UUID             `json:"brand_id,omitempty"`
	Path     string                 `json:"path,omitempty"`
	Query    string                 `json:"query,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// POST /events
// Anonymous ingestion endpoint used by the web app for click-outs, searches
// and AI interactions. The user is attached when a token happens to be
// present, never required.
func (h *EventHandler) IngestEvent(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req ingestEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	event := &models.Event{
		Type:     models.EventType(req.Type),
		BrandID:  req.BrandID,
		Path:     req.Path,
		Query:    req.Query,
		Metadata: models.JSONB(req.Metadata),
	}

	if userIDStr, exists := utils.GetUserIDFromContext(c); exists {
		if userID, err := uuid.Parse(userIDStr); err == nil {
			event.UserID = &userID
		}
	}

	if err := h.eventService.Ingest(event); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "type"), err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{"recorded": true})
}
