// internal/handlers/admin.go
package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/madeinfrance/mif-backend/internal/i18n"
	"github.com/madeinfrance/mif-backend/internal/models"
	"github.com/madeinfrance/mif-backend/internal/services"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

type AdminHandler struct {
	brandService *services.BrandService
	userService  *services.UserService
	eventService *services.EventService
}

func NewAdminHandler(brandService *services.BrandService, userService *services.UserService, eventService *services.EventService) *AdminHandler {
	return &AdminHandler{
		brandService: brandService,
		userService:  userService,
		eventService: eventService,
	}
}

// GET /admin/analytics?days=30
func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 || days > 365 {
		days = 30
	}

	summary, err := h.eventService.Summary(time.Now().AddDate(0, 0, -days))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"period_days": days,
		"summary":     summary,
	})
}

// GET /admin/brands?status=
func (h *AdminHandler) GetBrands(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := models.BrandStatus(c.Query("status"))

	brands, total, err := h.brandService.AdminSearchBrands(params, status)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(brands, total, params)
	utils.PaginatedResponse(c, result)
}

// PATCH /admin/brands/:slug/status
func (h *AdminHandler) UpdateBrandStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "status"), err.Error())
		return
	}

	brand, err := h.brandService.UpdateBrandStatus(c.Param("slug"), models.BrandStatus(req.Status))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyBrandNotFound))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdminStatusUpdated),
		"brand":   brand,
	})
}

// PATCH /admin/users/:id/role
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "role"), err.Error())
		return
	}

	user, err := h.userService.UpdateRole(userID, models.UserRole(req.Role))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyAuthUserNotFound))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdminActionSuccess),
		"user":    user,
	})
}
