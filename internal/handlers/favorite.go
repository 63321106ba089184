// internal/handlers/favorite.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/madeinfrance/mif-backend/internal/i18n"
	"github.com/madeinfrance/mif-backend/internal/services"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// The route carries an explicit :userId so the endpoint stays stable if
// admin-on-behalf access is added, but callers may only touch their own list.
func (h *FavoriteHandler) resolveUser(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}

	pathID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}

	if pathID != userID {
		utils.ForbiddenResponse(c, "")
		return uuid.Nil, false
	}

	return userID, true
}

// GET /users/:userId/favorites
func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	userID, ok := h.resolveUser(c)
	if !ok {
		return
	}

	favorites, err := h.favoriteService.GetFavorites(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, favorites)
}

// resolveBrandID reads the brand from the :brandId path segment, or from a
// {brand_id} JSON body on the bodied form of the add route.
func (h *FavoriteHandler) resolveBrandID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Param("brandId")
	if raw == "" {
		var req struct {
			BrandID string `json:"brand_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "Invalid brand ID", nil)
			return uuid.Nil, false
		}
		raw = req.BrandID
	}

	brandID, err := uuid.Parse(raw)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid brand ID", nil)
		return uuid.Nil, false
	}
	return brandID, true
}

// POST /users/:userId/favorites  {brand_id}
// POST /users/:userId/favorites/:brandId
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := h.resolveUser(c)
	if !ok {
		return
	}

	brandID, ok := h.resolveBrandID(c)
	if !ok {
		return
	}

	favorite, err := h.favoriteService.AddFavorite(userID, brandID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyBrandNotFound))
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, favorite)
}

// DELETE /users/:userId/favorites/:brandId
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := h.resolveUser(c)
	if !ok {
		return
	}

	brandID, err := uuid.Parse(c.Param("brandId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid brand ID", nil)
		return
	}

	if err := h.favoriteService.RemoveFavorite(userID, brandID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyFavoriteNotFound))
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyFavoriteRemoved)})
}
