// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/madeinfrance/mif-backend/internal/services"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

type UserHandler struct {
	brandService *services.BrandService
}

func NewUserHandler(brandService *services.BrandService) *UserHandler {
	return &UserHandler{brandService: brandService}
}

// GET /user/brands?email=
// Returns the brands owned by the given account. An unknown email yields an
// empty list rather than an error so the studio onboarding flow can probe it.
func (h *UserHandler) GetUserBrands(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		utils.BadRequestResponse(c, "email query parameter is required", nil)
		return
	}

	brands, err := h.brandService.GetBrandsByOwnerEmail(email)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, brands)
}
