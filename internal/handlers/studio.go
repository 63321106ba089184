// internal/handlers/studio.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/madeinfrance/mif-backend/internal/i18n"
	"github.com/madeinfrance/mif-backend/internal/models"
	"github.com/madeinfrance/mif-backend/internal/services"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

// StudioHandler serves brand owners managing their own pages: brand creation
// and claiming, product CRUD, logo upload and subscription upgrades.
type StudioHandler struct {
	brandService        *services.BrandService
	productService      *services.ProductService
	storageService      *services.StorageService
	subscriptionService *services.SubscriptionService
}

func NewStudioHandler(brandService *services.BrandService, productService *services.ProductService, storageService *services.StorageService, subscriptionService *services.SubscriptionService) *StudioHandler {
	return &StudioHandler{
		brandService:        brandService,
		productService:      productService,
		storageService:      storageService,
		subscriptionService: subscriptionService,
	}
}

func (h *StudioHandler) callerID(c *gin.Context) (uuid.UUID, bool) {
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

	return userID, true
}

func (h *StudioHandler) isAdmin(c *gin.Context) bool {
	role, exists := utils.GetUserRoleFromContext(c)
	return exists && models.UserRole(role).IsAdmin()
}

// ownedBrand loads a brand and checks the caller may manage it. Draft and
// pending brands stay visible to their owner here even though the public
// catalog hides them.
func (h *StudioHandler) ownedBrand(c *gin.Context, userID uuid.UUID) (*models.Brand, bool) {
	lang := utils.GetLangFromContext(c)
	slug := c.Param("slug")

	brand, err := h.brandService.GetBrandBySlug(slug, true)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyBrandNotFound))
			return nil, false
		}
		utils.InternalErrorResponse(c, err.Error())
		return nil, false
	}

	if !h.isAdmin(c) && (brand.OwnerID == nil || *brand.OwnerID != userID) {
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyBrandNotYours))
		return nil, false
	}

	return brand, true
}

// POST /studio/brands
func (h *StudioHandler) CreateBrand(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req services.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	brand, err := h.brandService.CreateBrand(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyBrandSlugConflict))
			return
		}
		if errors.Is(err, services.ErrNotFound) {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, brand)
}

// POST /studio/brands/:slug/claim
func (h *StudioHandler) ClaimBrand(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	brand, err := h.brandService.ClaimBrand(userID, c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyBrandNotFound))
			return
		}
		if errors.Is(err, services.ErrForbidden) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyBrandNotYours))
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBrandClaimed),
		"brand":   brand,
	})
}

// PUT /studio/brands/:slug
func (h *StudioHandler) UpdateBrand(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req services.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	brand, err := h.brandService.UpdateBrand(userID, c.Param("slug"), &req, h.isAdmin(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyBrandNotFound))
			return
		}
		if errors.Is(err, services.ErrForbidden) {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyBrandNotYours))
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBrandUpdated),
		"brand":   brand,
	})
}

// GET /studio/brands/:slug/products
func (h *StudioHandler) GetProducts(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	brand, ok := h.ownedBrand(c, userID)
	if !ok {
		return
	}

	products, err := h.productService.GetBrandProducts(brand.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, products)
}

// POST /studio/brands/:slug/products
func (h *StudioHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	brand, ok := h.ownedBrand(c, userID)
	if !ok {
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.CreateProduct(brand.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyProductSlugConflict))
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, product)
}

// PUT /studio/brands/:slug/products/:productSlug
func (h *StudioHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	brand, ok := h.ownedBrand(c, userID)
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.UpdateProduct(brand.ID, c.Param("productSlug"), &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyProductNotFound))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /studio/brands/:slug/products/:productSlug
func (h *StudioHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	brand, ok := h.ownedBrand(c, userID)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(brand.ID, c.Param("productSlug")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyProductNotFound))
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyProductDeleted)})
}

// POST /studio/brands/:slug/logo
func (h *StudioHandler) UploadLogo(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	brand, ok := h.ownedBrand(c, userID)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	options := h.storageService.GetDefaultUploadOptions("logos")
	result, err := h.storageService.UploadFile(file, fileHeader, options)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	update := services.UpdateBrandRequest{LogoURL: &result.URL}
	if _, err := h.brandService.UpdateBrand(userID, brand.Slug, &update, h.isAdmin(c)); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyFileUploadSuccess),
		"logo_url": result.URL,
	})
}

// POST /studio/brands/:slug/subscription
func (h *StudioHandler) CreateSubscription(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	brand, ok := h.ownedBrand(c, userID)
	if !ok {
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	checkout, err := h.subscriptionService.CreateCheckoutSession(brand, &req)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySubscriptionFailed), err.Error())
		return
	}

	utils.SuccessResponse(c, checkout)
}
