// internal/handlers/brand.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/madeinfrance/mif-backend/internal/i18n"
	"github.com/madeinfrance/mif-backend/internal/services"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

type BrandHandler struct {
	brandService   *services.BrandService
	productService *services.ProductService
}

func NewBrandHandler(brandService *services.BrandService, productService *services.ProductService) *BrandHandler {
	return &BrandHandler{
		brandService:   brandService,
		productService: productService,
	}
}

// GET /brands
func (h *BrandHandler) GetBrands(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	brands, total, err := h.brandService.SearchBrands(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(brands, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /brands/featured
func (h *BrandHandler) GetFeaturedBrands(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))

	brands, err := h.brandService.GetFeaturedBrands(limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, brands)
}

// GET /brands/:slug
func (h *BrandHandler) GetBrand(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	slug := c.Param("slug")

	brand, err := h.brandService.GetBrandBySlug(slug, false)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyBrandNotFound))
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, brand)
}

// GET /brands/:slug/products
func (h *BrandHandler) GetBrandProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	slug := c.Param("slug")

	brand, err := h.brandService.GetBrandBySlug(slug, false)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyBrandNotFound))
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	products, err := h.productService.GetActiveProducts(brand.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, products)
}
