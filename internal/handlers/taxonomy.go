// internal/handlers/taxonomy.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/madeinfrance/mif-backend/internal/services"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

type TaxonomyHandler struct {
	taxonomyService *services.TaxonomyService
}

func NewTaxonomyHandler(taxonomyService *services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

// GET /sectors
func (h *TaxonomyHandler) GetSectors(c *gin.Context) {
	sectors, err := h.taxonomyService.GetSectors()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, sectors)
}

// GET /regions
func (h *TaxonomyHandler) GetRegions(c *gin.Context) {
	regions, err := h.taxonomyService.GetRegions()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, regions)
}

// GET /labels
func (h *TaxonomyHandler) GetLabels(c *gin.Context) {
	labels, err := h.taxonomyService.GetLabels()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, labels)
}
