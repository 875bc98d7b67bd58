// internal/handlers/wilaya.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dzboutik/dzboutik-backend/internal/i18n"
	"github.com/dzboutik/dzboutik-backend/internal/services"
	"github.com/dzboutik/dzboutik-backend/internal/utils"
)

type WilayaHandler struct {
	wilayaService *services.WilayaService
}

func NewWilayaHandler(wilayaService *services.WilayaService) *WilayaHandler {
	return &WilayaHandler{wilayaService: wilayaService}
}

// GET /wilayas exposes only the active shipping zones to the storefront.
func (h *WilayaHandler) GetWilayas(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	wilayas, total, err := h.wilayaService.GetWilayas(params, true)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(wilayas, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /admin/wilayas includes inactive zones.
func (h *WilayaHandler) GetAllWilayas(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	wilayas, total, err := h.wilayaService.GetWilayas(params, false)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(wilayas, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /admin/wilayas
func (h *WilayaHandler) CreateWilaya(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateWilayaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	wilaya, err := h.wilayaService.CreateWilaya(&req)
	if err != nil {
		handleServiceError(c, err, "wilaya")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWilayaCreated),
		"wilaya":  wilaya,
	})
}

// PUT /admin/wilayas/:id
func (h *WilayaHandler) UpdateWilaya(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid wilaya ID", nil)
		return
	}

	var req services.UpdateWilayaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	wilaya, err := h.wilayaService.UpdateWilaya(id, &req)
	if err != nil {
		handleServiceError(c, err, "wilaya")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWilayaUpdated),
		"wilaya":  wilaya,
	})
}

// DELETE /admin/wilayas/:id
func (h *WilayaHandler) DeleteWilaya(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid wilaya ID", nil)
		return
	}

	if err := h.wilayaService.DeleteWilaya(id); err != nil {
		handleServiceError(c, err, "wilaya")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWilayaDeleted),
	})
}
