// internal/handlers/pack.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dzboutik/dzboutik-backend/internal/i18n"
	"github.com/dzboutik/dzboutik-backend/internal/services"
	"github.com/dzboutik/dzboutik-backend/internal/utils"
)

type PackHandler struct {
	packService *services.PackService
}

func NewPackHandler(packService *services.PackService) *PackHandler {
	return &PackHandler{packService: packService}
}

// GET /packs
func (h *PackHandler) GetPacks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	packs, total, err := h.packService.GetPacks(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(packs, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /packs/:id
func (h *PackHandler) GetPack(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid pack ID", nil)
		return
	}

	pack, err := h.packService.GetPack(id)
	if err != nil {
		handleServiceError(c, err, "pack")
		return
	}

	utils.SuccessResponse(c, pack)
}

// POST /admin/packs
func (h *PackHandler) CreatePack(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreatePackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	pack, err := h.packService.CreatePack(&req)
	if err != nil {
		handleServiceError(c, err, "pack")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPackCreated),
		"pack":    pack,
	})
}

// PUT /admin/packs/:id
func (h *PackHandler) UpdatePack(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid pack ID", nil)
		return
	}

	var req services.UpdatePackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	pack, err := h.packService.UpdatePack(id, &req)
	if err != nil {
		handleServiceError(c, err, "pack")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPackUpdated),
		"pack":    pack,
	})
}

// DELETE /admin/packs/:id
func (h *PackHandler) DeletePack(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid pack ID", nil)
		return
	}

	if err := h.packService.DeletePack(id); err != nil {
		handleServiceError(c, err, "pack")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPackDeleted),
	})
}
