// internal/handlers/promo.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dzboutik/dzboutik-backend/internal/i18n"
	"github.com/dzboutik/dzboutik-backend/internal/services"
	"github.com/dzboutik/dzboutik-backend/internal/utils"
)

type PromoHandler struct {
	promoService *services.PromoService
}

func NewPromoHandler(promoService *services.PromoService) *PromoHandler {
	return &PromoHandler{promoService: promoService}
}

// POST /promo/check previews a code's discount terms for the storefront.
// The authoritative discount is still resolved server-side at checkout.
func (h *PromoHandler) CheckCode(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	promo, err := h.promoService.CheckCode(req.Code)
	if err != nil {
		handleServiceError(c, err, "promo")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyPromoValid),
		"code":     promo.Code,
		"discount": promo.Discount,
		"type":     promo.Type,
	})
}

// GET /admin/promo-codes
func (h *PromoHandler) GetPromoCodes(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	promos, total, err := h.promoService.ListPromoCodes(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(promos, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /admin/promo-codes
func (h *PromoHandler) CreatePromoCode(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	promo, err := h.promoService.CreatePromoCode(&req)
	if err != nil {
		handleServiceError(c, err, "promo")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPromoCreated),
		"promo":   promo,
	})
}

// PUT /admin/promo-codes/:id
func (h *PromoHandler) UpdatePromoCode(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid promo code ID", nil)
		return
	}

	var req services.UpdatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	promo, err := h.promoService.UpdatePromoCode(id, &req)
	if err != nil {
		handleServiceError(c, err, "promo")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPromoUpdated),
		"promo":   promo,
	})
}

// DELETE /admin/promo-codes/:id
func (h *PromoHandler) DeletePromoCode(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid promo code ID", nil)
		return
	}

	if err := h.promoService.DeletePromoCode(id); err != nil {
		handleServiceError(c, err, "promo")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPromoDeleted),
	})
}
