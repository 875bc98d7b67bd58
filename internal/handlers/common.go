// internal/handlers/common.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dzboutik/dzboutik-backend/internal/i18n"
	"github.com/dzboutik/dzboutik-backend/internal/services"
	"github.com/dzboutik/dzboutik-backend/internal/utils"
)

// handleServiceError maps the services' sentinel errors onto HTTP statuses.
// Every handler funnels service failures through here so a given error class
// always surfaces with the same status and code.
func handleServiceError(c *gin.Context, err error, resource string) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, services.ErrInsufficientStock):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyProductOutOfStock))
	case errors.Is(err, services.ErrVariantNotFound):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "VARIANT_NOT_FOUND", i18n.T(lang, i18n.KeyVariantNotFound), nil)
	case errors.Is(err, services.ErrStateConflict):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyOrderStateConflict))
	case errors.Is(err, services.ErrPromoInvalid):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "PROMO_INVALID", i18n.T(lang, i18n.KeyPromoInvalid), nil)
	case errors.Is(err, services.ErrDuplicate):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}
