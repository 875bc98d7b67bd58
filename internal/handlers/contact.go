// internal/handlers/contact.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dzboutik/dzboutik-backend/internal/i18n"
	"github.com/dzboutik/dzboutik-backend/internal/services"
	"github.com/dzboutik/dzboutik-backend/internal/utils"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// POST /contact
func (h *ContactHandler) CreateMessage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if _, err := h.contactService.CreateMessage(&req); err != nil {
		handleServiceError(c, err, "contact")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyContactReceived),
	})
}

// GET /admin/contact-messages
func (h *ContactHandler) GetMessages(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var handled *bool
	if handledStr := c.Query("handled"); handledStr != "" {
		if value, err := strconv.ParseBool(handledStr); err == nil {
			handled = &value
		}
	}

	messages, total, err := h.contactService.GetMessages(params, handled)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(messages, total, params)
	utils.PaginatedResponse(c, result)
}

// PUT /admin/contact-messages/:id/handled
func (h *ContactHandler) MarkHandled(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid message ID", nil)
		return
	}

	var req struct {
		Handled bool `json:"handled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	msg, err := h.contactService.MarkHandled(id, req.Handled)
	if err != nil {
		handleServiceError(c, err, "contact")
		return
	}

	utils.SuccessResponse(c, msg)
}

// DELETE /admin/contact-messages/:id
func (h *ContactHandler) DeleteMessage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid message ID", nil)
		return
	}

	if err := h.contactService.DeleteMessage(id); err != nil {
		handleServiceError(c, err, "contact")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}
