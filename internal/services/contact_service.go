// internal/services/contact_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dzboutik/dzboutik-backend/internal/models"
	"github.com/dzboutik/dzboutik-backend/internal/utils"
)

type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

type CreateContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

func (s *ContactService) CreateMessage(req *CreateContactRequest) (*models.ContactMessage, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}
	return msg, nil
}

func (s *ContactService) GetMessages(params utils.PaginationParams, handled *bool) ([]models.ContactMessage, int64, error) {
	query := s.db.Model(&models.ContactMessage{})

	if handled != nil {
		query = query.Where("handled = ?", *handled)
	}
	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contact messages: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "email"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var messages []models.ContactMessage
	if err := query.Find(&messages).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch contact messages: %w", err)
	}

	return messages, total, nil
}

func (s *ContactService) MarkHandled(id uuid.UUID, handled bool) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := s.db.First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: contact message %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&msg).Update("handled", handled).Error; err != nil {
		return nil, fmt.Errorf("failed to update contact message: %w", err)
	}
	return &msg, nil
}

func (s *ContactService) DeleteMessage(id uuid.UUID) error {
	res := s.db.Delete(&models.ContactMessage{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete contact message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: contact message %s", ErrNotFound, id)
	}
	return nil
}
