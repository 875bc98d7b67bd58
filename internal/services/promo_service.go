// internal/services/promo_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dzboutik/dzboutik-backend/internal/models"
	"github.com/dzboutik/dzboutik-backend/internal/utils"
)

type PromoService struct {
	db *gorm.DB
}

type CreatePromoCodeRequest struct {
	Code       string              `json:"code" validate:"required,min=3,max=50"`
	Discount   float64             `json:"discount" validate:"required,gt=0"`
	Type       models.DiscountType `json:"type" validate:"required,oneof=percentage fixed"`
	ValidFrom  time.Time           `json:"valid_from" validate:"required"`
	ValidUntil time.Time           `json:"valid_until" validate:"required,gtfield=ValidFrom"`
	Active     *bool               `json:"active,omitempty"`
}

type UpdatePromoCodeRequest struct {
	Discount   *float64             `json:"discount,omitempty" validate:"omitempty,gt=0"`
	Type       *models.DiscountType `json:"type,omitempty" validate:"omitempty,oneof=percentage fixed"`
	ValidFrom  *time.Time           `json:"valid_from,omitempty"`
	ValidUntil *time.Time           `json:"valid_until,omitempty"`
	Active     *bool                `json:"active,omitempty"`
}

func NewPromoService(db *gorm.DB) *PromoService {
	return &PromoService{db: db}
}

// CheckCode gates promo usage by exact code match, validity window and
// active flag, and returns the discount terms on success.
func (s *PromoService) CheckCode(code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	if err := s.db.Where("code = ?", code).First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: promo code %q", ErrNotFound, code)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !promo.UsableAt(time.Now()) {
		return nil, fmt.Errorf("%w: %q", ErrPromoInvalid, code)
	}

	return &promo, nil
}

// ResolveDiscount validates the code and resolves its terms against the
// given subtotal into a flat amount. Percentage codes apply to the subtotal;
// fixed codes pass through unchanged. Order creation calls this instead of
// trusting a client-supplied discount value.
func (s *PromoService) ResolveDiscount(code string, subtotal float64) (float64, error) {
	promo, err := s.CheckCode(code)
	if err != nil {
		return 0, err
	}

	switch promo.Type {
	case models.DiscountTypePercentage:
		return subtotal * promo.Discount / 100, nil
	default:
		return promo.Discount, nil
	}
}

func (s *PromoService) ListPromoCodes(params utils.PaginationParams) ([]models.PromoCode, int64, error) {
	query := s.db.Model(&models.PromoCode{})

	if params.Search != "" {
		query = query.Where("LOWER(code) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count promo codes: %w", err)
	}

	allowedSortFields := []string{"created_at", "code", "valid_until", "discount"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var promos []models.PromoCode
	if err := query.Find(&promos).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch promo codes: %w", err)
	}

	return promos, total, nil
}

func (s *PromoService) CreatePromoCode(req *CreatePromoCodeRequest) (*models.PromoCode, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existing models.PromoCode
	if err := s.db.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: promo code %q", ErrDuplicate, req.Code)
	}

	promo := &models.PromoCode{
		Code:       req.Code,
		Discount:   req.Discount,
		Type:       req.Type,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
		Active:     true,
	}
	if req.Active != nil {
		promo.Active = *req.Active
	}

	if err := s.db.Create(promo).Error; err != nil {
		return nil, fmt.Errorf("failed to create promo code: %w", err)
	}

	return promo, nil
}

func (s *PromoService) UpdatePromoCode(id uuid.UUID, req *UpdatePromoCodeRequest) (*models.PromoCode, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var promo models.PromoCode
	if err := s.db.First(&promo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: promo code %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Discount != nil {
		updates["discount"] = *req.Discount
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.ValidFrom != nil {
		updates["valid_from"] = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		updates["valid_until"] = *req.ValidUntil
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if err := s.db.Model(&promo).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update promo code: %w", err)
	}

	return &promo, nil
}

func (s *PromoService) DeletePromoCode(id uuid.UUID) error {
	res := s.db.Delete(&models.PromoCode{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete promo code: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: promo code %s", ErrNotFound, id)
	}
	return nil
}
