// internal/services/wilaya_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/dzboutik/dzboutik-backend/internal/models"
	"github.com/dzboutik/dzboutik-backend/internal/utils"
)

type WilayaService struct {
	db *gorm.DB
}

func NewWilayaService(db *gorm.DB) *WilayaService {
	return &WilayaService{db: db}
}

type CreateWilayaRequest struct {
	Name           string             `json:"name" validate:"required,min=2,max=100"`
	Cities         []string           `json:"cities,omitempty"`
	ShippingPrices map[string]float64 `json:"shipping_prices,omitempty" validate:"omitempty,dive,min=0"`
	Active         *bool              `json:"active,omitempty"`
}

type UpdateWilayaRequest struct {
	Name           *string             `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Cities         *[]string           `json:"cities,omitempty"`
	ShippingPrices *map[string]float64 `json:"shipping_prices,omitempty" validate:"omitempty,dive,min=0"`
	Active         *bool               `json:"active,omitempty"`
}

// GetWilayas lists shipping zones. activeOnly restricts to the zones
// currently offered at checkout.
func (s *WilayaService) GetWilayas(params utils.PaginationParams, activeOnly bool) ([]models.Wilaya, int64, error) {
	query := s.db.Model(&models.Wilaya{})

	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count wilayas: %w", err)
	}

	allowedSortFields := []string{"created_at", "name"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var wilayas []models.Wilaya
	if err := query.Find(&wilayas).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch wilayas: %w", err)
	}

	return wilayas, total, nil
}

func (s *WilayaService) GetWilaya(id uuid.UUID) (*models.Wilaya, error) {
	var wilaya models.Wilaya
	if err := s.db.First(&wilaya, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: wilaya %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &wilaya, nil
}

func (s *WilayaService) CreateWilaya(req *CreateWilayaRequest) (*models.Wilaya, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existing models.Wilaya
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: wilaya %q", ErrDuplicate, req.Name)
	}

	wilaya := &models.Wilaya{
		Name:           req.Name,
		Cities:         pq.StringArray(req.Cities),
		ShippingPrices: shippingPricesJSONB(req.ShippingPrices),
		Active:         true,
	}
	if req.Active != nil {
		wilaya.Active = *req.Active
	}

	if err := s.db.Create(wilaya).Error; err != nil {
		return nil, fmt.Errorf("failed to create wilaya: %w", err)
	}
	return wilaya, nil
}

func (s *WilayaService) UpdateWilaya(id uuid.UUID, req *UpdateWilayaRequest) (*models.Wilaya, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	wilaya, err := s.GetWilaya(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Cities != nil {
		updates["cities"] = pq.StringArray(*req.Cities)
	}
	if req.ShippingPrices != nil {
		updates["shipping_prices"] = shippingPricesJSONB(*req.ShippingPrices)
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := s.db.Model(wilaya).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update wilaya: %w", err)
		}
	}
	return wilaya, nil
}

func (s *WilayaService) DeleteWilaya(id uuid.UUID) error {
	res := s.db.Delete(&models.Wilaya{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete wilaya: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: wilaya %s", ErrNotFound, id)
	}
	return nil
}

func shippingPricesJSONB(prices map[string]float64) models.JSONB {
	if prices == nil {
		return nil
	}
	out := make(models.JSONB, len(prices))
	for k, v := range prices {
		out[k] = v
	}
	return out
}
