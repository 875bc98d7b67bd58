// internal/services/pack_service.go
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

type PackService struct {
	db      *gorm.DB
	storage *StorageService
}

func NewPackService(db *gorm.DB, storage *StorageService) *PackService {
	return &PackService{db: db, storage: storage}
}

type PackProductInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type CreatePackRequest struct {
	Name        string             `json:"name" validate:"required,min=2,max=255"`
	Description string             `json:"description,omitempty"`
	Price       float64            `json:"price" validate:"required,gt=0"`
	Images      []string           `json:"images,omitempty"`
	Products    []PackProductInput `json:"products" validate:"required,min=1,dive"`
}

type UpdatePackRequest struct {
	Name        *string             `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string             `json:"description,omitempty"`
	Price       *float64            `json:"price,omitempty" validate:"omitempty,gt=0"`
	Images      *[]string           `json:"images,omitempty"`
	Products    *[]PackProductInput `json:"products,omitempty" validate:"omitempty,min=1,dive"`
}

func (s *PackService) GetPacks(params utils.PaginationParams) ([]models.Pack, int64, error) {
	query := s.db.Model(&models.Pack{})

	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count packs: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "price"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var packs []models.Pack
	if err := query.Preload("Products.Product.Variants").Find(&packs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch packs: %w", err)
	}

	return packs, total, nil
}

func (s *PackService) GetPack(id uuid.UUID) (*models.Pack, error) {
	var pack models.Pack
	if err := s.db.Preload("Products.Product.Variants").First(&pack, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: pack %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &pack, nil
}

func (s *PackService) CreatePack(req *CreatePackRequest) (*models.Pack, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	pack := &models.Pack{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      pq.StringArray(req.Images),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(pack).Error; err != nil {
			return fmt.Errorf("failed to create pack: %w", err)
		}
		return s.createComposition(tx, pack.ID, req.Products)
	})
	if err != nil {
		return nil, err
	}

	return s.GetPack(pack.ID)
}

func (s *PackService) UpdatePack(id uuid.UUID, req *UpdatePackRequest) (*models.Pack, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	pack, err := s.GetPack(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.Images != nil {
			kept := make(map[string]bool, len(*req.Images))
			for _, url := range *req.Images {
				kept[url] = true
			}
			for _, url := range pack.Images {
				if !kept[url] {
					s.storage.DeleteFileByURL(url)
				}
			}
			updates["images"] = pq.StringArray(*req.Images)
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Pack{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update pack: %w", err)
			}
		}

		if req.Products != nil {
			if err := tx.Where("pack_id = ?", id).Delete(&models.PackProduct{}).Error; err != nil {
				return fmt.Errorf("failed to clear pack composition: %w", err)
			}
			return s.createComposition(tx, id, *req.Products)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetPack(id)
}

func (s *PackService) createComposition(tx *gorm.DB, packID uuid.UUID, products []PackProductInput) error {
	for _, entry := range products {
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", entry.ProductID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check product: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: product %s", ErrNotFound, entry.ProductID)
		}

		row := models.PackProduct{
			PackID:    packID,
			ProductID: entry.ProductID,
			Quantity:  entry.Quantity,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create pack product: %w", err)
		}
	}
	return nil
}

func (s *PackService) DeletePack(id uuid.UUID) error {
	pack, err := s.GetPack(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pack_id = ?", id).Delete(&models.PackProduct{}).Error; err != nil {
			return fmt.Errorf("failed to delete pack composition: %w", err)
		}
		if err := tx.Delete(&models.Pack{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete pack: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, url := range pack.Images {
		s.storage.DeleteFileByURL(url)
	}
	return nil
}
