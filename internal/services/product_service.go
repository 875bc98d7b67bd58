// internal/services/product_service.go
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

type ProductService struct {
	db      *gorm.DB
	storage *StorageService
}

func NewProductService(db *gorm.DB, storage *StorageService) *ProductService {
	return &ProductService{db: db, storage: storage}
}

type VariantInput struct {
	Attributes map[string]string `json:"attributes" validate:"required,min=1"`
	Stock      int               `json:"stock" validate:"min=0"`
	Price      *float64          `json:"price,omitempty" validate:"omitempty,gt=0"`
}

type CreateProductRequest struct {
	Name        string         `json:"name" validate:"required,min=2,max=255"`
	Description string         `json:"description,omitempty"`
	Price       float64        `json:"price" validate:"required,gt=0"`
	PrevPrice   *float64       `json:"prev_price,omitempty" validate:"omitempty,gt=0"`
	Quantity    int            `json:"quantity" validate:"min=0"`
	Images      []string       `json:"images,omitempty"`
	CategoryID  *uuid.UUID     `json:"category_id,omitempty"`
	Featured    bool           `json:"featured"`
	Variants    []VariantInput `json:"variants,omitempty" validate:"omitempty,dive"`
}

type UpdateProductRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string    `json:"description,omitempty"`
	Price       *float64   `json:"price,omitempty" validate:"omitempty,gt=0"`
	PrevPrice   *float64   `json:"prev_price,omitempty" validate:"omitempty,gt=0"`
	Quantity    *int       `json:"quantity,omitempty" validate:"omitempty,min=0"`
	Images      *[]string  `json:"images,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Featured    *bool      `json:"featured,omitempty"`
}

// ProductFilters narrows the storefront and admin listings.
type ProductFilters struct {
	CategoryID *uuid.UUID
	Featured   *bool
	InStock    bool
}

func (s *ProductService) GetProducts(params utils.PaginationParams, filters ProductFilters) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}
	if filters.InStock {
		query = query.Where(
			"quantity > 0 OR EXISTS (SELECT 1 FROM variants WHERE variants.product_id = products.id AND variants.stock > 0 AND variants.deleted_at IS NULL)",
		)
	}
	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "quantity"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Preload("Category").Preload("Variants").Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").Preload("Variants").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := checkDuplicateVariants(req.Variants); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		PrevPrice:   req.PrevPrice,
		Quantity:    req.Quantity,
		Images:      pq.StringArray(req.Images),
		CategoryID:  req.CategoryID,
		Featured:    req.Featured,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		for _, v := range req.Variants {
			variant := models.Variant{
				ProductID:  product.ID,
				Attributes: models.AttributeMap(v.Attributes),
				Stock:      v.Stock,
				Price:      v.Price,
			}
			if err := tx.Create(&variant).Error; err != nil {
				return fmt.Errorf("failed to create variant: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(product.ID)
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

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
	if req.PrevPrice != nil {
		updates["prev_price"] = *req.PrevPrice
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	if req.Images != nil {
		// Replaced images are deleted from storage so the bucket does not
		// accumulate orphans.
		kept := make(map[string]bool, len(*req.Images))
		for _, url := range *req.Images {
			kept[url] = true
		}
		for _, url := range product.Images {
			if !kept[url] {
				s.storage.DeleteFileByURL(url)
			}
		}
		updates["images"] = pq.StringArray(*req.Images)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return s.GetProduct(id)
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.Variant{}).Error; err != nil {
			return fmt.Errorf("failed to delete variants: %w", err)
		}
		if err := tx.Delete(&models.Product{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, url := range product.Images {
		s.storage.DeleteFileByURL(url)
	}
	return nil
}

// AddVariant appends a variant to a product, rejecting an attribute set that
// structurally equals an existing variant's.
func (s *ProductService) AddVariant(productID uuid.UUID, req *VariantInput) (*models.Variant, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	for _, existing := range product.Variants {
		if existing.Attributes.Equal(req.Attributes) {
			return nil, fmt.Errorf("%w: variant with identical attributes", ErrDuplicate)
		}
	}

	variant := &models.Variant{
		ProductID:  productID,
		Attributes: models.AttributeMap(req.Attributes),
		Stock:      req.Stock,
		Price:      req.Price,
	}
	if err := s.db.Create(variant).Error; err != nil {
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}
	return variant, nil
}

type UpdateVariantRequest struct {
	Attributes *map[string]string `json:"attributes,omitempty" validate:"omitempty,min=1"`
	Stock      *int               `json:"stock,omitempty" validate:"omitempty,min=0"`
	Price      *float64           `json:"price,omitempty" validate:"omitempty,gt=0"`
}

func (s *ProductService) UpdateVariant(productID, variantID uuid.UUID, req *UpdateVariantRequest) (*models.Variant, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var variant models.Variant
	if err := s.db.Where("id = ? AND product_id = ?", variantID, productID).First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: variant %s", ErrNotFound, variantID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Attributes != nil {
		var siblings []models.Variant
		if err := s.db.Where("product_id = ? AND id <> ?", productID, variantID).Find(&siblings).Error; err != nil {
			return nil, fmt.Errorf("failed to load variants: %w", err)
		}
		for _, sibling := range siblings {
			if sibling.Attributes.Equal(*req.Attributes) {
				return nil, fmt.Errorf("%w: variant with identical attributes", ErrDuplicate)
			}
		}
		updates["attributes"] = models.AttributeMap(*req.Attributes)
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}

	if len(updates) > 0 {
		if err := s.db.Model(&variant).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update variant: %w", err)
		}
	}
	return &variant, nil
}

func (s *ProductService) DeleteVariant(productID, variantID uuid.UUID) error {
	res := s.db.Where("id = ? AND product_id = ?", variantID, productID).Delete(&models.Variant{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete variant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: variant %s", ErrNotFound, variantID)
	}
	return nil
}

func checkDuplicateVariants(variants []VariantInput) error {
	for i := range variants {
		a := models.AttributeMap(variants[i].Attributes)
		for j := i + 1; j < len(variants); j++ {
			if a.Equal(variants[j].Attributes) {
				return fmt.Errorf("%w: variant with identical attributes", ErrDuplicate)
			}
		}
	}
	return nil
}
