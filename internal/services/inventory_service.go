// internal/services/inventory_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dzboutik/dzboutik-backend/internal/models"
)

// InventoryService maintains the stock counters mutated by the order
// lifecycle. When attributes are given, the delta targets the single variant
// whose attribute map equals them exactly; otherwise it targets the
// product's own quantity column.
//
// All methods take the *gorm.DB they should run on so callers can pass the
// transaction wrapping an order mutation.
type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// DecrementStock subtracts quantity from the matching stock counter. The
// update is conditional on the counter staying non-negative; an affected-row
// count of zero on an existing row means ErrInsufficientStock, so two
// concurrent checkouts can never drive stock below zero.
func (s *InventoryService) DecrementStock(tx *gorm.DB, productID uuid.UUID, attributes map[string]string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("invalid quantity %d", quantity)
	}

	if len(attributes) > 0 {
		variant, err := s.findVariant(tx, productID, attributes)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Variant{}).
			Where("id = ? AND stock >= ?", variant.ID, quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement variant stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: variant %s", ErrInsufficientStock, variant.ID)
		}
		return nil
	}

	res := tx.Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", productID, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to decrement product stock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing product from an exhausted one.
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check product: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: product %s", ErrNotFound, productID)
		}
		return fmt.Errorf("%w: product %s", ErrInsufficientStock, productID)
	}
	return nil
}

// IncrementStock credits quantity back to the matching counter. Invoked only
// on the one-way transition into the canceled status; the caller guards
// against double-crediting.
func (s *InventoryService) IncrementStock(tx *gorm.DB, productID uuid.UUID, attributes map[string]string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("invalid quantity %d", quantity)
	}

	if len(attributes) > 0 {
		variant, err := s.findVariant(tx, productID, attributes)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Variant{}).
			Where("id = ?", variant.ID).
			UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
		if res.Error != nil {
			return fmt.Errorf("failed to restore variant stock: %w", res.Error)
		}
		return nil
	}

	res := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to restore product stock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}
	return nil
}

// findVariant loads the product's variants and selects the one whose
// attribute map is structurally equal to the requested attributes. Partial
// matches never count.
func (s *InventoryService) findVariant(tx *gorm.DB, productID uuid.UUID, attributes map[string]string) (*models.Variant, error) {
	var variants []models.Variant
	if err := tx.Where("product_id = ?", productID).Find(&variants).Error; err != nil {
		return nil, fmt.Errorf("failed to load variants: %w", err)
	}

	for i := range variants {
		if variants[i].Attributes.Equal(attributes) {
			return &variants[i], nil
		}
	}

	return nil, fmt.Errorf("%w: product %s", ErrVariantNotFound, productID)
}
