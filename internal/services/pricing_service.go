// internal/services/pricing_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dzboutik/dzboutik-backend/internal/models"
)

// PricingService produces the displayable total for an order from its
// current inputs. Totals are never stored: product prices, the shipping
// table and the stored discount value are re-read on every computation, so
// historical totals drift when a product price changes later.
type PricingService struct {
	db *gorm.DB
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{db: db}
}

// OrderTotal computes subtotal + shipping - discount for a loaded order
// aggregate. Both the order-listing and the order-detail paths go through
// this single method so the two can never diverge.
//
// The order must have its line items preloaded with their Product (non-pack)
// or its packs preloaded with their Pack (pack orders).
func (s *PricingService) OrderTotal(order *models.Order) (float64, error) {
	subtotal := Subtotal(order)

	shipping, err := s.ShippingPrice(order.Wilaya, order.DeliveryType)
	if err != nil {
		return 0, err
	}

	// The discount was resolved to a flat amount at creation time. The
	// result is not floored at zero; an oversized discount yields a
	// negative total and it is the admin UI's job to surface that.
	return subtotal + shipping - order.DiscountValue, nil
}

// Subtotal sums the order's line items against current prices. For pack
// orders the stored bundle price is authoritative; the enumerated pack
// products are informational and never feed the total.
func Subtotal(order *models.Order) float64 {
	var subtotal float64

	if order.IsPack {
		for _, op := range order.Packs {
			if op.Pack != nil {
				subtotal += op.Pack.Price
			}
		}
		return subtotal
	}

	for _, line := range order.Products {
		if line.Product != nil {
			subtotal += line.Product.Price * float64(line.Quantity)
		}
	}
	return subtotal
}

// ShippingPrice resolves the shipping cost for a destination. A missing
// wilaya, an unknown delivery type or an empty destination all yield 0
// rather than an error: checkout reads must not fail on an incomplete
// shipping table.
func (s *PricingService) ShippingPrice(wilayaName string, delivery models.DeliveryType) (float64, error) {
	if wilayaName == "" || delivery == "" {
		return 0, nil
	}

	var wilaya models.Wilaya
	if err := s.db.Where("name = ?", wilayaName).First(&wilaya).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to load wilaya: %w", err)
	}

	return wilaya.ShippingPriceFor(delivery), nil
}
