// internal/models/wilaya.go
package models

import (
	"github.com/lib/pq"
)

// Wilaya is the shipping-zone unit: an Algerian province with per
// delivery-method pricing and the city names valid for it.
type Wilaya struct {
	BaseModel
	Name   string         `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Cities pq.StringArray `json:"cities" gorm:"type:text[]"`
	// ShippingPrices maps delivery type to price, e.g. {"home": 1200, "desk": 800}.
	ShippingPrices JSONB `json:"shipping_prices" gorm:"type:jsonb"`
	// No gorm default tag; a default would override Active=false on insert.
	Active bool `json:"active" gorm:"index"`
}

// ShippingPriceFor resolves the price for a delivery type. Missing or
// unparsable entries yield 0 rather than an error; checkout stays usable
// when the shipping table is incomplete.
func (w *Wilaya) ShippingPriceFor(delivery DeliveryType) float64 {
	if w == nil || w.ShippingPrices == nil {
		return 0
	}
	raw, ok := w.ShippingPrices[string(delivery)]
	if !ok {
		return 0
	}
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
