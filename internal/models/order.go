// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

// Order owns either a set of OrderProduct line items (IsPack=false) or a set
// of OrderPack entries (IsPack=true); never both. The total is never
// persisted: it is recomputed at read time from current product prices, the
// wilaya shipping table and the stored discount value, and attached to the
// transient Total field.
type Order struct {
	BaseModel
	CustomerName string       `json:"name" gorm:"column:customer_name;size:255;not null"`
	Phone        string       `json:"phone" gorm:"size:30;not null"`
	Wilaya       string       `json:"wilaya" gorm:"size:100;index"`
	City         string       `json:"city" gorm:"size:100"`
	Address      string       `json:"address" gorm:"size:512"`
	Remarks      string       `json:"remarks" gorm:"type:text"`
	DeliveryType DeliveryType `json:"delivery_type" gorm:"type:varchar(10)"`
	Status       OrderStatus  `json:"order_status" gorm:"type:varchar(20);default:'pending';index"`
	IsPack       bool         `json:"is_pack" gorm:"default:false"`
	PromoCode    *string      `json:"promo_code,omitempty" gorm:"size:50"`
	// DiscountValue is the flat amount resolved from the promo code at
	// creation time. Percentage codes are never re-derived later.
	DiscountValue float64 `json:"discount_value" gorm:"type:decimal(10,2);default:0"`

	// Relationships
	Products []OrderProduct `json:"products,omitempty" gorm:"foreignKey:OrderID"`
	Packs    []OrderPack    `json:"packs,omitempty" gorm:"foreignKey:OrderID"`

	// Computed at read time, never stored.
	Total float64 `json:"total" gorm:"-"`
}

// IsCanceled reports whether the order sits in its terminal state.
func (o *Order) IsCanceled() bool {
	return o.Status == OrderStatusCanceled
}

type OrderProduct struct {
	BaseModel
	OrderID    uuid.UUID    `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID    `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity   int          `json:"quantity" gorm:"not null;default:1"`
	Attributes AttributeMap `json:"attributes" gorm:"type:jsonb"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`

	// Per-attribute stock summary across the product's variants, attached
	// for display on reads.
	ProductAttr map[string]map[string]int `json:"product_attr,omitempty" gorm:"-"`
}

type OrderPack struct {
	BaseModel
	OrderID  uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	PackID   uuid.UUID `json:"pack_id" gorm:"type:uuid;not null;index"`
	Quantity int       `json:"quantity" gorm:"not null;default:1"`

	// Relationships
	Pack     *Pack              `json:"pack,omitempty" gorm:"foreignKey:PackID"`
	Products []OrderPackProduct `json:"products,omitempty" gorm:"foreignKey:OrderPackID"`
}

type OrderPackProduct struct {
	BaseModel
	OrderPackID uuid.UUID    `json:"order_pack_id" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID    `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity    int          `json:"quantity" gorm:"not null;default:1"`
	Attributes  AttributeMap `json:"attributes" gorm:"type:jsonb"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`

	ProductAttr map[string]map[string]int `json:"product_attr,omitempty" gorm:"-"`
}
