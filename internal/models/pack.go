// internal/models/pack.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Pack is a fixed bundle of products sold at a bundle price. The bundle
// price is authoritative for order totals; the per-product composition is
// informational and drives stock movements only.
type Pack struct {
	BaseModel
	Name        string         `json:"name" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Price       float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Images      pq.StringArray `json:"images" gorm:"type:text[]"`

	// Relationships
	Products []PackProduct `json:"products,omitempty" gorm:"foreignKey:PackID"`
}

type PackProduct struct {
	BaseModel
	PackID    uuid.UUID `json:"pack_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
