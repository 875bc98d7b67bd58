// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Category struct {
	BaseModel
	Name  string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Image string `json:"image" gorm:"size:512"`

	// Relationships
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

type Product struct {
	BaseModel
	Name        string         `json:"name" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Price       float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	PrevPrice   *float64       `json:"prev_price,omitempty" gorm:"type:decimal(10,2)"`
	// Quantity is the product's own stock counter. It is authoritative only
	// when the product has no variants; otherwise the variant stocks are.
	Quantity   int            `json:"quantity" gorm:"default:0"`
	Images     pq.StringArray `json:"images" gorm:"type:text[]"`
	CategoryID *uuid.UUID     `json:"category_id" gorm:"type:uuid;index"`
	Featured   bool           `json:"featured" gorm:"default:false;index"`

	// Relationships
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Variants []Variant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
}

// HasVariants reports whether variant stocks supersede the product quantity.
// Only meaningful when Variants has been loaded.
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// AttributeStock aggregates variant stock per attribute value:
// {attributeName: {attributeValue: total stock across variants having it}}.
// Informational metadata for display; pricing never consumes it.
func (p *Product) AttributeStock() map[string]map[string]int {
	if !p.HasVariants() {
		return nil
	}
	agg := make(map[string]map[string]int)
	for _, v := range p.Variants {
		for name, value := range v.Attributes {
			if agg[name] == nil {
				agg[name] = make(map[string]int)
			}
			agg[name][value] += v.Stock
		}
	}
	return agg
}

type Variant struct {
	BaseModel
	ProductID  uuid.UUID    `json:"product_id" gorm:"type:uuid;not null;index"`
	Attributes AttributeMap `json:"attributes" gorm:"type:jsonb;not null"`
	Stock      int          `json:"stock" gorm:"default:0"`
	Price      *float64     `json:"price,omitempty" gorm:"type:decimal(10,2)"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
