// internal/models/promo.go
package models

import "time"

type PromoCode struct {
	BaseModel
	Code       string       `json:"code" gorm:"uniqueIndex;size:50;not null"`
	Discount   float64      `json:"discount" gorm:"type:decimal(10,2);not null"`
	Type       DiscountType `json:"type" gorm:"type:varchar(20);not null;default:'fixed'"`
	ValidFrom  time.Time    `json:"valid_from"`
	ValidUntil time.Time    `json:"valid_until"`
	// No gorm default tag: with one, gorm drops a zero-valued Active from the
	// INSERT and the column comes back true for a code created as inactive.
	Active bool `json:"active"`
}

// UsableAt checks the validity window and the active flag.
func (p *PromoCode) UsableAt(now time.Time) bool {
	if !p.Active {
		return false
	}
	if now.Before(p.ValidFrom) || now.After(p.ValidUntil) {
		return false
	}
	return true
}
