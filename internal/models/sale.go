package models

import "time"

// Sale order states
const (
	SaleStateDraft = "draft"
	SaleStateSale  = "sale"
)

// SaleOrder is the billing document generated from a completed fleet order.
// Lines are added later by the upstream system via API; the header is created
// and confirmed with a zero total.
type SaleOrder struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	PartnerID uint   `gorm:"not null"`
	CompanyID uint   `gorm:"not null"`
	Origin    string
	State     string `gorm:"not null;default:'draft'"`

	FleetOrderID    *uint  `gorm:"index"`
	ExternalOrderID string `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
