package models

import "time"

// Invoice move types and states
const (
	MoveTypeCustomerInvoice = "out_invoice"
	MoveTypeCustomerRefund  = "out_refund"
	MoveTypeVendorBill      = "in_invoice"

	InvoiceStateDraft  = "draft"
	InvoiceStatePosted = "posted"
)

// Invoice is a finance document prepared from a sale order.
type Invoice struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"index"`
	MoveType  string `gorm:"not null;default:'out_invoice'"`
	State     string `gorm:"not null;default:'draft'"`
	PartnerID uint   `gorm:"not null"`
	CompanyID uint   `gorm:"not null"`

	SaleOrderID     *uint
	ExternalOrderID string `gorm:"index"`

	AmountTotal float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
