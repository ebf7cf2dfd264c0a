package models

import "fmt"

// Sequence codes
const (
	SeqFleetOrder = "fleet.order"
	SeqSaleOrder  = "sale.order"
)

// Sequence generates gapless document numbers per code. NextNumber is the
// next value to hand out; callers increment it inside their own transaction.
type Sequence struct {
	ID         uint   `gorm:"primaryKey"`
	Code       string `gorm:"uniqueIndex;not null"`
	Prefix     string
	Padding    int `gorm:"not null;default:5"`
	NextNumber int `gorm:"not null;default:1"`
}

// Format renders n with this sequence's prefix and zero padding.
func (s Sequence) Format(n int) string {
	return fmt.Sprintf("%s%0*d", s.Prefix, s.Padding, n)
}
