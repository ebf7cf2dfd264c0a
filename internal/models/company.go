package models

import "time"

// Company is the owning legal entity for orders, products and taxes.
type Company struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Currency  string `gorm:"not null;default:'SAR'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
