package models

import "time"

// Contract carries the payroll extras tracked for drivers.
type Contract struct {
	ID              uint `gorm:"primaryKey"`
	EmployeeName    string
	PartnerID       *uint
	OtherAllowances string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
