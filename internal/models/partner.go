package models

import (
	"fmt"
	"time"
)

// Contact types
const (
	ContactIndividual = "individual"
	ContactCompany    = "company"
	ContactDriver     = "driver"
)

// Partner is a customer or driver contact.
type Partner struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	ContactType string `gorm:"not null;default:'individual'"` // individual, company, driver

	CommercialRegistration string

	// Driver-specific fields
	DriverLicenseNumber string
	DriverLicenseExpiry *time.Time
	DriverLicenseClass  string // class_a..class_d, commercial, motorcycle, other
	IqamaNumber         string
	IssueNumber         string
	VehicleAssignedID   *uint

	Latitude  float64
	Longitude float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LocationDisplay returns a user-friendly rendering of the partner coordinates.
func (p *Partner) LocationDisplay() string {
	if p.Latitude == 0 && p.Longitude == 0 {
		return ""
	}
	return fmt.Sprintf("%.6f, %.6f", p.Latitude, p.Longitude)
}
