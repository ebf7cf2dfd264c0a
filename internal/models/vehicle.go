package models

import (
	"fmt"
	"time"
)

// Vehicle categories (distinct from the manufacturer model type).
const (
	VehicleSedan      = "sedan"
	VehicleSUV        = "suv"
	VehicleTruck      = "truck"
	VehicleVan        = "van"
	VehiclePickup     = "pickup"
	VehicleDyna       = "dyna"
	VehicleBus        = "bus"
	VehicleMotorcycle = "motorcycle"
	VehicleOther      = "other"
)

// Vehicle is a fleet vehicle with Saudi plate structure and registration /
// insurance documents tracked for expiry.
type Vehicle struct {
	ID        uint `gorm:"primaryKey"`
	CompanyID uint `gorm:"not null"`

	LicensePlate string
	VIN          string `gorm:"column:vin"`
	Brand        string
	ModelName    string
	ModelYear    int

	PlateTypeID       int
	PlateRightLetter  string `gorm:"size:1"`
	PlateMiddleLetter string `gorm:"size:1"`
	PlateLeftLetter   string `gorm:"size:1"`
	PlateNumber       string `gorm:"size:10"`

	Category string // sedan, suv, truck, van, pickup, dyna, bus, motorcycle, other

	IstimaraSerialNumber string
	IstimaraStartDate    *time.Time
	IstimaraExpiryDate   *time.Time

	InsuranceType       string
	InsuranceNumber     string
	InsuranceStartDate  *time.Time
	InsuranceExpiryDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FormattedPlate renders the complete plate from its parts, falling back to
// the raw license plate when any part is missing.
func (v *Vehicle) FormattedPlate() string {
	if v.PlateRightLetter != "" && v.PlateMiddleLetter != "" && v.PlateLeftLetter != "" && v.PlateNumber != "" {
		return fmt.Sprintf("%s %s %s %s", v.PlateRightLetter, v.PlateMiddleLetter, v.PlateLeftLetter, v.PlateNumber)
	}
	return v.LicensePlate
}
