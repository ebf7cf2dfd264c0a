package fleetapi

import (
	"fmt"
	"time"

	"github.com/ecosire/fleet-billing/internal/models"
)

// Defaults used by the export when vehicle data is missing.
const (
	defaultPlateTypeID = 2 // standard Saudi plate
	defaultModelYear   = 2024
	defaultCategory    = models.VehicleSedan
)

const dateLayout = "2006-01-02"

// VehiclePayload is the full wire representation of a vehicle. Export is
// total: every field is always present, defaulted when unset.
type VehiclePayload struct {
	PlateTypeID         int              `json:"plateTypeId"`
	VehiclePlate        PlatePayload     `json:"vehiclePlate"`
	ChassisNumber       string           `json:"chassis_number"`
	VehicleManufacturer string           `json:"vehicle_manufacturer"`
	VehicleModel        string           `json:"vehicle_model"`
	VehicleYear         int              `json:"vehicle_year"`
	VehicleType         string           `json:"vehicle_type"`
	Istimara            DocumentPayload  `json:"istimara"`
	Insurance           InsurancePayload `json:"insurance"`
}

type PlatePayload struct {
	RightLetter  string `json:"rightLetter"`
	MiddleLetter string `json:"middleLetter"`
	LeftLetter   string `json:"leftLetter"`
	Number       string `json:"number"`
}

type DocumentPayload struct {
	SerialNumber string `json:"serial_number"`
	StartDate    string `json:"start_date"`
	ExpiryDate   string `json:"expiry_date"`
}

type InsurancePayload struct {
	Type       string `json:"type"`
	Number     string `json:"number"`
	StartDate  string `json:"start_date"`
	ExpiryDate string `json:"expiry_date"`
}

// ExportVehicle maps a vehicle to the fleet API format.
func ExportVehicle(v *models.Vehicle) VehiclePayload {
	p := VehiclePayload{
		PlateTypeID: v.PlateTypeID,
		VehiclePlate: PlatePayload{
			RightLetter:  v.PlateRightLetter,
			MiddleLetter: v.PlateMiddleLetter,
			LeftLetter:   v.PlateLeftLetter,
			Number:       v.PlateNumber,
		},
		ChassisNumber:       v.VIN,
		VehicleManufacturer: v.Brand,
		VehicleModel:        v.ModelName,
		VehicleYear:         v.ModelYear,
		VehicleType:         v.Category,
		Istimara: DocumentPayload{
			SerialNumber: v.IstimaraSerialNumber,
			StartDate:    formatDate(v.IstimaraStartDate),
			ExpiryDate:   formatDate(v.IstimaraExpiryDate),
		},
		Insurance: InsurancePayload{
			Type:       v.InsuranceType,
			Number:     v.InsuranceNumber,
			StartDate:  formatDate(v.InsuranceStartDate),
			ExpiryDate: formatDate(v.InsuranceExpiryDate),
		},
	}
	if p.PlateTypeID == 0 {
		p.PlateTypeID = defaultPlateTypeID
	}
	if p.VehicleYear == 0 {
		p.VehicleYear = defaultModelYear
	}
	if p.VehicleType == "" {
		p.VehicleType = defaultCategory
	}
	return p
}

// VehiclePatch is a partial update: only non-nil fields are applied, and the
// nested objects merge key-by-key rather than replacing wholesale.
type VehiclePatch struct {
	PlateTypeID   *int            `json:"plateTypeId"`
	VehiclePlate  *PlatePatch     `json:"vehiclePlate"`
	ChassisNumber *string         `json:"chassis_number"`
	VehicleYear   *int            `json:"vehicle_year"`
	VehicleType   *string         `json:"vehicle_type"`
	Istimara      *DocumentPatch  `json:"istimara"`
	Insurance     *InsurancePatch `json:"insurance"`
}

type PlatePatch struct {
	RightLetter  *string `json:"rightLetter"`
	MiddleLetter *string `json:"middleLetter"`
	LeftLetter   *string `json:"leftLetter"`
	Number       *string `json:"number"`
}

type DocumentPatch struct {
	SerialNumber *string `json:"serial_number"`
	StartDate    *string `json:"start_date"`
	ExpiryDate   *string `json:"expiry_date"`
}

type InsurancePatch struct {
	Type       *string `json:"type"`
	Number     *string `json:"number"`
	StartDate  *string `json:"start_date"`
	ExpiryDate *string `json:"expiry_date"`
}

// ApplyPatch merges a patch into a vehicle. Absent keys leave the vehicle
// untouched; an empty date string clears the stored date.
func ApplyPatch(v *models.Vehicle, p *VehiclePatch) error {
	if p == nil {
		return nil
	}
	if p.PlateTypeID != nil {
		v.PlateTypeID = *p.PlateTypeID
	}
	if p.VehiclePlate != nil {
		if p.VehiclePlate.RightLetter != nil {
			v.PlateRightLetter = *p.VehiclePlate.RightLetter
		}
		if p.VehiclePlate.MiddleLetter != nil {
			v.PlateMiddleLetter = *p.VehiclePlate.MiddleLetter
		}
		if p.VehiclePlate.LeftLetter != nil {
			v.PlateLeftLetter = *p.VehiclePlate.LeftLetter
		}
		if p.VehiclePlate.Number != nil {
			v.PlateNumber = *p.VehiclePlate.Number
		}
	}
	if p.ChassisNumber != nil {
		v.VIN = *p.ChassisNumber
	}
	if p.VehicleYear != nil {
		v.ModelYear = *p.VehicleYear
	}
	if p.VehicleType != nil {
		v.Category = *p.VehicleType
	}
	if p.Istimara != nil {
		if p.Istimara.SerialNumber != nil {
			v.IstimaraSerialNumber = *p.Istimara.SerialNumber
		}
		if err := patchDate(&v.IstimaraStartDate, p.Istimara.StartDate, "istimara.start_date"); err != nil {
			return err
		}
		if err := patchDate(&v.IstimaraExpiryDate, p.Istimara.ExpiryDate, "istimara.expiry_date"); err != nil {
			return err
		}
	}
	if p.Insurance != nil {
		if p.Insurance.Type != nil {
			v.InsuranceType = *p.Insurance.Type
		}
		if p.Insurance.Number != nil {
			v.InsuranceNumber = *p.Insurance.Number
		}
		if err := patchDate(&v.InsuranceStartDate, p.Insurance.StartDate, "insurance.start_date"); err != nil {
			return err
		}
		if err := patchDate(&v.InsuranceExpiryDate, p.Insurance.ExpiryDate, "insurance.expiry_date"); err != nil {
			return err
		}
	}
	return nil
}

func patchDate(dst **time.Time, src *string, field string) error {
	if src == nil {
		return nil
	}
	if *src == "" {
		*dst = nil
		return nil
	}
	t, err := time.Parse(dateLayout, *src)
	if err != nil {
		return fmt.Errorf("parse %s %q: %w", field, *src, err)
	}
	*dst = &t
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
