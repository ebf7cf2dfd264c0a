package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/ecosire/fleet-billing/internal/fleetapi"
	"github.com/ecosire/fleet-billing/internal/models"
)

func TestVehicleExportAndSync(t *testing.T) {
	db := setupHandlerTestDB(t)
	company, _, _ := seedHandlerFixtures(t, db)

	v := models.Vehicle{
		CompanyID:         company.ID,
		PlateTypeID:       2,
		PlateRightLetter:  "A",
		PlateMiddleLetter: "B",
		PlateLeftLetter:   "D",
		PlateNumber:       "4821",
		VIN:               "JTDBT123456789012",
		Category:          models.VehicleTruck,
		ModelYear:         2022,
	}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("vehicle: %v", err)
	}
	h := NewVehicleHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/vehicles/export?id="+strconv.Itoa(int(v.ID)), nil)
	w := httptest.NewRecorder()
	h.Export(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("export: expected 200 got %d", w.Code)
	}
	var payload fleetapi.VehiclePayload
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.VehiclePlate.Number != "4821" || payload.ChassisNumber != "JTDBT123456789012" {
		t.Fatalf("unexpected export: %+v", payload)
	}

	sreq := httptest.NewRequest(http.MethodPost, "/vehicles/sync?id="+strconv.Itoa(int(v.ID)),
		strings.NewReader(`{"vehiclePlate":{"number":"9999"},"istimara":{"serial_number":"IST-1","expiry_date":"2025-06-30"}}`))
	sw := httptest.NewRecorder()
	h.Sync(sw, sreq)
	if sw.Code != http.StatusOK {
		t.Fatalf("sync: expected 200 got %d body=%s", sw.Code, sw.Body.String())
	}
	var got models.Vehicle
	if err := db.First(&got, v.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.PlateNumber != "9999" {
		t.Fatalf("plate number not patched: %q", got.PlateNumber)
	}
	if got.PlateRightLetter != "A" {
		t.Fatalf("unpatched plate letter must survive: %q", got.PlateRightLetter)
	}
	if got.IstimaraSerialNumber != "IST-1" || got.IstimaraExpiryDate == nil {
		t.Fatalf("istimara not patched: %+v", got)
	}
}

func TestVehicleSyncRejectsBadDate(t *testing.T) {
	db := setupHandlerTestDB(t)
	company, _, _ := seedHandlerFixtures(t, db)
	v := models.Vehicle{CompanyID: company.ID}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("vehicle: %v", err)
	}
	h := NewVehicleHandler(db)
	req := httptest.NewRequest(http.MethodPost, "/vehicles/sync?id="+strconv.Itoa(int(v.ID)),
		strings.NewReader(`{"insurance":{"start_date":"30/06/2025"}}`))
	w := httptest.NewRecorder()
	h.Sync(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}
