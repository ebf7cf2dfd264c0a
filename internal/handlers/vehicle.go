package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/ecosire/fleet-billing/internal/fleetapi"
	"github.com/ecosire/fleet-billing/internal/httpx"
	"github.com/ecosire/fleet-billing/internal/models"
)

// VehicleHandler serves the bidirectional vehicle sync with the fleet system.
type VehicleHandler struct {
	DB *gorm.DB
}

func NewVehicleHandler(db *gorm.DB) *VehicleHandler { return &VehicleHandler{DB: db} }

// Export: GET /vehicles/export?id=... – total representation, all fields.
func (h *VehicleHandler) Export(w http.ResponseWriter, r *http.Request) {
	v, ok := h.loadVehicle(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, fleetapi.ExportVehicle(v))
}

// Sync: POST /vehicles/sync?id=... – partial patch, merged key-by-key.
func (h *VehicleHandler) Sync(w http.ResponseWriter, r *http.Request) {
	v, ok := h.loadVehicle(w, r)
	if !ok {
		return
	}
	var patch fleetapi.VehiclePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := fleetapi.ApplyPatch(v, &patch); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_patch", map[string]string{"reason": err.Error()})
		return
	}
	if err := h.DB.Save(v).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_vehicle", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, fleetapi.ExportVehicle(v))
}

func (h *VehicleHandler) loadVehicle(w http.ResponseWriter, r *http.Request) (*models.Vehicle, bool) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return nil, false
	}
	var v models.Vehicle
	if err := h.DB.First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return nil, false
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_vehicle", nil)
		return nil, false
	}
	return &v, true
}
