package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/ecosire/fleet-billing/internal/httpx"
	"github.com/ecosire/fleet-billing/internal/models"
	"github.com/ecosire/fleet-billing/internal/services"
)

// OrderHandler exposes fleet orders and their lifecycle over HTTP.
type OrderHandler struct {
	DB     *gorm.DB
	Orders *services.OrderService
	Costs  *services.CostService
}

func NewOrderHandler(db *gorm.DB, orders *services.OrderService, costs *services.CostService) *OrderHandler {
	return &OrderHandler{DB: db, Orders: orders, Costs: costs}
}

// List: GET /orders – paginated, newest first
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	dbq := h.DB.Model(&models.Order{})
	if s := strings.TrimSpace(r.URL.Query().Get("status")); s != "" {
		dbq = dbq.Where("status = ?", s)
	}
	if ext := strings.TrimSpace(r.URL.Query().Get("external_order_id")); ext != "" {
		dbq = dbq.Where("external_order_id = ?", ext)
	}
	var total int64
	dbq.Count(&total)
	var orders []models.Order
	if err := dbq.Preload("CostLines.Taxes").Preload("Lines").Order("created_at desc").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_orders", nil)
		return
	}
	for i := range orders {
		for j := range orders[i].CostLines {
			h.Costs.ComputeAmount(&orders[i].CostLines[j])
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": orders, "total": total, "limit": limit, "offset": offset})
}

// Create: POST /orders – JSON body
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	type costLineReq struct {
		ProductID   *uint   `json:"product_id"`
		Description string  `json:"description"`
		Quantity    float64 `json:"quantity"`
		PriceUnit   float64 `json:"price_unit"`
	}
	type createReq struct {
		CompanyID       uint          `json:"company_id"`
		CustomerID      uint          `json:"customer_id"`
		ExternalOrderID string        `json:"external_order_id"`
		OrderType       string        `json:"order_type"`
		CargoType       string        `json:"cargo_type"`
		DeliveryType    string        `json:"delivery_type"`
		CostLines       []costLineReq `json:"cost_lines"`
	}
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	missing := map[string]string{}
	if req.CustomerID == 0 {
		missing["customer_id"] = "required"
	}
	if req.CargoType != models.CargoBulk && req.CargoType != models.CargoContainer {
		missing["cargo_type"] = "bulk_or_container"
	}
	if req.DeliveryType != models.DeliveryYard && req.DeliveryType != models.DeliveryClient {
		missing["delivery_type"] = "yard_or_client"
	}
	if len(missing) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", missing)
		return
	}
	if req.OrderType == "" {
		req.OrderType = models.OrderTypeTransport
	}
	order := models.Order{
		CompanyID:       req.CompanyID,
		CustomerID:      req.CustomerID,
		ExternalOrderID: req.ExternalOrderID,
		OrderType:       req.OrderType,
		CargoType:       req.CargoType,
		DeliveryType:    req.DeliveryType,
	}
	for _, cl := range req.CostLines {
		line := models.CostLine{Description: cl.Description, Quantity: cl.Quantity, PriceUnit: cl.PriceUnit}
		if cl.ProductID != nil {
			var product models.Product
			if err := h.DB.Preload("Taxes").First(&product, *cl.ProductID).Error; err != nil {
				httpx.JSONError(w, http.StatusBadRequest, "invalid_product", map[string]any{"product_id": *cl.ProductID})
				return
			}
			h.Costs.ApplyProductDefaults(&line, &product, order.CompanyID)
			if cl.Description != "" {
				line.Description = cl.Description
			}
			if cl.PriceUnit != 0 {
				line.PriceUnit = cl.PriceUnit
			}
		}
		order.CostLines = append(order.CostLines, line)
	}
	if err := h.Orders.CreateOrder(&order); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_order", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": order.ID, "order_no": order.OrderNo, "status": order.Status})
}

// UpdateStatus: POST /orders/status?id=... – body {"status": "..."}
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_status", nil)
		return
	}
	sale, err := h.Orders.UpdateStatus(order, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_transition", map[string]string{"from": string(order.Status), "to": string(req.Status)})
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_status", nil)
		return
	}
	resp := map[string]any{"id": order.ID, "status": order.Status}
	if sale != nil {
		resp["sale_order_id"] = sale.ID
		resp["sale_order_name"] = sale.Name
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// SaleOrders: GET /orders/sales?id=...
func (h *OrderHandler) SaleOrders(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	sales, err := h.Orders.SaleOrders(order)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_sale_orders", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": sales, "total": len(sales)})
}

func (h *OrderHandler) loadOrder(w http.ResponseWriter, r *http.Request) (*models.Order, bool) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return nil, false
	}
	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return nil, false
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_order", nil)
		return nil, false
	}
	return &order, true
}
