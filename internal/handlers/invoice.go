package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/ecosire/fleet-billing/internal/httpx"
	"github.com/ecosire/fleet-billing/internal/models"
	"github.com/ecosire/fleet-billing/internal/services"
)

// InvoiceHandler prepares and posts invoices. Posting fires the delivery
// notifier after the state change has committed.
type InvoiceHandler struct {
	DB       *gorm.DB
	Billing  *services.BillingService
	Notifier *services.DeliveryNotifier
}

func NewInvoiceHandler(db *gorm.DB, billing *services.BillingService, notifier *services.DeliveryNotifier) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Billing: billing, Notifier: notifier}
}

// Prepare: POST /invoices/prepare?sale_id=... – build a draft invoice from a
// confirmed sale order, propagating the external order id.
func (h *InvoiceHandler) Prepare(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("sale_id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_sale_id", nil)
		return
	}
	var sale models.SaleOrder
	if err := h.DB.First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_sale_order", nil)
		return
	}
	if sale.State != models.SaleStateSale {
		httpx.JSONError(w, http.StatusBadRequest, "sale_order_not_confirmed", nil)
		return
	}
	var inv *models.Invoice
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		prepared, err := h.Billing.PrepareInvoice(tx, &sale)
		if err != nil {
			return err
		}
		if err := tx.Create(prepared).Error; err != nil {
			return err
		}
		inv = prepared
		return nil
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_prepare_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": inv.ID, "state": inv.State, "external_order_id": inv.ExternalOrderID})
}

// Post: POST /invoices/post?id=... – finalize the invoice, then hand it to
// the delivery notifier. Notifier failures never affect the response: the
// invoice stays posted regardless.
func (h *InvoiceHandler) Post(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var inv models.Invoice
	if err := h.DB.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	if inv.State != models.InvoiceStatePosted {
		updates := map[string]any{"state": models.InvoiceStatePosted}
		if inv.Name == "" {
			updates["name"] = "INV/" + strconv.Itoa(int(inv.ID))
		}
		if err := h.DB.Model(&inv).Updates(updates).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_post", nil)
			return
		}
		inv.State = models.InvoiceStatePosted
	}
	// Posting has committed; the upload is outside its failure boundary.
	h.Notifier.OnInvoicePosted(&inv)
	httpx.JSON(w, http.StatusOK, map[string]any{"id": inv.ID, "state": inv.State})
}

// PDF: GET /invoices/pdf?id=...
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var inv models.Invoice
	if err := h.DB.First(&inv, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	data, err := h.Notifier.Renderer.RenderInvoicePDF(&inv)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_render_pdf", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="invoice_`+strconv.Itoa(int(inv.ID))+`.pdf"`)
	_, _ = w.Write(data)
}
