package main

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/ecosire/fleet-billing/internal/config"
	"github.com/ecosire/fleet-billing/internal/handlers"
	"github.com/ecosire/fleet-billing/internal/params"
	"github.com/ecosire/fleet-billing/internal/pdf"
	"github.com/ecosire/fleet-billing/internal/services"
)

// NewApp wires services and handlers onto one mux.
func NewApp(dbConn *gorm.DB, cfg config.Config) http.Handler {
	store := params.NewStore(dbConn)
	costs := services.NewCostService()
	billing := services.NewBillingService()
	orders := services.NewOrderService(dbConn, billing)
	notifier := services.NewDeliveryNotifier(pdf.NewInvoiceRenderer(dbConn), store)
	notifier.DefaultBaseURL = cfg.UploadBaseURL

	orderHandler := handlers.NewOrderHandler(dbConn, orders, costs)
	invoiceHandler := handlers.NewInvoiceHandler(dbConn, billing, notifier)
	vehicleHandler := handlers.NewVehicleHandler(dbConn)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders", orderHandler.List)
	mux.HandleFunc("POST /orders", orderHandler.Create)
	mux.HandleFunc("POST /orders/status", orderHandler.UpdateStatus)
	mux.HandleFunc("GET /orders/sales", orderHandler.SaleOrders)

	mux.HandleFunc("POST /invoices/prepare", invoiceHandler.Prepare)
	mux.HandleFunc("POST /invoices/post", invoiceHandler.Post)
	mux.HandleFunc("GET /invoices/pdf", invoiceHandler.PDF)

	mux.HandleFunc("GET /vehicles/export", vehicleHandler.Export)
	mux.HandleFunc("POST /vehicles/sync", vehicleHandler.Sync)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
