package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ecosire/fleet-billing/internal/models"
)

// BillingService materializes sale orders from completed fleet orders and
// threads the external correlation identifier through to invoices.
type BillingService struct{}

func NewBillingService() *BillingService { return &BillingService{} }

// CreateSaleOrderFromOrder creates and confirms the billing header for an
// order. No lines are created here: the upstream system adds them later via
// API against the cost ledger, so the order is confirmed with a zero total
// to authorize downstream invoicing.
//
// Idempotent per order: when a linked sale order already exists it is
// returned unchanged instead of creating a duplicate.
// Errors propagate to the caller; when invoked from a status transition they
// roll back the enclosing transaction, status write included.
func (s *BillingService) CreateSaleOrderFromOrder(tx *gorm.DB, order *models.Order) (*models.SaleOrder, error) {
	var existing models.SaleOrder
	err := tx.Where("fleet_order_id = ?", order.ID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup sale order for %s: %w", order.OrderNo, err)
	}

	name, err := nextByCode(tx, models.SeqSaleOrder)
	if err != nil {
		return nil, err
	}
	sale := models.SaleOrder{
		Name:            name,
		PartnerID:       order.CustomerID,
		CompanyID:       order.CompanyID,
		Origin:          order.OrderNo,
		State:           models.SaleStateDraft,
		FleetOrderID:    &order.ID,
		ExternalOrderID: order.ExternalOrderID,
	}
	if err := tx.Create(&sale).Error; err != nil {
		return nil, fmt.Errorf("create sale order from %s: %w", order.OrderNo, err)
	}
	if err := s.Confirm(tx, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// Confirm transitions a sale order to the confirmed state.
func (s *BillingService) Confirm(tx *gorm.DB, sale *models.SaleOrder) error {
	if sale.State == models.SaleStateSale {
		return nil
	}
	if err := tx.Model(sale).Update("state", models.SaleStateSale).Error; err != nil {
		return fmt.Errorf("confirm sale order %s: %w", sale.Name, err)
	}
	sale.State = models.SaleStateSale
	return nil
}

// PrepareInvoice builds the invoice values for a sale order. The external
// identifier comes from the sale order itself when set, otherwise from the
// originating fleet order; when both are empty the field stays unset.
func (s *BillingService) PrepareInvoice(tx *gorm.DB, sale *models.SaleOrder) (*models.Invoice, error) {
	inv := models.Invoice{
		MoveType:    models.MoveTypeCustomerInvoice,
		State:       models.InvoiceStateDraft,
		PartnerID:   sale.PartnerID,
		CompanyID:   sale.CompanyID,
		SaleOrderID: &sale.ID,
	}
	externalID := sale.ExternalOrderID
	if externalID == "" && sale.FleetOrderID != nil {
		var order models.Order
		if err := tx.Select("external_order_id").First(&order, *sale.FleetOrderID).Error; err != nil {
			return nil, fmt.Errorf("load fleet order for sale %s: %w", sale.Name, err)
		}
		externalID = order.ExternalOrderID
	}
	if externalID != "" {
		inv.ExternalOrderID = externalID
	}
	return &inv, nil
}

// FleetCostLines returns the originating order's cost lines for display on
// the sale order. It is a read-only view, not a copy: lines stay owned by
// the fleet order.
func (s *BillingService) FleetCostLines(tx *gorm.DB, sale *models.SaleOrder) ([]models.CostLine, error) {
	if sale.FleetOrderID == nil {
		return nil, nil
	}
	var lines []models.CostLine
	if err := tx.Preload("Taxes").Where("order_id = ?", *sale.FleetOrderID).Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("load cost lines for sale %s: %w", sale.Name, err)
	}
	return lines, nil
}
