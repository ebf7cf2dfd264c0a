package pdf

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ecosire/fleet-billing/internal/models"
)

// InvoiceRenderer loads the invoice's sale order and fleet cost lines and
// renders the standard customer invoice report.
type InvoiceRenderer struct {
	DB *gorm.DB
}

func NewInvoiceRenderer(db *gorm.DB) *InvoiceRenderer { return &InvoiceRenderer{DB: db} }

func (r *InvoiceRenderer) RenderInvoicePDF(inv *models.Invoice) ([]byte, error) {
	var company models.Company
	if err := r.DB.First(&company, inv.CompanyID).Error; err != nil {
		return nil, fmt.Errorf("load company %d: %w", inv.CompanyID, err)
	}
	var customer models.Partner
	if err := r.DB.First(&customer, inv.PartnerID).Error; err != nil {
		return nil, fmt.Errorf("load partner %d: %w", inv.PartnerID, err)
	}

	data := InvoiceData{
		Name:            inv.Name,
		ExternalOrderID: inv.ExternalOrderID,
		Date:            inv.CreatedAt.Format("2006-01-02"),
		CompanyName:     company.Name,
		CustomerName:    customer.Name,
		Currency:        company.Currency,
	}
	if data.Name == "" {
		data.Name = fmt.Sprintf("%d", inv.ID)
	}

	if inv.SaleOrderID != nil {
		var sale models.SaleOrder
		if err := r.DB.First(&sale, *inv.SaleOrderID).Error; err != nil {
			return nil, fmt.Errorf("load sale order %d: %w", *inv.SaleOrderID, err)
		}
		if sale.FleetOrderID != nil {
			var lines []models.CostLine
			if err := r.DB.Preload("Taxes").Where("order_id = ?", *sale.FleetOrderID).Find(&lines).Error; err != nil {
				return nil, fmt.Errorf("load cost lines of order %d: %w", *sale.FleetOrderID, err)
			}
			for _, l := range lines {
				res := models.ComputeAll(l.Taxes, l.PriceUnit, l.Quantity)
				data.Items = append(data.Items, InvoiceItem{
					Description: l.Description,
					Quantity:    l.Quantity,
					UnitPrice:   l.PriceUnit,
					Total:       res.TotalIncluded,
				})
				data.TotalUntaxed += res.TotalExcluded
				data.Total += res.TotalIncluded
			}
			data.TotalTax = data.Total - data.TotalUntaxed
		}
	}
	return InvoicePDF(data)
}
