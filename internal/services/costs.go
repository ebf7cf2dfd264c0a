package services

import (
	"github.com/ecosire/fleet-billing/internal/models"
)

// CostService computes cost line amounts and applies product defaults.
// Computation is pure: the same inputs always produce the same derived
// Subtotal/Total and nothing else is touched.
type CostService struct{}

func NewCostService() *CostService { return &CostService{} }

// ComputeAmount recomputes the derived Subtotal and Total of a line.
// Without taxes both equal quantity × unit price; with taxes the combined
// tax computation is used verbatim.
func (s *CostService) ComputeAmount(line *models.CostLine) (subtotal, total float64) {
	if line == nil {
		return 0, 0
	}
	if len(line.Taxes) == 0 {
		amount := line.PriceUnit * line.Quantity
		line.Subtotal = amount
		line.Total = amount
		return amount, amount
	}
	res := models.ComputeAll(line.Taxes, line.PriceUnit, line.Quantity)
	line.Subtotal = res.TotalExcluded
	line.Total = res.TotalIncluded
	return line.Subtotal, line.Total
}

// ApplyProductDefaults fills a line from the selected product: sale
// description, list price (always overwritten), quantity 1.0 only when the
// line has none, and the product's sale taxes for the line's company
// (replacing the whole tax set).
func (s *CostService) ApplyProductDefaults(line *models.CostLine, product *models.Product, companyID uint) {
	if line == nil || product == nil {
		return
	}
	line.ProductID = &product.ID
	line.Description = product.DescriptionSale
	if line.Quantity == 0 {
		line.Quantity = 1.0
	}
	line.PriceUnit = product.ListPrice
	line.Taxes = product.SaleTaxes(companyID)
}

// OrderCostTotals sums the derived amounts over an order's cost lines.
func (s *CostService) OrderCostTotals(lines []models.CostLine) (subtotal, total float64) {
	for i := range lines {
		st, tt := s.ComputeAmount(&lines[i])
		subtotal += st
		total += tt
	}
	return subtotal, total
}
