package models

import "time"

// Tax usage types
const (
	TaxUseSale     = "sale"
	TaxUsePurchase = "purchase"
)

// Tax is a percentage tax definition. Rate is a fraction (0.15 for 15%).
type Tax struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"not null"`
	Rate         float64 `gorm:"not null"`
	TypeTaxUse   string  `gorm:"not null;default:'sale'"`
	CompanyID    uint    `gorm:"not null"`
	PriceInclude bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TaxResult carries the combined outcome of a tax computation.
type TaxResult struct {
	TotalExcluded float64
	TotalIncluded float64
}

// Compute maps (unit price, quantity) to untaxed and taxed amounts for a
// single tax. Pure; no side effects.
func (t Tax) Compute(priceUnit, quantity float64) TaxResult {
	base := priceUnit * quantity
	if t.PriceInclude {
		untaxed := base / (1 + t.Rate)
		return TaxResult{TotalExcluded: untaxed, TotalIncluded: base}
	}
	return TaxResult{TotalExcluded: base, TotalIncluded: base * (1 + t.Rate)}
}

// ComputeAll combines a set of taxes over one line. Included taxes reduce the
// base first, then every rate applies to the shared untaxed amount.
func ComputeAll(taxes []Tax, priceUnit, quantity float64) TaxResult {
	base := priceUnit * quantity
	untaxed := base
	for _, t := range taxes {
		if t.PriceInclude {
			untaxed = untaxed / (1 + t.Rate)
		}
	}
	var amount float64
	for _, t := range taxes {
		amount += untaxed * t.Rate
	}
	return TaxResult{TotalExcluded: untaxed, TotalIncluded: untaxed + amount}
}

// Product is a sellable catalog entry used to default cost lines.
type Product struct {
	ID              uint   `gorm:"primaryKey"`
	CompanyID       uint   `gorm:"not null"`
	Code            string `gorm:"index"`
	Name            string `gorm:"not null"`
	DescriptionSale string // multi-line sales description
	ListPrice       float64
	SaleOK          bool  `gorm:"not null;default:true"`
	Taxes           []Tax `gorm:"many2many:product_taxes"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SaleTaxes returns the product taxes restricted to the given company and
// sale usage.
func (p *Product) SaleTaxes(companyID uint) []Tax {
	out := make([]Tax, 0, len(p.Taxes))
	for _, t := range p.Taxes {
		if t.CompanyID == companyID && t.TypeTaxUse == TaxUseSale {
			out = append(out, t)
		}
	}
	return out
}
