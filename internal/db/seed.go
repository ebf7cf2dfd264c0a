package db

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecosire/fleet-billing/internal/models"
)

// Seed inserts baseline reference data. Safe to run repeatedly.
func Seed(db *gorm.DB) {
	var company models.Company
	if err := db.Where("name = ?", "ECOSIRE Transport").First(&company).Error; err == gorm.ErrRecordNotFound {
		company = models.Company{Name: "ECOSIRE Transport", Currency: "SAR"}
		db.Create(&company)
	}

	var vat models.Tax
	if err := db.Where("name = ?", "VAT 15%").First(&vat).Error; err == gorm.ErrRecordNotFound {
		vat = models.Tax{Name: "VAT 15%", Rate: 0.15, TypeTaxUse: models.TaxUseSale, CompanyID: company.ID}
		db.Create(&vat)
	}

	baseProducts := []models.Product{
		{CompanyID: company.ID, Code: "TRANS", Name: "Transport Service", DescriptionSale: "Transport Service\nDoor to door cargo transport", ListPrice: 500, SaleOK: true},
		{CompanyID: company.ID, Code: "DEMUR", Name: "Demurrage", DescriptionSale: "Demurrage\nWaiting time beyond free period", ListPrice: 150, SaleOK: true},
		{CompanyID: company.ID, Code: "HAND", Name: "Handling", DescriptionSale: "Handling\nLoading and unloading", ListPrice: 80, SaleOK: true},
	}
	for _, p := range baseProducts {
		var existing models.Product
		if err := db.Where("code = ? AND company_id = ?", p.Code, company.ID).First(&existing).Error; err == gorm.ErrRecordNotFound {
			p.Taxes = []models.Tax{vat}
			db.Create(&p)
		}
	}

	for _, code := range []string{models.SeqFleetOrder, models.SeqSaleOrder} {
		var existing models.Sequence
		if err := db.Where("code = ?", code).First(&existing).Error; err == gorm.ErrRecordNotFound {
			prefix := "FO"
			if code == models.SeqSaleOrder {
				prefix = "SO"
			}
			db.Create(&models.Sequence{Code: code, Prefix: prefix, Padding: 5, NextNumber: 1})
		}
	}

	var demo models.Partner
	if err := db.Where("name = ?", "Demo Customer").First(&demo).Error; err == gorm.ErrRecordNotFound {
		demo = models.Partner{Name: "Demo Customer", ContactType: models.ContactCompany, CommercialRegistration: "CR-1010101010"}
		db.Create(&demo)
	}

	var order models.Order
	if err := db.Where("order_no = ?", "FO-DEMO").First(&order).Error; err == gorm.ErrRecordNotFound {
		order = models.Order{
			CompanyID:       company.ID,
			OrderNo:         "FO-DEMO",
			ExternalOrderID: uuid.NewString(),
			OrderType:       models.OrderTypeTransport,
			CargoType:       models.CargoContainer,
			DeliveryType:    models.DeliveryClient,
			Status:          models.StatusCreated,
			CustomerID:      demo.ID,
		}
		db.Create(&order)
	}
}
