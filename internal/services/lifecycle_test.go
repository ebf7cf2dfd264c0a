package services

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ecosire/fleet-billing/internal/models"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Company{}, &models.Partner{}, &models.Tax{}, &models.Product{},
		&models.Sequence{}, &models.SystemParameter{},
		&models.Order{}, &models.OrderLine{}, &models.CostLine{},
		&models.SaleOrder{}, &models.Invoice{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedOrderFixtures(t *testing.T, db *gorm.DB) (models.Company, models.Partner) {
	t.Helper()
	company := models.Company{Name: "ECOSIRE Transport", Currency: "SAR"}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("company: %v", err)
	}
	customer := models.Partner{Name: "ACME Shipping", ContactType: models.ContactCompany}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("customer: %v", err)
	}
	return company, customer
}

func newTestOrder(company models.Company, customer models.Partner) models.Order {
	return models.Order{
		CompanyID:    company.ID,
		CustomerID:   customer.ID,
		OrderType:    models.OrderTypeTransport,
		CargoType:    models.CargoContainer,
		DeliveryType: models.DeliveryClient,
	}
}

// walk an order along the main line up to (but excluding) completed
func advanceToDropOffComplete(t *testing.T, svc *OrderService, order *models.Order) {
	t.Helper()
	for _, next := range []models.OrderStatus{
		models.StatusDispatched, models.StatusStarted, models.StatusEnroute, models.StatusDropOffComplete,
	} {
		if _, err := svc.UpdateStatus(order, next); err != nil {
			t.Fatalf("advance to %s: %v", next, err)
		}
	}
}

func TestCreateOrderAssignsSequentialNumbers(t *testing.T) {
	db := setupServiceTestDB(t)
	company, customer := seedOrderFixtures(t, db)
	svc := NewOrderService(db, NewBillingService())

	first := newTestOrder(company, customer)
	if err := svc.CreateOrder(&first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.OrderNo != "FO00001" {
		t.Fatalf("expected FO00001 got %s", first.OrderNo)
	}
	if first.Status != models.StatusCreated {
		t.Fatalf("expected created got %s", first.Status)
	}
	second := newTestOrder(company, customer)
	if err := svc.CreateOrder(&second); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.OrderNo != "FO00002" {
		t.Fatalf("expected FO00002 got %s", second.OrderNo)
	}
}

func TestOrderNumberUnique(t *testing.T) {
	db := setupServiceTestDB(t)
	company, customer := seedOrderFixtures(t, db)
	svc := NewOrderService(db, NewBillingService())

	first := newTestOrder(company, customer)
	first.OrderNo = "FO99999"
	if err := svc.CreateOrder(&first); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := newTestOrder(company, customer)
	dup.OrderNo = "FO99999"
	if err := svc.CreateOrder(&dup); err == nil {
		t.Fatal("expected duplicate order number to fail")
	}
}

func TestCompletedTransitionCreatesConfirmedSaleOrder(t *testing.T) {
	db := setupServiceTestDB(t)
	company, customer := seedOrderFixtures(t, db)
	svc := NewOrderService(db, NewBillingService())

	order := newTestOrder(company, customer)
	order.ExternalOrderID = "EXT-42"
	order.CostLines = []models.CostLine{{Quantity: 2, PriceUnit: 100}}
	if err := svc.CreateOrder(&order); err != nil {
		t.Fatalf("create: %v", err)
	}
	advanceToDropOffComplete(t, svc, &order)

	sale, err := svc.UpdateStatus(&order, models.StatusCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if sale == nil {
		t.Fatal("expected sale order on completion")
	}
	if sale.State != models.SaleStateSale {
		t.Fatalf("sale order not confirmed: %s", sale.State)
	}
	if sale.PartnerID != customer.ID || sale.CompanyID != company.ID {
		t.Fatalf("sale order customer/company mismatch: %+v", sale)
	}
	if sale.Origin != order.OrderNo {
		t.Fatalf("origin mismatch: %s vs %s", sale.Origin, order.OrderNo)
	}
	if sale.ExternalOrderID != "EXT-42" {
		t.Fatalf("external id not propagated: %q", sale.ExternalOrderID)
	}
	if sale.FleetOrderID == nil || *sale.FleetOrderID != order.ID {
		t.Fatalf("back-reference missing: %+v", sale.FleetOrderID)
	}

	var count int64
	db.Model(&models.SaleOrder{}).Where("fleet_order_id = ?", order.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one sale order, got %d", count)
	}
}

func TestDoubleCompletionCreatesNoDuplicate(t *testing.T) {
	db := setupServiceTestDB(t)
	company, customer := seedOrderFixtures(t, db)
	svc := NewOrderService(db, NewBillingService())

	order := newTestOrder(company, customer)
	if err := svc.CreateOrder(&order); err != nil {
		t.Fatalf("create: %v", err)
	}
	advanceToDropOffComplete(t, svc, &order)
	if _, err := svc.UpdateStatus(&order, models.StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// same-status write is a no-op, not a second trigger
	sale, err := svc.UpdateStatus(&order, models.StatusCompleted)
	if err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	if sale != nil {
		t.Fatal("re-writing completed must not create another sale order")
	}
	var count int64
	db.Model(&models.SaleOrder{}).Where("fleet_order_id = ?", order.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected one sale order, got %d", count)
	}
}

func TestInvalidTransitionsRejected(t *testing.T) {
	db := setupServiceTestDB(t)
	company, customer := seedOrderFixtures(t, db)
	svc := NewOrderService(db, NewBillingService())

	order := newTestOrder(company, customer)
	if err := svc.CreateOrder(&order); err != nil {
		t.Fatalf("create: %v", err)
	}

	// created may not jump straight to completed
	if _, err := svc.UpdateStatus(&order, models.StatusCompleted); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if order.Status != models.StatusCreated {
		t.Fatalf("status changed on rejected transition: %s", order.Status)
	}

	// completed is terminal
	advanceToDropOffComplete(t, svc, &order)
	if _, err := svc.UpdateStatus(&order, models.StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.UpdateStatus(&order, models.StatusCreated); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected terminal completed, got %v", err)
	}

	// unknown status value
	if _, err := svc.UpdateStatus(&order, models.OrderStatus("bogus")); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected rejection of unknown status, got %v", err)
	}
}

func TestCancelReachableFromActiveStates(t *testing.T) {
	db := setupServiceTestDB(t)
	company, customer := seedOrderFixtures(t, db)
	svc := NewOrderService(db, NewBillingService())

	order := newTestOrder(company, customer)
	if err := svc.CreateOrder(&order); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.UpdateStatus(&order, models.StatusDispatched); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if _, err := svc.UpdateStatus(&order, models.StatusCanceled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	var count int64
	db.Model(&models.SaleOrder{}).Where("fleet_order_id = ?", order.ID).Count(&count)
	if count != 0 {
		t.Fatalf("cancellation must not create sale orders, got %d", count)
	}
}

func TestYardBranchReachesCompletion(t *testing.T) {
	db := setupServiceTestDB(t)
	company, customer := seedOrderFixtures(t, db)
	svc := NewOrderService(db, NewBillingService())

	order := newTestOrder(company, customer)
	order.DeliveryType = models.DeliveryYard
	if err := svc.CreateOrder(&order); err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, next := range []models.OrderStatus{
		models.StatusDispatched, models.StatusStarted, models.StatusEnroute,
		models.StatusYardDropOff, models.StatusYardDropOffComplete, models.StatusCompleted,
	} {
		if _, err := svc.UpdateStatus(&order, next); err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}
	var count int64
	db.Model(&models.SaleOrder{}).Where("fleet_order_id = ?", order.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected sale order from yard completion, got %d", count)
	}
}
