package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ecosire/fleet-billing/internal/models"
)

// ErrInvalidTransition is returned when a status change is not allowed by
// the transition table. The order is left untouched.
var ErrInvalidTransition = errors.New("invalid status transition")

// transitions lists the allowed next statuses per current status. completed
// and canceled are terminal. canceled is reachable from every active state.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusCreated:              {models.StatusDispatched, models.StatusCanceled},
	models.StatusDispatched:           {models.StatusStarted, models.StatusCanceled},
	models.StatusStarted:              {models.StatusEnroute, models.StatusYardPickUp, models.StatusCanceled},
	models.StatusEnroute:              {models.StatusDropOffComplete, models.StatusYardDropOff, models.StatusCanceled},
	models.StatusDropOffComplete:      {models.StatusCompleted, models.StatusEmptyContainerReturn, models.StatusYardDropOff, models.StatusCanceled},
	models.StatusEmptyContainerReturn: {models.StatusCompleted, models.StatusCanceled},
	models.StatusYardDropOff:          {models.StatusYardDropOffComplete, models.StatusCanceled},
	models.StatusYardDropOffComplete:  {models.StatusYardPickUp, models.StatusCompleted, models.StatusCanceled},
	models.StatusYardPickUp:           {models.StatusEnroute, models.StatusCanceled},
	models.StatusCompleted:            {},
	models.StatusCanceled:             {},
}

// CanTransition reports whether from → to is allowed. Writing the current
// status again is a permitted no-op.
func CanTransition(from, to models.OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderService owns order creation and the status lifecycle.
type OrderService struct {
	DB      *gorm.DB
	Billing *BillingService
}

func NewOrderService(db *gorm.DB, billing *BillingService) *OrderService {
	return &OrderService{DB: db, Billing: billing}
}

// CreateOrder persists a new order, assigning the order number from the
// sequence when none was supplied. The number is never reassigned afterwards.
func (s *OrderService) CreateOrder(order *models.Order) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if order.OrderNo == "" || order.OrderNo == "/" {
			no, err := nextByCode(tx, models.SeqFleetOrder)
			if err != nil {
				return err
			}
			order.OrderNo = no
		}
		if order.Status == "" {
			order.Status = models.StatusCreated
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("create order %s: %w", order.OrderNo, err)
		}
		return nil
	})
}

// UpdateStatus validates and persists a status change. A genuine change into
// completed additionally creates the sale order from the cost ledger, inside
// the same transaction: the status write is only durable if billing
// succeeds, and the sale order always observes the completed status.
//
// Re-writing completed on an already-completed order is a no-op and never
// produces a second sale order.
func (s *OrderService) UpdateStatus(order *models.Order, next models.OrderStatus) (*models.SaleOrder, error) {
	if _, ok := transitions[next]; !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}
	if !CanTransition(order.Status, next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}
	if order.Status == next {
		return nil, nil
	}
	var sale *models.SaleOrder
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Update("status", next).Error; err != nil {
			return fmt.Errorf("update status of %s: %w", order.OrderNo, err)
		}
		order.Status = next
		if next == models.StatusCompleted {
			created, err := s.Billing.CreateSaleOrderFromOrder(tx, order)
			if err != nil {
				return err
			}
			sale = created
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// SaleOrders returns the sale orders generated from an order.
func (s *OrderService) SaleOrders(order *models.Order) ([]models.SaleOrder, error) {
	var sales []models.SaleOrder
	if err := s.DB.Where("fleet_order_id = ?", order.ID).Order("id").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("load sale orders of %s: %w", order.OrderNo, err)
	}
	return sales, nil
}
