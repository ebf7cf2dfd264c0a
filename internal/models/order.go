package models

import "time"

// OrderStatus enumerates the fleet order lifecycle.
type OrderStatus string

const (
	StatusCreated              OrderStatus = "created"
	StatusDispatched           OrderStatus = "dispatched"
	StatusStarted              OrderStatus = "started"
	StatusEnroute              OrderStatus = "enroute"
	StatusDropOffComplete      OrderStatus = "drop_off_complete"
	StatusCompleted            OrderStatus = "completed"
	StatusEmptyContainerReturn OrderStatus = "empty_container_return"
	StatusYardDropOff          OrderStatus = "yard_drop_off"
	StatusYardDropOffComplete  OrderStatus = "yard_drop_off_complete"
	StatusYardPickUp           OrderStatus = "yard_pick_up"
	StatusCanceled             OrderStatus = "canceled"
)

// Order / cargo / delivery classifications
const (
	OrderTypeTransport = "transport"

	CargoBulk      = "bulk"
	CargoContainer = "container"

	DeliveryYard   = "yard"
	DeliveryClient = "client"
)

// Order is one transport job progressing through the status lifecycle.
type Order struct {
	ID        uint `gorm:"primaryKey"`
	CompanyID uint `gorm:"not null"`

	OrderNo         string `gorm:"uniqueIndex;not null"`
	ExternalOrderID string `gorm:"index"`

	OrderType    string      `gorm:"not null;default:'transport'"`
	CargoType    string      `gorm:"not null"` // bulk, container
	DeliveryType string      `gorm:"not null"` // yard, client
	Status       OrderStatus `gorm:"index;not null;default:'created'"`

	CustomerID uint `gorm:"not null"`
	DriverID   *uint
	VehicleID  *uint

	CargoSize       string
	ContainerNumber string
	ContainerWeight float64
	BulkWeight      float64

	// Pickup location
	PickupLat     float64
	PickupLng     float64
	PickupAddress string
	PickupCity    string

	// Drop-off location
	DropOffLat     float64
	DropOffLng     float64
	DropOffAddress string
	DropOffCity    string

	// Empty-container drop-off location
	EmptyDropOffLat     float64
	EmptyDropOffLng     float64
	EmptyDropOffAddress string
	EmptyDropOffCity    string
	EmptyDropOffName    string
	EmptyDropOffPhone   string

	// Yard drop-off location
	YardDropOffLat     float64
	YardDropOffLng     float64
	YardDropOffAddress string
	YardDropOffCity    string

	Notes                     string
	ProofOfDelivery           string
	ProofOfDeliverySign       string `gorm:"type:text"` // raw JSON payload
	ProofEmptyContainerReturn string
	LastDateContainerReturn   *time.Time
	ExpectedDeliveryDate      *time.Time

	ItemsPayload   string `gorm:"type:text"` // raw JSON from the upstream system
	PaymentPayload string `gorm:"type:text"`

	WaybillID          int
	BayanTripID        int
	BillOfLadingNumber string
	BayanNumber        string

	// Payment terms
	PaymentMethod string // Cash, ATM Card, Credit Card, SDAD, Cheque, Bank Transfer
	IsTradable    bool
	Fare          float64
	PaidBySender  bool

	Lines      []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CostLines  []CostLine  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	SaleOrders []SaleOrder `gorm:"foreignKey:FleetOrderID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderLine is one transported item on an order.
type OrderLine struct {
	ID       uint `gorm:"primaryKey"`
	OrderID  uint `gorm:"not null;index"`
	Unit     string
	Quantity float64
	Price    float64
	GoodType string
	Weight   float64
}

// CostLine is one billable item accumulated against an order. Subtotal and
// Total are derived by the cost service and never persisted.
type CostLine struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"not null;index"`
	ProductID *uint

	Description string `gorm:"type:text"`
	Quantity    float64
	PriceUnit   float64
	Taxes       []Tax `gorm:"many2many:cost_line_taxes"`

	Subtotal float64 `gorm:"-"`
	Total    float64 `gorm:"-"`
}
