package model

import "time"

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// DefaultDeliveryAddress is used for orders of digital goods.
const DefaultDeliveryAddress = "Digital delivery"

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  nil,
	OrderStatusCancelled:  nil,
}

// Valid reports whether s is one of the enumerated statuses.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether the strict state machine allows s -> next.
// Staying in the same status is always allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is a line item snapshot taken at checkout.
type OrderItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// OrderLine is a requested product and quantity before pricing.
type OrderLine struct {
	ProductID int64
	Quantity  int
}

// Order is an immutable purchase snapshot with a mutable fulfilment status.
type Order struct {
	ID              int64
	UserID          int64
	Number          string
	Items           []OrderItem
	TotalAmount     float64
	Status          OrderStatus
	DeliveryAddress string
	ReferralCode    string
	ReferrerID      *int64
	ReferralPaid    bool
	AdminRemarks    string
	HiddenFromStaff bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
