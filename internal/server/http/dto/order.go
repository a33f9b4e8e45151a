package dto

import "time"

// OrderLineRequest is a requested product and quantity.
type OrderLineRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// PlaceOrderRequest describes checkout payload.
type PlaceOrderRequest struct {
	Items        []OrderLineRequest `json:"items"`
	ReferralCode string             `json:"referralCodeUsed"`
}

// OrderItemResponse is a priced line item snapshot.
type OrderItemResponse struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// OrderResponse describes an order.
type OrderResponse struct {
	ID              int64               `json:"id"`
	UserID          int64               `json:"userId"`
	Number          string              `json:"orderNumber"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     float64             `json:"totalAmount"`
	Status          string              `json:"status"`
	DeliveryAddress string              `json:"deliveryAddress"`
	ReferralCode    string              `json:"referredBy,omitempty"`
	AdminRemarks    string              `json:"adminRemarks,omitempty"`
	HiddenFromStaff bool                `json:"isHiddenFromStaff"`
	CreatedAt       time.Time           `json:"orderDate"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// OrderStatusRequest changes fulfilment status.
type OrderStatusRequest struct {
	Status       string  `json:"status"`
	AdminRemarks *string `json:"adminRemarks"`
}

// OrderVisibilityRequest hides or reveals an order for staff.
type OrderVisibilityRequest struct {
	Hide bool `json:"hide"`
}
