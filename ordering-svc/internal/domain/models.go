package domain

import "time"

const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"
)

const (
	PaymentCounter   = "counter"
	PaymentGooglePay = "googlepay"
)

// Restaurant.ID is the business key (e.g. "rest001"); InternalID is assigned by the store.
type Restaurant struct {
	InternalID  string `json:"_id"`
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	BannerImage string `json:"bannerImage,omitempty"`
}

// MenuItem.RestaurantID is serialized as "id" and holds the owning restaurant's business key.
type MenuItem struct {
	InternalID   string  `json:"_id"`
	RestaurantID string  `json:"id" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	Category     string  `json:"category" validate:"required"`
	Image        string  `json:"image,omitempty"`
}

type MenuFilter struct {
	RestaurantID string
	Category     string
}

type OrderItem struct {
	ID          string  `json:"_id"`
	ItemID      string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

type Order struct {
	InternalID    string      `json:"_id"`
	OrderNumber   string      `json:"orderNumber" validate:"required"`
	Items         []OrderItem `json:"items"`
	Subtotal      *float64    `json:"subtotal" validate:"required"`
	Tax           *float64    `json:"tax" validate:"required"`
	Total         *float64    `json:"total" validate:"required"`
	TableNumber   *int        `json:"tableNumber" validate:"required"`
	PaymentMethod string      `json:"paymentMethod" validate:"required,oneof=counter googlepay"`
	Paid          *bool       `json:"paid" validate:"required"`
	UserID        string      `json:"userId" validate:"required"`
	RestaurantID  string      `json:"restaurantId" validate:"required"`
	PhoneNumber   string      `json:"phonenumber" validate:"required"`
	OrderStatus   string      `json:"orderStatus" validate:"required"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func (o *Order) IsCompleted() bool {
	return o.OrderStatus == OrderStatusCompleted
}

const (
	EventOrderCreated   = "order_created"
	EventOrderCompleted = "order_completed"
)

type OrderEvent struct {
	Type         string    `json:"type"`
	OrderID      string    `json:"orderId"`
	OrderNumber  string    `json:"orderNumber"`
	RestaurantID string    `json:"restaurantId"`
	OrderStatus  string    `json:"orderStatus"`
	Total        float64   `json:"total"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewOrderEvent(eventType string, order *Order, at time.Time) OrderEvent {
	event := OrderEvent{
		Type:         eventType,
		OrderID:      order.InternalID,
		OrderNumber:  order.OrderNumber,
		RestaurantID: order.RestaurantID,
		OrderStatus:  order.OrderStatus,
		Timestamp:    at,
	}
	if order.Total != nil {
		event.Total = *order.Total
	}
	return event
}
