package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"   // placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "CONFIRMED" // confirmed by seller
	OrderStatusShipped   OrderStatus = "SHIPPED"   // out for delivery
	OrderStatusDelivered OrderStatus = "DELIVERED" // terminal
	OrderStatusCancelled OrderStatus = "CANCELLED" // terminal
)

// statusTransitions is the allow-list of next statuses per current status.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// ParseOrderStatus maps a request string onto a known status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransition reports whether an order may move from one status to the next.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID           string          `gorm:"primaryKey" json:"id"`
	BuyerID      string          `gorm:"index;not null" json:"buyerId"`
	Buyer        *User           `gorm:"foreignKey:BuyerID" json:"-"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status       OrderStatus     `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	ShippingInfo string          `json:"shippingInfo"` // opaque JSON from the client
	DeliveredAt  *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// OrderItem snapshots product name and price at purchase time; it must not
// change when the product row changes later.
type OrderItem struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	OrderID     string          `gorm:"index;not null" json:"-"`
	ProductID   string          `gorm:"not null" json:"productId"`
	Product     *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductName string          `gorm:"not null" json:"productName"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
}
