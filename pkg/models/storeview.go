package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// StoreOrderView is the projection of a shared order limited to one
// seller's lines. A store with zero lines in an order never sees it.
type StoreOrderView struct {
	OrderID         bson.ObjectID   `json:"order_id"`
	OrderNumber     string          `json:"order_number"`
	Customer        string          `json:"customer"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Items           []OrderLine     `json:"items"`
	StoreTotal      float64         `json:"store_total"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ForStore filters the order down to storeID's lines and recomputes the
// store subtotal from the snapshotted prices. Fails ErrNotFound when the
// store has no line in the order.
func (o *Order) ForStore(storeID bson.ObjectID) (*StoreOrderView, error) {
	items := make([]OrderLine, 0, len(o.Items))
	total := 0.0
	for _, line := range o.Items {
		if line.StoreID == storeID {
			items = append(items, line)
			total += line.Subtotal()
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("order %s has no items for store %s: %w",
			o.ID.Hex(), storeID.Hex(), ErrNotFound)
	}

	return &StoreOrderView{
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		Customer:        o.ShippingAddress.Name,
		CustomerPhone:   o.ShippingAddress.Phone,
		ShippingAddress: o.ShippingAddress,
		Items:           items,
		StoreTotal:      total,
		Status:          o.Status,
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   o.PaymentStatus,
		CreatedAt:       o.CreatedAt,
	}, nil
}
