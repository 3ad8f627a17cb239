package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// OrderLine is a cart line with the price snapshotted at creation. The
// snapshot is immutable: later catalog price changes never touch it.
type OrderLine struct {
	ProductID bson.ObjectID `json:"product_id" bson:"product_id"`
	StoreID   bson.ObjectID `json:"store_id" bson:"store_id"`
	Size      string        `json:"size,omitempty" bson:"size,omitempty"`
	Quantity  int           `json:"quantity" bson:"quantity"`
	Price     float64       `json:"price" bson:"price"`
}

func (l OrderLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// ShippingAddress is the structured destination captured at checkout.
type ShippingAddress struct {
	Name    string `json:"name" bson:"name" binding:"required"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Address string `json:"address" bson:"address" binding:"required"`
	City    string `json:"city" bson:"city" binding:"required"`
	Country string `json:"country" bson:"country" binding:"required"`
}

const (
	PaymentCOD          = "Cash on Delivery"
	PaymentCard         = "Card"
	PaymentBankTransfer = "Bank Transfer"

	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusFailed  = "Failed"
)

// Order is one purchase event. Lines may span several seller stores;
// stores read it through the store-scoped projection only. TotalAmount
// is a financial record frozen at creation, never a live view.
type Order struct {
	ID              bson.ObjectID   `json:"id" bson:"_id,omitempty"`
	OrderNumber     string          `json:"order_number" bson:"order_number"`
	UserID          bson.ObjectID   `json:"user_id" bson:"user_id"`
	Items           []OrderLine     `json:"items" bson:"items"`
	TotalAmount     float64         `json:"total_amount" bson:"total_amount"`
	ShippingAddress ShippingAddress `json:"shipping_address" bson:"shipping_address"`
	Status          string          `json:"status" bson:"status"`
	PaymentMethod   string          `json:"payment_method" bson:"payment_method"`
	PaymentStatus   string          `json:"payment_status" bson:"payment_status"`
	AssignedRider   *bson.ObjectID  `json:"assigned_rider,omitempty" bson:"assigned_rider,omitempty"`
	CreatedAt       time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" bson:"updated_at"`
}

// StoreIDs returns the distinct set of seller stores with at least one
// line in the order, in first-seen order. This set drives the fan-out.
func (o *Order) StoreIDs() []bson.ObjectID {
	seen := make(map[bson.ObjectID]bool, len(o.Items))
	ids := make([]bson.ObjectID, 0, len(o.Items))
	for _, line := range o.Items {
		if !seen[line.StoreID] {
			seen[line.StoreID] = true
			ids = append(ids, line.StoreID)
		}
	}
	return ids
}

func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s",
		time.Now().Format("20060102"),
		uuid.NewString()[:8],
	)
}

// BuildOrder snapshots a cart into a new Pending order. Every line must
// resolve to an active catalog product; any miss aborts the whole build
// with ErrInvalidCartLine. The caller persists the result and then runs
// fan-out and cart clearing.
func BuildOrder(cart *Cart, products map[bson.ObjectID]*Product, addr ShippingAddress, paymentMethod string) (*Order, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	items := make([]OrderLine, 0, len(cart.Lines))
	total := 0.0
	for _, line := range cart.Lines {
		p, ok := products[line.ProductID]
		if !ok || !p.IsActive() {
			return nil, fmt.Errorf("product %s: %w", line.ProductID.Hex(), ErrInvalidCartLine)
		}
		item := OrderLine{
			ProductID: line.ProductID,
			StoreID:   line.StoreID,
			Size:      line.Size,
			Quantity:  line.Quantity,
			Price:     p.Price,
		}
		items = append(items, item)
		total += item.Subtotal()
	}

	now := time.Now()
	return &Order{
		ID:              bson.NewObjectID(),
		OrderNumber:     GenerateOrderNumber(),
		UserID:          cart.UserID,
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: addr,
		Status:          StatusPending,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   PaymentStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

type CreateOrderRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required,oneof='Cash on Delivery' Card 'Bank Transfer'"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Processing Shipped Delivered Cancelled"`
}

type DeliveryStatusRequest struct {
	Status string `json:"status" binding:"required,oneof='Picked Up' Delivered"`
}
