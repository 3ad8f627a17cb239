package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CartLine is one (product, store, size) entry. The cart stores no
// prices of its own: the total is recomputed from the live catalog
// after every mutation and prices only freeze at order creation.
type CartLine struct {
	ProductID bson.ObjectID `json:"product_id" bson:"product_id"`
	StoreID   bson.ObjectID `json:"store_id" bson:"store_id"`
	Size      string        `json:"size,omitempty" bson:"size,omitempty"`
	Quantity  int           `json:"quantity" bson:"quantity"`
}

// Cart is the single mutable cart document for one user. Version backs
// the conditional save that serializes concurrent mutations per user.
type Cart struct {
	ID         bson.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     bson.ObjectID `json:"user_id" bson:"user_id"`
	Lines      []CartLine    `json:"items" bson:"items"`
	TotalPrice float64       `json:"total_price" bson:"total_price"`
	Version    int64         `json:"-" bson:"version"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" bson:"updated_at"`
}

func NewCart(userID bson.ObjectID) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		Lines:     []CartLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Upsert merges on the (product, store, size) triple: an existing line
// gains quantity, otherwise the line is appended.
func (c *Cart) Upsert(line CartLine) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID &&
			c.Lines[i].StoreID == line.StoreID &&
			c.Lines[i].Size == line.Size {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// SetQuantity overwrites the quantity on every line for the product.
// Returns false when the product is not in the cart.
func (c *Cart) SetQuantity(productID bson.ObjectID, quantity int) bool {
	found := false
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			found = true
		}
	}
	return found
}

// Remove drops every line for the product. Returns false when nothing
// matched.
func (c *Cart) Remove(productID bson.ObjectID) bool {
	kept := c.Lines[:0]
	removed := false
	for _, line := range c.Lines {
		if line.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	c.Lines = kept
	return removed
}

func (c *Cart) Clear() {
	c.Lines = []CartLine{}
	c.TotalPrice = 0
}

// Recompute refreshes the cached total from current catalog prices.
// Lines whose product cannot be resolved contribute nothing; the cart
// is a volatile pre-purchase view, and the order builder is the strict
// consumer.
func (c *Cart) Recompute(prices map[bson.ObjectID]float64) {
	total := 0.0
	for _, line := range c.Lines {
		if price, ok := prices[line.ProductID]; ok {
			total += price * float64(line.Quantity)
		}
	}
	c.TotalPrice = total
}

type AddCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	StoreID   string `json:"storeId" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CartLineView is a cart line resolved against the live catalog for
// display.
type CartLineView struct {
	ProductID bson.ObjectID `json:"product_id"`
	StoreID   bson.ObjectID `json:"store_id"`
	Name      string        `json:"name"`
	Price     float64       `json:"price"`
	Thumbnail string        `json:"thumbnail,omitempty"`
	Size      string        `json:"size,omitempty"`
	Quantity  int           `json:"quantity"`
}

type CartView struct {
	UserID     bson.ObjectID  `json:"user_id"`
	Items      []CartLineView `json:"items"`
	TotalPrice float64        `json:"total_price"`
}

// View resolves the cart's lines to display fields. Unresolvable lines
// are skipped, mirroring Recompute.
func (c *Cart) View(products map[bson.ObjectID]*Product) CartView {
	items := make([]CartLineView, 0, len(c.Lines))
	for _, line := range c.Lines {
		p, ok := products[line.ProductID]
		if !ok {
			continue
		}
		items = append(items, CartLineView{
			ProductID: line.ProductID,
			StoreID:   line.StoreID,
			Name:      p.Name,
			Price:     p.Price,
			Thumbnail: p.Thumbnail,
			Size:      line.Size,
			Quantity:  line.Quantity,
		})
	}
	return CartView{UserID: c.UserID, Items: items, TotalPrice: c.TotalPrice}
}
