package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ProductImage pairs a hosted URL with the media host's public id so
// assets can be deleted later.
type ProductImage struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"public_id" bson:"public_id"`
}

// Product is a catalog entry owned by a single seller store.
type Product struct {
	ID          bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	StoreID     bson.ObjectID  `json:"store_id" bson:"store_id"`
	Name        string         `json:"name" bson:"name"`
	Description string         `json:"description" bson:"description,omitempty"`
	Price       float64        `json:"price" bson:"price"`
	Currency    string         `json:"currency" bson:"currency"`
	Stock       int            `json:"stock" bson:"stock"`
	Status      string         `json:"status" bson:"status"` // active, inactive, draft
	Images      []ProductImage `json:"images" bson:"images,omitempty"`
	Thumbnail   string         `json:"thumbnail" bson:"thumbnail,omitempty"`
	Sizes       []string       `json:"sizes" bson:"sizes,omitempty"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}

const (
	ProductActive   = "active"
	ProductInactive = "inactive"
	ProductDraft    = "draft"
)

func (p *Product) IsActive() bool {
	return p.Status == ProductActive
}

func (p *Product) SetTimestamps() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

type CreateProductRequest struct {
	StoreID     string         `json:"storeId" binding:"required"`
	Name        string         `json:"name" binding:"required,min=2,max=200"`
	Description string         `json:"description" binding:"max=2000"`
	Price       float64        `json:"price" binding:"required,gt=0"`
	Currency    string         `json:"currency" binding:"omitempty,len=3"`
	Stock       int            `json:"stock" binding:"gte=0"`
	Images      []ProductImage `json:"images"`
	Sizes       []string       `json:"sizes"`
}

// UpdateProductRequest is a partial catalog update. Pointer fields
// distinguish "unset" from a zero value; identity fields (store, id)
// are not updatable.
type UpdateProductRequest struct {
	Name        *string        `json:"name" binding:"omitempty,min=2,max=200"`
	Description *string        `json:"description" binding:"omitempty,max=2000"`
	Price       *float64       `json:"price" binding:"omitempty,gt=0"`
	Currency    *string        `json:"currency" binding:"omitempty,len=3"`
	Stock       *int           `json:"stock" binding:"omitempty,gte=0"`
	Status      *string        `json:"status" binding:"omitempty,oneof=active inactive draft"`
	Images      []ProductImage `json:"images"`
	Sizes       []string       `json:"sizes"`
}

// Updates returns the $set document for the fields the request carries.
// Empty means the request had nothing to apply.
func (req *UpdateProductRequest) Updates() bson.M {
	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Images != nil {
		updates["images"] = req.Images
		if len(req.Images) > 0 {
			updates["thumbnail"] = req.Images[0].URL
		}
	}
	if req.Sizes != nil {
		updates["sizes"] = req.Sizes
	}
	return updates
}

func (req *CreateProductRequest) ToProduct(storeID bson.ObjectID) *Product {
	p := &Product{
		ID:          bson.NewObjectID(),
		StoreID:     storeID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Stock:       req.Stock,
		Status:      ProductActive,
		Images:      req.Images,
		Sizes:       req.Sizes,
	}
	if p.Currency == "" {
		p.Currency = "PKR"
	}
	if len(p.Images) > 0 {
		p.Thumbnail = p.Images[0].URL
	}
	p.SetTimestamps()
	return p
}
