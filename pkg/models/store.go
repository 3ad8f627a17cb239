package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Store is a seller. Orders is a denormalized index of every order the
// store has at least one line in, appended by the fan-out step at order
// creation.
type Store struct {
	ID            bson.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name          string          `json:"name" bson:"name"`
	OwnerName     string          `json:"owner_name" bson:"owner_name"`
	Email         string          `json:"email" bson:"email"`
	ContactNumber string          `json:"contact_number" bson:"contact_number"`
	Address       string          `json:"address" bson:"address"`
	City          string          `json:"city" bson:"city,omitempty"`
	Country       string          `json:"country" bson:"country"`
	Status        string          `json:"status" bson:"status"` // Active, Inactive, Suspended
	Products      []bson.ObjectID `json:"products" bson:"products,omitempty"`
	Orders        []bson.ObjectID `json:"orders" bson:"orders,omitempty"`
	CreatedAt     time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" bson:"updated_at"`
}
