package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Rider is a delivery rider. Invariant: IsAvailable is false exactly
// when CurrentOrder is set; the pair flips atomically with the order
// transitions (accept claims, delivered releases).
type Rider struct {
	ID           bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name         string         `json:"name" bson:"name"`
	Phone        string         `json:"phone" bson:"phone"`
	Email        string         `json:"email" bson:"email"`
	VehicleType  string         `json:"vehicle_type" bson:"vehicle_type"` // Bike, Car, Van
	IsAvailable  bool           `json:"is_available" bson:"is_available"`
	CurrentOrder *bson.ObjectID `json:"current_order,omitempty" bson:"current_order,omitempty"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updated_at"`
}
