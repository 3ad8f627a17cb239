package mongo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/bazario-dev/bazario-api/pkg/models"
)

func GetRiderByID(ctx context.Context, riderID bson.ObjectID) (*models.Rider, error) {
	var rider models.Rider
	err := GetCollection("riders").FindOne(ctx, bson.M{"_id": riderID}).Decode(&rider)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("rider %s: %w", riderID.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find rider: %w", err)
	}
	return &rider, nil
}

func releaseRider(ctx context.Context, riderID bson.ObjectID) error {
	_, err := GetCollection("riders").UpdateOne(ctx,
		bson.M{"_id": riderID},
		bson.M{"$set": bson.M{
			"is_available":  true,
			"current_order": nil,
			"updated_at":    time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("release rider: %w", err)
	}
	return nil
}

// AcceptOrder claims a Pending order for a rider. Both documents are
// guarded by conditional writes: the rider claim requires
// is_available=true (a rider cannot hold two orders) and the order
// claim requires status=Pending (two riders cannot both win). The
// rider is claimed first and released again if the order claim loses.
func AcceptOrder(ctx context.Context, riderID, orderID bson.ObjectID) (*models.Order, error) {
	riders := GetCollection("riders")

	res, err := riders.UpdateOne(ctx,
		bson.M{"_id": riderID, "is_available": true},
		bson.M{"$set": bson.M{
			"is_available":  false,
			"current_order": orderID,
			"updated_at":    time.Now(),
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("claim rider: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, lookupErr := GetRiderByID(ctx, riderID); lookupErr != nil {
			return nil, lookupErr
		}
		return nil, fmt.Errorf("rider %s: %w", riderID.Hex(), models.ErrRiderBusy)
	}

	var order models.Order
	err = GetCollection("orders").FindOneAndUpdate(ctx,
		bson.M{"_id": orderID, "status": models.StatusPending},
		bson.M{"$set": bson.M{
			"status":         models.StatusProcessing,
			"assigned_rider": riderID,
			"updated_at":     time.Now(),
		}},
		findOneAndUpdateAfter(),
	).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if releaseErr := releaseRider(ctx, riderID); releaseErr != nil {
			log.Printf("Warning: failed to release rider %s after lost claim: %v", riderID.Hex(), releaseErr)
		}
		if _, lookupErr := GetOrderByID(ctx, orderID); lookupErr != nil {
			return nil, lookupErr
		}
		return nil, fmt.Errorf("order %s: %w", orderID.Hex(), models.ErrOrderNotPending)
	}
	if err != nil {
		if releaseErr := releaseRider(ctx, riderID); releaseErr != nil {
			log.Printf("Warning: failed to release rider %s after failed claim: %v", riderID.Hex(), releaseErr)
		}
		return nil, fmt.Errorf("claim order: %w", err)
	}

	return &order, nil
}

// UpdateDeliveryStatus applies a rider's "Picked Up"/"Delivered" update
// to their assigned order. The filter pins both the expected current
// status and the rider assignment, so a stale or foreign update cannot
// land. Delivered releases the rider for the next claim.
func UpdateDeliveryStatus(ctx context.Context, riderID, orderID bson.ObjectID, delivery string) (*models.Order, error) {
	from, to, err := models.DeliveryTransition(delivery)
	if err != nil {
		return nil, err
	}

	var order models.Order
	err = GetCollection("orders").FindOneAndUpdate(ctx,
		bson.M{"_id": orderID, "status": from, "assigned_rider": riderID},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}},
		findOneAndUpdateAfter(),
	).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		existing, lookupErr := GetOrderByID(ctx, orderID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if existing.AssignedRider == nil || *existing.AssignedRider != riderID {
			// Not this rider's order: hide it.
			return nil, fmt.Errorf("order %s: %w", orderID.Hex(), models.ErrNotFound)
		}
		return nil, fmt.Errorf("order %s is %s, not %s: %w",
			orderID.Hex(), existing.Status, from, models.ErrInvalidTransition)
	}
	if err != nil {
		return nil, fmt.Errorf("update delivery status: %w", err)
	}

	if to == models.StatusDelivered {
		if releaseErr := releaseRider(ctx, riderID); releaseErr != nil {
			log.Printf("Warning: failed to release rider %s after delivery: %v", riderID.Hex(), releaseErr)
		}
	}

	return &order, nil
}
