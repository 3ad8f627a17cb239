package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/bazario-dev/bazario-api/pkg/models"
)

// AttachOrderToStores appends orderID to the order-reference list of
// every store in storeIDs. $addToSet makes each append idempotent, so
// at-least-once retries never duplicate a reference. One store's
// failure does not stop the rest; the joined error reports the
// stragglers to the caller, which logs and retries rather than failing
// order placement.
func AttachOrderToStores(ctx context.Context, orderID bson.ObjectID, storeIDs []bson.ObjectID) error {
	collection := GetCollection("stores")

	var failures []error
	for _, storeID := range storeIDs {
		_, err := collection.UpdateOne(ctx,
			bson.M{"_id": storeID},
			bson.M{"$addToSet": bson.M{"orders": orderID}},
		)
		if err != nil {
			failures = append(failures, fmt.Errorf("store %s: %w", storeID.Hex(), err))
		}
	}
	return errors.Join(failures...)
}

func GetStoreByID(ctx context.Context, storeID bson.ObjectID) (*models.Store, error) {
	var store models.Store
	err := GetCollection("stores").FindOne(ctx, bson.M{"_id": storeID}).Decode(&store)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("store %s: %w", storeID.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find store: %w", err)
	}
	return &store, nil
}
