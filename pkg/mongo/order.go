package mongo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/bazario-dev/bazario-api/pkg/models"
)

// CreateOrderFromCart converts the user's cart into a persisted order:
// resolve every line against the live catalog (any miss aborts the
// whole order), snapshot prices, insert the order, fan the order id out
// to every seller store it touches, then empty the cart.
//
// The insert is the durable, customer-visible fact. Fan-out and cart
// clearing are at-least-once side effects: a failure after the insert
// is logged and retried, never a reason to unwind the order. The
// fan-out's $addToSet keeps retries from duplicating references.
func CreateOrderFromCart(ctx context.Context, userID bson.ObjectID, addr models.ShippingAddress, paymentMethod string) (*models.Order, error) {
	cart, err := loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.IsEmpty() {
		return nil, fmt.Errorf("user %s: %w", userID.Hex(), models.ErrCartEmpty)
	}

	products, err := resolveProducts(ctx, cart.Lines, true)
	if err != nil {
		return nil, err
	}

	order, err := models.BuildOrder(cart, products, addr, paymentMethod)
	if err != nil {
		return nil, err
	}

	if _, err := GetCollection("orders").InsertOne(ctx, order); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	// Side effects below must not fail the placed order.
	if err := AttachOrderToStores(ctx, order.ID, order.StoreIDs()); err != nil {
		log.Printf("Warning: fan-out for order %s incomplete, retrying: %v", order.ID.Hex(), err)
		if err := AttachOrderToStores(ctx, order.ID, order.StoreIDs()); err != nil {
			log.Printf("Error: fan-out for order %s still incomplete: %v", order.ID.Hex(), err)
		}
	}
	if err := ClearCart(ctx, userID); err != nil {
		log.Printf("Warning: failed to clear cart for user %s after order %s: %v",
			userID.Hex(), order.ID.Hex(), err)
	}

	return order, nil
}

func GetOrderByID(ctx context.Context, orderID bson.ObjectID) (*models.Order, error) {
	var order models.Order
	err := GetCollection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("order %s: %w", orderID.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

func findOrders(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := GetCollection("orders").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func GetOrdersByUser(ctx context.Context, userID bson.ObjectID) ([]models.Order, error) {
	return findOrders(ctx, bson.M{"user_id": userID})
}

func GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return findOrders(ctx, bson.M{})
}

func GetPendingOrders(ctx context.Context) ([]models.Order, error) {
	return findOrders(ctx, bson.M{"status": models.StatusPending})
}

func GetOrdersByRider(ctx context.Context, riderID bson.ObjectID) ([]models.Order, error) {
	return findOrders(ctx, bson.M{"assigned_rider": riderID})
}

// UpdateOrderStatus moves an order along the state machine on behalf of
// actor. The write is conditional on the status the decision was made
// against, so two racing updates cannot both win; the loser sees
// ErrConflict.
func UpdateOrderStatus(ctx context.Context, orderID bson.ObjectID, to string, actor models.Actor) (*models.Order, error) {
	order, err := GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := models.CanTransition(order.Status, to, actor); err != nil {
		return nil, err
	}

	var updated models.Order
	err = GetCollection("orders").FindOneAndUpdate(ctx,
		bson.M{"_id": orderID, "status": order.Status},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}},
		findOneAndUpdateAfter(),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("order %s changed status concurrently: %w", orderID.Hex(), models.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return &updated, nil
}

// CancelOrder cancels a Pending order. The Pending guard rides in the
// filter: once a rider accepts, the same call fails the transition
// check rather than racing it.
func CancelOrder(ctx context.Context, orderID bson.ObjectID) (*models.Order, error) {
	var cancelled models.Order
	err := GetCollection("orders").FindOneAndUpdate(ctx,
		bson.M{"_id": orderID, "status": models.StatusPending},
		bson.M{"$set": bson.M{"status": models.StatusCancelled, "updated_at": time.Now()}},
		findOneAndUpdateAfter(),
	).Decode(&cancelled)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the order does not exist or the cancel window closed.
		if _, lookupErr := GetOrderByID(ctx, orderID); lookupErr != nil {
			return nil, lookupErr
		}
		return nil, fmt.Errorf("order %s is no longer pending: %w", orderID.Hex(), models.ErrInvalidTransition)
	}
	if err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	return &cancelled, nil
}

// GetStoreOrders lists every order the store has at least one line in,
// newest first, each already filtered to the store-scoped view.
func GetStoreOrders(ctx context.Context, storeID bson.ObjectID) ([]*models.StoreOrderView, error) {
	orders, err := findOrders(ctx, bson.M{"items.store_id": storeID})
	if err != nil {
		return nil, err
	}

	views := make([]*models.StoreOrderView, 0, len(orders))
	for i := range orders {
		view, err := orders[i].ForStore(storeID)
		if err != nil {
			// The filter guarantees a matching line.
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

// GetStoreOrderDetail loads one order scoped to the requesting store.
// The store filter is part of the lookup: an order the store has no
// line in is indistinguishable from a missing one.
func GetStoreOrderDetail(ctx context.Context, orderID, storeID bson.ObjectID) (*models.StoreOrderView, error) {
	var order models.Order
	err := GetCollection("orders").FindOne(ctx,
		bson.M{"_id": orderID, "items.store_id": storeID},
	).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("order %s for store %s: %w", orderID.Hex(), storeID.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find store order: %w", err)
	}
	return order.ForStore(storeID)
}
