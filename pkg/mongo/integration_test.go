//go:build integration

package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/bazario-dev/bazario-api/pkg/models"
)

// These tests run against a real MongoDB (go test -tags integration)
// and exercise the conditional writes the handlers rely on: the cart is
// emptied after order creation, the fan-out stays exactly-once under
// retry, only one rider wins a pending order, and rider availability
// tracks the assignment.

func requireMongo(t *testing.T) {
	t.Helper()
	if os.Getenv("MONGODB_URI") == "" {
		t.Skip("MONGODB_URI not set")
	}
}

var integrationAddr = models.ShippingAddress{
	Name:    "Ayesha Khan",
	Phone:   "+92-300-1234567",
	Address: "14 Mall Road",
	City:    "Lahore",
	Country: "Pakistan",
}

func seedStore(t *testing.T, ctx context.Context) *models.Store {
	t.Helper()
	store := &models.Store{
		ID:        bson.NewObjectID(),
		Name:      "Test Store",
		Email:     fmt.Sprintf("store-%s@test.local", bson.NewObjectID().Hex()),
		Country:   "Pakistan",
		Status:    "Active",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	_, err := GetCollection("stores").InsertOne(ctx, store)
	require.NoError(t, err)
	t.Cleanup(func() {
		GetCollection("stores").DeleteOne(context.Background(), bson.M{"_id": store.ID})
	})
	return store
}

func seedProduct(t *testing.T, ctx context.Context, storeID bson.ObjectID, price float64) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:      bson.NewObjectID(),
		StoreID: storeID,
		Name:    "Test Product",
		Price:   price,
		Status:  models.ProductActive,
	}
	product.SetTimestamps()
	_, err := GetCollection("products").InsertOne(ctx, product)
	require.NoError(t, err)
	t.Cleanup(func() {
		GetCollection("products").DeleteOne(context.Background(), bson.M{"_id": product.ID})
	})
	return product
}

func seedRider(t *testing.T, ctx context.Context, available bool) *models.Rider {
	t.Helper()
	rider := &models.Rider{
		ID:          bson.NewObjectID(),
		Name:        "Test Rider",
		Email:       fmt.Sprintf("rider-%s@test.local", bson.NewObjectID().Hex()),
		VehicleType: "Bike",
		IsAvailable: available,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	_, err := GetCollection("riders").InsertOne(ctx, rider)
	require.NoError(t, err)
	t.Cleanup(func() {
		GetCollection("riders").DeleteOne(context.Background(), bson.M{"_id": rider.ID})
	})
	return rider
}

func seedPendingOrder(t *testing.T, ctx context.Context, storeID bson.ObjectID) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:          bson.NewObjectID(),
		OrderNumber: models.GenerateOrderNumber(),
		UserID:      bson.NewObjectID(),
		Items: []models.OrderLine{
			{ProductID: bson.NewObjectID(), StoreID: storeID, Quantity: 1, Price: 10},
		},
		TotalAmount:     10,
		ShippingAddress: integrationAddr,
		Status:          models.StatusPending,
		PaymentMethod:   models.PaymentCOD,
		PaymentStatus:   models.PaymentStatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	_, err := GetCollection("orders").InsertOne(ctx, order)
	require.NoError(t, err)
	t.Cleanup(func() {
		GetCollection("orders").DeleteOne(context.Background(), bson.M{"_id": order.ID})
	})
	return order
}

func countOrderRefs(t *testing.T, ctx context.Context, storeID, orderID bson.ObjectID) int {
	t.Helper()
	store, err := GetStoreByID(ctx, storeID)
	require.NoError(t, err)
	count := 0
	for _, ref := range store.Orders {
		if ref == orderID {
			count++
		}
	}
	return count
}

func freshRider(t *testing.T, ctx context.Context, riderID bson.ObjectID) *models.Rider {
	t.Helper()
	rider, err := GetRiderByID(ctx, riderID)
	require.NoError(t, err)
	return rider
}

func TestCreateOrderClearsCartAndFansOutOnce(t *testing.T) {
	requireMongo(t)
	ctx := context.Background()

	store1 := seedStore(t, ctx)
	store2 := seedStore(t, ctx)
	p1 := seedProduct(t, ctx, store1.ID, 10)
	p2 := seedProduct(t, ctx, store2.ID, 5)

	userID := bson.NewObjectID()
	t.Cleanup(func() {
		GetCollection("carts").DeleteOne(context.Background(), bson.M{"user_id": userID})
	})

	_, err := AddCartLine(ctx, userID, models.CartLine{ProductID: p1.ID, StoreID: store1.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = AddCartLine(ctx, userID, models.CartLine{ProductID: p2.ID, StoreID: store2.ID, Quantity: 1})
	require.NoError(t, err)

	order, err := CreateOrderFromCart(ctx, userID, integrationAddr, models.PaymentCOD)
	require.NoError(t, err)
	t.Cleanup(func() {
		GetCollection("orders").DeleteOne(context.Background(), bson.M{"_id": order.ID})
	})
	assert.Equal(t, 25.0, order.TotalAmount)

	cart, err := loadCart(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.TotalPrice)

	assert.Equal(t, 1, countOrderRefs(t, ctx, store1.ID, order.ID))
	assert.Equal(t, 1, countOrderRefs(t, ctx, store2.ID, order.ID))

	// A retried fan-out must not duplicate the reference.
	require.NoError(t, AttachOrderToStores(ctx, order.ID, order.StoreIDs()))
	assert.Equal(t, 1, countOrderRefs(t, ctx, store1.ID, order.ID))
	assert.Equal(t, 1, countOrderRefs(t, ctx, store2.ID, order.ID))
}

func TestAcceptOrderCouplesRiderAndOrder(t *testing.T) {
	requireMongo(t)
	ctx := context.Background()

	store := seedStore(t, ctx)
	order := seedPendingOrder(t, ctx, store.ID)
	rider := seedRider(t, ctx, true)

	accepted, err := AcceptOrder(ctx, rider.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, accepted.Status)
	require.NotNil(t, accepted.AssignedRider)
	assert.Equal(t, rider.ID, *accepted.AssignedRider)

	claimed := freshRider(t, ctx, rider.ID)
	assert.False(t, claimed.IsAvailable)
	require.NotNil(t, claimed.CurrentOrder)
	assert.Equal(t, order.ID, *claimed.CurrentOrder)
}

func TestAcceptOrderDoubleAcceptLoserIsReleased(t *testing.T) {
	requireMongo(t)
	ctx := context.Background()

	store := seedStore(t, ctx)
	order := seedPendingOrder(t, ctx, store.ID)
	winner := seedRider(t, ctx, true)
	loser := seedRider(t, ctx, true)

	_, err := AcceptOrder(ctx, winner.ID, order.ID)
	require.NoError(t, err)

	_, err = AcceptOrder(ctx, loser.ID, order.ID)
	assert.ErrorIs(t, err, models.ErrOrderNotPending)

	// The losing rider's claim is rolled back.
	released := freshRider(t, ctx, loser.ID)
	assert.True(t, released.IsAvailable)
	assert.Nil(t, released.CurrentOrder)

	current, err := GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, current.AssignedRider)
	assert.Equal(t, winner.ID, *current.AssignedRider)
}

func TestAcceptOrderBusyRider(t *testing.T) {
	requireMongo(t)
	ctx := context.Background()

	store := seedStore(t, ctx)
	order := seedPendingOrder(t, ctx, store.ID)
	busy := seedRider(t, ctx, false)

	_, err := AcceptOrder(ctx, busy.ID, order.ID)
	assert.ErrorIs(t, err, models.ErrRiderBusy)

	current, err := GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, current.Status)
	assert.Nil(t, current.AssignedRider)
}

func TestDeliveryFlowReleasesRider(t *testing.T) {
	requireMongo(t)
	ctx := context.Background()

	store := seedStore(t, ctx)
	order := seedPendingOrder(t, ctx, store.ID)
	rider := seedRider(t, ctx, true)

	_, err := AcceptOrder(ctx, rider.ID, order.ID)
	require.NoError(t, err)

	shipped, err := UpdateDeliveryStatus(ctx, rider.ID, order.ID, models.DeliveryPickedUp)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, shipped.Status)

	delivered, err := UpdateDeliveryStatus(ctx, rider.ID, order.ID, models.DeliveryDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, delivered.Status)

	released := freshRider(t, ctx, rider.ID)
	assert.True(t, released.IsAvailable)
	assert.Nil(t, released.CurrentOrder)
}

func TestDeliveryStatusHidesForeignOrder(t *testing.T) {
	requireMongo(t)
	ctx := context.Background()

	store := seedStore(t, ctx)
	order := seedPendingOrder(t, ctx, store.ID)
	assigned := seedRider(t, ctx, true)
	other := seedRider(t, ctx, true)

	_, err := AcceptOrder(ctx, assigned.ID, order.ID)
	require.NoError(t, err)

	_, err = UpdateDeliveryStatus(ctx, other.ID, order.ID, models.DeliveryPickedUp)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCancelWindowClosesOnAccept(t *testing.T) {
	requireMongo(t)
	ctx := context.Background()

	store := seedStore(t, ctx)
	order := seedPendingOrder(t, ctx, store.ID)
	rider := seedRider(t, ctx, true)

	_, err := AcceptOrder(ctx, rider.ID, order.ID)
	require.NoError(t, err)

	_, err = CancelOrder(ctx, order.ID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}
