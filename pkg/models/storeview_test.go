package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func multiStoreOrder(s1, s2 bson.ObjectID) *Order {
	return &Order{
		ID:          bson.NewObjectID(),
		OrderNumber: "ORD-20260901-abc12345",
		UserID:      bson.NewObjectID(),
		Items: []OrderLine{
			{ProductID: bson.NewObjectID(), StoreID: s1, Quantity: 2, Price: 10},
			{ProductID: bson.NewObjectID(), StoreID: s2, Quantity: 1, Price: 5},
			{ProductID: bson.NewObjectID(), StoreID: s1, Quantity: 1, Price: 7.5},
		},
		TotalAmount:     32.5,
		ShippingAddress: testAddress,
		Status:          StatusPending,
		PaymentMethod:   PaymentCOD,
		PaymentStatus:   PaymentStatusPending,
		CreatedAt:       time.Now(),
	}
}

func TestForStoreFiltersLines(t *testing.T) {
	s1 := bson.NewObjectID()
	s2 := bson.NewObjectID()
	order := multiStoreOrder(s1, s2)

	view, err := order.ForStore(s1)
	require.NoError(t, err)

	require.Len(t, view.Items, 2)
	for _, item := range view.Items {
		assert.Equal(t, s1, item.StoreID)
	}
	assert.Equal(t, 27.5, view.StoreTotal)
	assert.Equal(t, order.ID, view.OrderID)
	assert.Equal(t, order.OrderNumber, view.OrderNumber)
	assert.Equal(t, testAddress.Name, view.Customer)
	assert.Equal(t, StatusPending, view.Status)
}

func TestForStoreSingleLineStore(t *testing.T) {
	s1 := bson.NewObjectID()
	s2 := bson.NewObjectID()
	order := multiStoreOrder(s1, s2)

	view, err := order.ForStore(s2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5.0, view.StoreTotal)
}

func TestForStoreUnknownStore(t *testing.T) {
	order := multiStoreOrder(bson.NewObjectID(), bson.NewObjectID())

	view, err := order.ForStore(bson.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, view)
}
