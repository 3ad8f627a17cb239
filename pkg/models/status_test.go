package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name  string
		from  string
		to    string
		actor Actor
		ok    bool
	}{
		{"rider accepts", StatusPending, StatusProcessing, ActorRider, true},
		{"rider picks up", StatusProcessing, StatusShipped, ActorRider, true},
		{"rider delivers", StatusShipped, StatusDelivered, ActorRider, true},
		{"rider cannot skip to shipped", StatusPending, StatusShipped, ActorRider, false},
		{"rider cannot skip to delivered", StatusProcessing, StatusDelivered, ActorRider, false},
		{"rider cannot cancel", StatusPending, StatusCancelled, ActorRider, false},
		{"rider cannot move backwards", StatusShipped, StatusProcessing, ActorRider, false},

		{"customer cancels pending", StatusPending, StatusCancelled, ActorCustomer, true},
		{"customer cannot cancel processing", StatusProcessing, StatusCancelled, ActorCustomer, false},
		{"customer cannot cancel shipped", StatusShipped, StatusCancelled, ActorCustomer, false},
		{"customer cannot advance", StatusPending, StatusProcessing, ActorCustomer, false},

		{"store cannot advance", StatusPending, StatusProcessing, ActorStore, false},
		{"store cannot cancel", StatusPending, StatusCancelled, ActorStore, false},

		{"admin overrides forward", StatusPending, StatusDelivered, ActorAdmin, true},
		{"admin overrides backward", StatusDelivered, StatusPending, ActorAdmin, true},
		{"admin cancels late", StatusShipped, StatusCancelled, ActorAdmin, true},

		{"delivered is terminal for rider", StatusDelivered, StatusShipped, ActorRider, false},
		{"cancelled is terminal for customer", StatusCancelled, StatusPending, ActorCustomer, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanTransition(tc.from, tc.to, tc.actor)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestCanTransitionRejectsUnknownStatus(t *testing.T) {
	for _, actor := range []Actor{ActorCustomer, ActorStore, ActorRider, ActorAdmin} {
		err := CanTransition(StatusPending, "Teleported", actor)
		assert.ErrorIs(t, err, ErrInvalidTransition, "actor %s", actor)
	}
}

func TestDeliveryTransition(t *testing.T) {
	from, to, err := DeliveryTransition(DeliveryPickedUp)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, from)
	assert.Equal(t, StatusShipped, to)

	from, to, err = DeliveryTransition(DeliveryDelivered)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, from)
	assert.Equal(t, StatusDelivered, to)

	_, _, err = DeliveryTransition("On The Way")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus(""))
}
