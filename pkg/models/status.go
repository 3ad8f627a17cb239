package models

import "fmt"

// Order lifecycle: Pending → Processing → Shipped → Delivered, with
// Pending → Cancelled as the only cancellation edge. Delivered and
// Cancelled are terminal.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// Actor identifies who is driving a transition. The same order is
// mutated by three independent parties, so legality depends on the
// actor as much as on the edge.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorStore    Actor = "store"
	ActorRider    Actor = "rider"
	ActorAdmin    Actor = "admin"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// riderEdges are the legal rider-driven transitions: accept, pick up,
// deliver.
var riderEdges = map[string]string{
	StatusPending:    StatusProcessing,
	StatusProcessing: StatusShipped,
	StatusShipped:    StatusDelivered,
}

// CanTransition reports whether actor may move an order from one status
// to another. Admin is the unrestricted support escape hatch; everyone
// else follows the table. The returned error wraps
// ErrInvalidTransition.
func CanTransition(from, to string, actor Actor) error {
	if !ValidStatus(to) {
		return fmt.Errorf("unknown status %q: %w", to, ErrInvalidTransition)
	}
	if actor == ActorAdmin {
		return nil
	}
	switch actor {
	case ActorRider:
		if riderEdges[from] == to {
			return nil
		}
	case ActorCustomer:
		// The cancel window closes the moment a rider accepts.
		if from == StatusPending && to == StatusCancelled {
			return nil
		}
	}
	return fmt.Errorf("%s → %s by %s: %w", from, to, actor, ErrInvalidTransition)
}

// Rider-facing delivery vocabulary. "Picked Up" is the rider's word for
// the shared Shipped status.
const (
	DeliveryPickedUp  = "Picked Up"
	DeliveryDelivered = "Delivered"
)

// DeliveryTransition maps a rider delivery update onto the shared
// status machine, returning the status the order must currently hold
// and the status it moves to.
func DeliveryTransition(delivery string) (from, to string, err error) {
	switch delivery {
	case DeliveryPickedUp:
		return StatusProcessing, StatusShipped, nil
	case DeliveryDelivered:
		return StatusShipped, StatusDelivered, nil
	}
	return "", "", fmt.Errorf("unknown delivery status %q: %w", delivery, ErrInvalidTransition)
}
