package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> Ready ──> OutForDelivery ──> Delivered
//	   │            │             │           │              │
//	   └────────────┴─────────────┴───────────┴──────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota
	Pending
	Confirmed
	Preparing
	Ready
	OutForDelivery
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Confirmed:      "confirmed",
		Preparing:      "preparing",
		Ready:          "ready",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// ParseStatus converts the persisted name back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the seven lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the name used in storage, the API and the change feed.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further event is accepted.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Apply returns the status reached by applying e, or ErrInvalidTransition wrapped with the
// offending pair.
//
// Example:
//
//	next, err := order.Ready.Apply(order.EventAssign) // OutForDelivery, nil
//	_, err = order.Delivered.Apply(order.EventCancel) // ErrInvalidTransition
func (s Status) Apply(e Event) (Status, error) {
	if err := e.Validate(); err != nil {
		return s, err
	}
	if next, ok := transitions[s][e]; ok {
		return next, nil
	}
	return s, &TransitionError{From: s, Event: e}
}

// Allows reports whether Apply(e) would succeed.
func (s Status) Allows(e Event) bool {
	_, ok := transitions[s][e]
	return ok
}

var transitions = map[Status]map[Event]Status{
	Pending: {
		EventConfirm: Confirmed,
		EventCancel:  Cancelled,
	},
	Confirmed: {
		EventStartPreparing: Preparing,
		EventCancel:         Cancelled,
	},
	Preparing: {
		EventMarkReady: Ready,
		EventCancel:    Cancelled,
	},
	Ready: {
		EventAssign: OutForDelivery,
		EventCancel: Cancelled,
	},
	OutForDelivery: {
		EventDeliver: Delivered,
		EventCancel:  Cancelled,
	},
}
