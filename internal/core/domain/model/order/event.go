package order

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Event is an input to the order state machine.
type Event string

const (
	EventConfirm        Event = "confirm"
	EventStartPreparing Event = "start_preparing"
	EventMarkReady      Event = "mark_ready"
	EventAssign         Event = "assign"
	EventDeliver        Event = "deliver"
	EventCancel         Event = "cancel"
)

var (
	// ErrInvalidTransition is returned when an event is not accepted in the current status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrAlreadyClaimed is returned when a ready order already has a delivery agent.
	ErrAlreadyClaimed = errors.New("order already claimed")
)

// ParseEvent accepts the events a caller may request by name.
func ParseEvent(s string) (Event, error) {
	e := Event(s)
	if err := e.Validate(); err != nil {
		return "", err
	}
	return e, nil
}

func (e Event) Validate() error {
	switch e {
	case EventConfirm, EventStartPreparing, EventMarkReady, EventAssign, EventDeliver, EventCancel:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%q is not an order event", string(e)))
	}
}

func (e Event) String() string {
	return string(e)
}

// TransitionError names the rejected pair. It matches ErrInvalidTransition with errors.Is.
type TransitionError struct {
	From  Status
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s an order that is %s", ErrInvalidTransition, e.Event, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
