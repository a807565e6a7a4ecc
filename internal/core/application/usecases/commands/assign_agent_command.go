package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand triggers the push-assignment of the best available delivery agent to the
// oldest order that has been ready and unclaimed for longer than the given delay.
//
// Example:
//
//	cmd, _ := NewAssignAgentCommand(2 * time.Minute)
//	handler := NewAssignAgentCommandHandler(uowFactory)
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("No orders to assign or no available agents: %v", err)
//	}
type AssignAgentCommand struct {
	delay time.Duration
	guard guard.ConstructorGuard
}

// NewAssignAgentCommand creates a new command to trigger agent assignment.
func NewAssignAgentCommand(delay time.Duration) (AssignAgentCommand, error) {
	if delay <= 0 {
		return AssignAgentCommand{}, errs.NewValueIsInvalidError("delay")
	}
	return AssignAgentCommand{
		delay: delay,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignAgentCommandIsNotConstructed,
	)
}

func (c AssignAgentCommand) Delay() time.Duration { return c.delay }
