package commands

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand publishes up to batchSize pending outbox messages.
type RelayOutboxCommand struct {
	batchSize int
	guard     guard.ConstructorGuard
}

func NewRelayOutboxCommand(batchSize int) (RelayOutboxCommand, error) {
	if batchSize <= 0 {
		return RelayOutboxCommand{}, errs.NewValueIsInvalidError("batchSize")
	}
	return RelayOutboxCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

func (c RelayOutboxCommand) BatchSize() int { return c.batchSize }
