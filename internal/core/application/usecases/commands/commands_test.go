package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands_Validate_ZeroValue(t *testing.T) {
	tests := []struct {
		name    string
		cmd     interface{ Validate() error }
		wantErr error
	}{
		{"hand off cart", commands.HandOffCartCommand{}, commands.ErrHandOffCartCommandIsNotConstructed},
		{"create order", commands.CreateOrderCommand{}, commands.ErrCreateOrderCommandIsNotConstructed},
		{"advance order", commands.AdvanceOrderCommand{}, commands.ErrAdvanceOrderCommandIsNotConstructed},
		{"claim order", commands.ClaimOrderCommand{}, commands.ErrClaimOrderCommandIsNotConstructed},
		{"deliver order", commands.DeliverOrderCommand{}, commands.ErrDeliverOrderCommandIsNotConstructed},
		{"set availability", commands.SetAgentAvailabilityCommand{}, commands.ErrSetAgentAvailabilityCommandIsNotConstructed},
		{"assign agent", commands.AssignAgentCommand{}, commands.ErrAssignAgentCommandIsNotConstructed},
		{"relay outbox", commands.RelayOutboxCommand{}, commands.ErrRelayOutboxCommandIsNotConstructed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.cmd.Validate(), tt.wantErr)
		})
	}
}

func TestNewHandOffCartCommand_CustomersOnly(t *testing.T) {
	restaurantID := kernel.NewUUID()
	c := cart.ClientCart{RestaurantID: restaurantID}

	_, err := commands.NewHandOffCartCommand(newActor(t, kernel.NewUUID(), actor.RoleRestaurantOperator, &restaurantID), c)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)

	// A cart without a restaurant is left to revalidation, which reports it as missing.
	_, err = commands.NewHandOffCartCommand(newActor(t, kernel.NewUUID(), actor.RoleCustomer, nil), cart.ClientCart{})
	require.NoError(t, err)

	cmd, err := commands.NewHandOffCartCommand(newActor(t, kernel.NewUUID(), actor.RoleCustomer, nil), c)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
}

func TestNewCreateOrderCommand_MissingDeliveryDetails(t *testing.T) {
	customer := newActor(t, kernel.NewUUID(), actor.RoleCustomer, nil)

	_, err := commands.NewCreateOrderCommand(customer, kernel.NewUUID(), order.PaymentCash, order.Delivery{})

	require.ErrorIs(t, err, commands.ErrDeliveryAddressIsRequired)
	require.ErrorIs(t, err, commands.ErrCustomerPhoneIsRequired)
	require.ErrorIs(t, err, commands.ErrCustomerNameIsRequired)
}

func TestNewCreateOrderCommand_UnknownPaymentMethod(t *testing.T) {
	customer := newActor(t, kernel.NewUUID(), actor.RoleCustomer, nil)

	_, err := commands.NewCreateOrderCommand(customer, kernel.NewUUID(), order.PaymentMethod("barter"), checkoutDelivery)

	require.Error(t, err)
}

func TestNewAdvanceOrderCommand_RejectsEventsWithOwnCommands(t *testing.T) {
	restaurantID := kernel.NewUUID()
	operator := newActor(t, kernel.NewUUID(), actor.RoleRestaurantOperator, &restaurantID)

	_, err := commands.NewAdvanceOrderCommand(operator, kernel.NewUUID(), order.EventAssign)
	require.ErrorIs(t, err, order.ErrInvalidTransition)

	_, err = commands.NewAdvanceOrderCommand(operator, kernel.NewUUID(), order.EventDeliver)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewAdvanceOrderCommand(operator, kernel.NewUUID(), order.EventCancel)
	require.NoError(t, err)
	assert.Equal(t, order.EventCancel, cmd.Event())
}

func TestNewSelfClaimCommand_UsesActorAsAgent(t *testing.T) {
	rider := newActor(t, kernel.NewUUID(), actor.RoleDeliveryAgent, nil)

	cmd, err := commands.NewSelfClaimCommand(rider, kernel.NewUUID())

	require.NoError(t, err)
	assert.Equal(t, rider.ID(), cmd.AgentID())
}

func TestNewAssignAgentCommand_RequiresPositiveDelay(t *testing.T) {
	_, err := commands.NewAssignAgentCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewAssignAgentCommand(time.Minute)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cmd.Delay())
}

func TestNewRelayOutboxCommand_RequiresPositiveBatch(t *testing.T) {
	_, err := commands.NewRelayOutboxCommand(-1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
