package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrDeliveryAddressIsRequired = errs.NewValueIsRequiredError("deliveryAddress")
	ErrCustomerPhoneIsRequired   = errs.NewValueIsRequiredError("customerPhone")
	ErrCustomerNameIsRequired    = errs.NewValueIsRequiredError("customerName")
)

// CreateOrderCommand checks out a handed-off cart.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customer, handoffID, order.PaymentCash, order.Delivery{
//	    Address: "12 Park Street", CustomerPhone: "+91 98000 00000", CustomerName: "Asha",
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor         actor.Actor
	handoffID     kernel.UUID
	paymentMethod order.PaymentMethod
	delivery      order.Delivery

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	a actor.Actor,
	handoffID kernel.UUID,
	paymentMethod order.PaymentMethod,
	delivery order.Delivery,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		actor: a,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.Validate(),
		cmd.setHandoffID(handoffID),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setDelivery(delivery),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() actor.Actor {
	return c.actor
}

func (c CreateOrderCommand) HandoffID() kernel.UUID {
	return c.handoffID
}

func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c CreateOrderCommand) Delivery() order.Delivery {
	return c.delivery
}

func (c *CreateOrderCommand) setHandoffID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.handoffID = id
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(m order.PaymentMethod) error {
	if _, err := order.ParsePaymentMethod(string(m)); err != nil {
		return err
	}
	c.paymentMethod = m
	return nil
}

func (c *CreateOrderCommand) setDelivery(d order.Delivery) error {
	var errList []error
	if d.Address == "" {
		errList = append(errList, ErrDeliveryAddressIsRequired)
	}
	if d.CustomerPhone == "" {
		errList = append(errList, ErrCustomerPhoneIsRequired)
	}
	if d.CustomerName == "" {
		errList = append(errList, ErrCustomerNameIsRequired)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	c.delivery = d
	return nil
}
