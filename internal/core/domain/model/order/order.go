package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrTotalMismatch is returned when a total differs from its recomputation by more than a cent.
	ErrTotalMismatch = errors.New("total does not match items and delivery fee")
)

// Delivery holds the contact details the customer supplied at checkout.
type Delivery struct {
	Address       string
	CustomerPhone string
	CustomerName  string
	Notes         string
}

func (d Delivery) validate() error {
	var errList []error
	if strings.TrimSpace(d.Address) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("deliveryAddress"))
	}
	if strings.TrimSpace(d.CustomerPhone) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customerPhone"))
	}
	if strings.TrimSpace(d.CustomerName) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customerName"))
	}
	return errors.Join(errList...)
}

// Draft collects what checkout knows about a new order. Items must already carry catalog prices.
type Draft struct {
	ID                    kernel.UUID
	CustomerID            kernel.UUID
	RestaurantID          kernel.UUID
	Items                 []Item
	DeliveryFee           decimal.Decimal
	TotalAmount           decimal.Decimal
	PaymentMethod         PaymentMethod
	Delivery              Delivery
	OrderDate             time.Time
	EstimatedDeliveryTime time.Time
}

// Snapshot is the persisted form of an order, used by storage adapters to rebuild the aggregate.
type Snapshot struct {
	ID                    kernel.UUID
	CustomerID            kernel.UUID
	RestaurantID          kernel.UUID
	Items                 []Item
	TotalAmount           decimal.Decimal
	DeliveryFee           decimal.Decimal
	Status                Status
	PaymentMethod         PaymentMethod
	PaymentStatus         PaymentStatus
	Assignment            *Assignment
	OrderDate             time.Time
	EstimatedDeliveryTime time.Time
	PickupTime            *time.Time
	ActualDeliveryTime    *time.Time
	Delivery              Delivery
	Version               int64
}

// Order represents a customer's order from checkout to a terminal state. It is the aggregate
// root of the order ledger.
//
// Order follows these invariants:
//   - Must have at least one item and every item quantity lies in [1, 10]
//   - TotalAmount equals Σ(price × quantity) + DeliveryFee within one cent
//   - Status transitions follow the table in status.go
//   - The assignment is set once, by the assign event, and never replaced
//   - Version grows by one for every persisted mutation
//
// The Order struct uses private fields to ensure encapsulation and maintains its invariants
// through validated methods.
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	items        []Item
	totalAmount  decimal.Decimal
	deliveryFee  decimal.Decimal

	status        Status
	paymentMethod PaymentMethod
	paymentStatus PaymentStatus
	assignment    *Assignment

	orderDate             time.Time
	estimatedDeliveryTime time.Time
	pickupTime            *time.Time
	actualDeliveryTime    *time.Time

	delivery Delivery

	// version is what the next write will store; persistedVersion is what storage holds now.
	version          int64
	persistedVersion int64

	isConstructed bool
}

// NewOrder creates a pending order from a checkout draft.
//
// The total is recomputed from the draft items and delivery fee; a draft whose TotalAmount
// differs by more than one cent is rejected with ErrTotalMismatch. The stored total is always
// the recomputed one.
//
// Example:
//
//	item, _ := order.NewItem(menuItemID, "Paneer tikka", 2, decimal.NewFromInt(120))
//	o, err := order.NewOrder(order.Draft{
//	    ID: kernel.NewUUID(), CustomerID: customerID, RestaurantID: restaurantID,
//	    Items: []order.Item{item}, DeliveryFee: decimal.NewFromInt(30),
//	    TotalAmount: decimal.NewFromInt(270), PaymentMethod: order.PaymentCash, ...
//	})
func NewOrder(d Draft) (*Order, error) {
	o := &Order{
		status:                Pending,
		paymentStatus:         PaymentPending,
		orderDate:             d.OrderDate.UTC(),
		estimatedDeliveryTime: d.EstimatedDeliveryTime.UTC(),
		delivery:              d.Delivery,
		version:               1,
		isConstructed:         true,
	}

	if err := errors.Join(
		o.setIdentity(d.ID, d.CustomerID, d.RestaurantID),
		o.setItems(d.Items),
		o.setDeliveryFee(d.DeliveryFee),
		o.setPaymentMethod(d.PaymentMethod),
		d.Delivery.validate(),
	); err != nil {
		return nil, err
	}
	if err := o.setTotal(d.TotalAmount); err != nil {
		return nil, err
	}
	if d.EstimatedDeliveryTime.Before(d.OrderDate) {
		return nil, errs.NewValueIsInvalidErrorWithCause("estimatedDeliveryTime",
			fmt.Errorf("%s is before order date %s", d.EstimatedDeliveryTime, d.OrderDate))
	}

	return o, nil
}

// RestoreOrder rebuilds an order read from storage and re-checks every invariant, so a
// corrupted or hand-edited row surfaces as an error instead of a broken aggregate.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		status:                s.Status,
		paymentStatus:         s.PaymentStatus,
		orderDate:             s.OrderDate.UTC(),
		estimatedDeliveryTime: s.EstimatedDeliveryTime.UTC(),
		pickupTime:            utcPtr(s.PickupTime),
		actualDeliveryTime:    utcPtr(s.ActualDeliveryTime),
		delivery:              s.Delivery,
		version:               s.Version,
		persistedVersion:      s.Version,
		isConstructed:         true,
	}
	if s.Assignment != nil {
		a := *s.Assignment
		o.assignment = &a
	}

	if err := errors.Join(
		o.setIdentity(s.ID, s.CustomerID, s.RestaurantID),
		o.setItems(s.Items),
		o.setDeliveryFee(s.DeliveryFee),
		o.setPaymentMethod(s.PaymentMethod),
		s.Status.Validate(),
		o.validatePaymentStatus(),
		o.validateAssignment(),
	); err != nil {
		return nil, err
	}
	if err := o.setTotal(s.TotalAmount); err != nil {
		return nil, err
	}
	if s.Version < 1 {
		return nil, errs.NewValueIsOutOfRangeError("version", s.Version, 1, "∞")
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }
func (o *Order) TotalAmount() decimal.Decimal { return o.totalAmount }
func (o *Order) DeliveryFee() decimal.Decimal { return o.deliveryFee }
func (o *Order) Status() Status { return o.status }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) OrderDate() time.Time { return o.orderDate }
func (o *Order) EstimatedDeliveryTime() time.Time { return o.estimatedDeliveryTime }
func (o *Order) PickupTime() *time.Time { return o.pickupTime }
func (o *Order) ActualDeliveryTime() *time.Time { return o.actualDeliveryTime }
func (o *Order) Delivery() Delivery { return o.delivery }

// Items returns a copy of the line items.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// Subtotal is the sum of the line totals, without the delivery fee.
func (o *Order) Subtotal() decimal.Decimal {
	return Subtotal(o.items)
}

// Assignment returns the delivery agent snapshot, or nil while the order is unclaimed.
func (o *Order) Assignment() *Assignment {
	if o.assignment == nil {
		return nil
	}
	a := *o.assignment
	return &a
}

// IsAssignedTo reports whether agentID holds the order.
func (o *Order) IsAssignedTo(agentID kernel.UUID) bool {
	return o.assignment != nil && o.assignment.agentID.IsEqual(agentID)
}

// IsClaimable is true for ready orders without a delivery agent.
func (o *Order) IsClaimable() bool {
	return o.status == Ready && o.assignment == nil
}

// Version is the value storage will hold after the pending mutation is saved.
func (o *Order) Version() int64 { return o.version }

// PersistedVersion is the version the order was loaded with. Conditional writes compare
// against it.
func (o *Order) PersistedVersion() int64 { return o.persistedVersion }

// CheckTransition returns the error Advance, Assign or Deliver would fail with for e, without
// changing the order.
func (o *Order) CheckTransition(e Event) error {
	if e == EventAssign && o.assignment != nil {
		return ErrAlreadyClaimed
	}
	_, err := o.status.Apply(e)
	return err
}

// Advance applies one of the plain lifecycle events: confirm, start_preparing, mark_ready or
// cancel. Assign and deliver carry side effects and have their own methods.
//
// Returns:
//   - nil on success; status and version change
//   - ErrInvalidTransition (wrapped) if the current status does not accept e
//   - ValueIsInvalid error for assign, deliver or an unknown event
func (o *Order) Advance(e Event) error {
	switch e {
	case EventConfirm, EventStartPreparing, EventMarkReady, EventCancel:
	case EventAssign, EventDeliver:
		return errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%s needs its own operation", e))
	default:
		return e.Validate()
	}

	next, err := o.status.Apply(e)
	if err != nil {
		return err
	}
	o.status = next
	o.touch()
	return nil
}

// Assign binds the order to a delivery agent and moves it out for delivery.
//
// Business rules:
//   - The order must be ready
//   - An order that already has an agent fails with ErrAlreadyClaimed
//
// PickupTime is taken from the assignment.
func (o *Order) Assign(a Assignment) error {
	if err := a.agentID.Validate(); err != nil {
		return err
	}
	if o.assignment != nil {
		return ErrAlreadyClaimed
	}
	next, err := o.status.Apply(EventAssign)
	if err != nil {
		return err
	}

	o.status = next
	o.assignment = &a
	pickup := a.assignedAt
	o.pickupTime = &pickup
	o.touch()
	return nil
}

// Deliver completes the order at the given moment. Cash orders are paid on delivery, so their
// payment status becomes completed.
func (o *Order) Deliver(at time.Time) error {
	next, err := o.status.Apply(EventDeliver)
	if err != nil {
		return err
	}

	o.status = next
	delivered := at.UTC()
	o.actualDeliveryTime = &delivered
	if o.paymentMethod == PaymentCash {
		o.paymentStatus = PaymentCompleted
	}
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.version = o.persistedVersion + 1
}

func (o *Order) setIdentity(id, customerID, restaurantID kernel.UUID) error {
	if err := errors.Join(id.Validate(), customerID.Validate(), restaurantID.Validate()); err != nil {
		return err
	}
	o.id = id
	o.customerID = customerID
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	var errList []error
	for i, it := range items {
		if it.quantity < MinItemQuantity || it.quantity > MaxItemQuantity {
			errList = append(errList, errs.NewValueIsOutOfRangeError(
				fmt.Sprintf("items[%d].quantity", i), it.quantity, MinItemQuantity, MaxItemQuantity))
		}
		if it.menuItemID.Validate() != nil {
			errList = append(errList, errs.NewValueIsRequiredError(fmt.Sprintf("items[%d].menuItemId", i)))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeliveryFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("deliveryFee", fmt.Errorf("%s is negative", fee))
	}
	o.deliveryFee = kernel.RoundMoney(fee)
	return nil
}

func (o *Order) setPaymentMethod(m PaymentMethod) error {
	if _, err := ParsePaymentMethod(string(m)); err != nil {
		return err
	}
	o.paymentMethod = m
	return nil
}

// setTotal must run after items and delivery fee are set.
func (o *Order) setTotal(total decimal.Decimal) error {
	computed := kernel.RoundMoney(Subtotal(o.items).Add(o.deliveryFee))
	if !kernel.MoneyEqual(computed, total) {
		return fmt.Errorf("%w: got %s, computed %s", ErrTotalMismatch, total.StringFixed(2), computed.StringFixed(2))
	}
	o.totalAmount = computed
	return nil
}

func (o *Order) validatePaymentStatus() error {
	_, err := ParsePaymentStatus(string(o.paymentStatus))
	return err
}

func (o *Order) validateAssignment() error {
	switch o.status {
	case OutForDelivery, Delivered:
		if o.assignment == nil || o.pickupTime == nil {
			return errs.NewValueIsRequiredErrorWithCause("assignment",
				fmt.Errorf("status %s requires a delivery agent and pickup time", o.status))
		}
	case Pending, Confirmed, Preparing, Ready:
		if o.assignment != nil {
			return errs.NewValueIsInvalidErrorWithCause("assignment",
				fmt.Errorf("status %s cannot have a delivery agent", o.status))
		}
	case Unknown, Cancelled:
	}
	if o.status == Delivered && o.actualDeliveryTime == nil {
		return errs.NewValueIsRequiredError("actualDeliveryTime")
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
