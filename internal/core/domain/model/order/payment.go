package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentCash, PaymentOnline:
		return m, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not supported", s))
	}
}

// PaymentStatus is owned by the payment collaborator except for cash orders, which complete on
// delivery.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch p := PaymentStatus(s); p {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return p, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%q is not supported", s))
	}
}
