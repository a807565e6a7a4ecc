package cart

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ErrCartInvalid matches every *ValidationError.
var ErrCartInvalid = errors.New("cart is invalid")

type ProblemCode string

const (
	ProblemRestaurantMissing ProblemCode = "restaurant_missing"
	ProblemRestaurantClosed  ProblemCode = "restaurant_closed"
	ProblemCartEmpty         ProblemCode = "cart_empty"
	ProblemItemMissing       ProblemCode = "item_missing"
	ProblemItemUnavailable   ProblemCode = "item_unavailable"
	ProblemInvalidQuantity   ProblemCode = "invalid_quantity"
	ProblemPriceChanged      ProblemCode = "price_changed"
	ProblemTotalChanged      ProblemCode = "total_changed"
	ProblemMinimumNotMet     ProblemCode = "minimum_not_met"
)

// Problem is one user-facing reason a cart cannot be checked out. MenuItemID is set for
// line-level problems. Fatal problems stop revalidation.
type Problem struct {
	Code       ProblemCode
	Message    string
	MenuItemID *kernel.UUID
	Fatal      bool
}

// ValidationError is the batch of problems found in one revalidation pass, in the order they
// were found. Subtotal is computed from the surviving lines at current prices so a client can
// show what the cart would cost now.
type ValidationError struct {
	Problems []Problem
	Subtotal decimal.Decimal
	// Corrected holds the surviving lines at current prices when every problem is recoverable by
	// resubmitting it, and is nil otherwise.
	Corrected *ClientCart
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Message)
	}
	return fmt.Sprintf("%s: %s", ErrCartInvalid, strings.Join(msgs, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrCartInvalid
}

// Has reports whether a problem with the given code was found.
func (e *ValidationError) Has(code ProblemCode) bool {
	for _, p := range e.Problems {
		if p.Code == code {
			return true
		}
	}
	return false
}
