package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrBadPaymentMethod   = errors.New("unsupported payment method")
	ErrGuestEmailRequired = errors.New("email is required for guest checkout")
)

// ValidationError points at the cart line that failed so the storefront can
// fix the cart. Internal ids stay out of the message.
type ValidationError struct {
	Line    int    // zero-based index into the submitted items
	Product string // product name when known, submitted id otherwise
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("item %d (%s): %v", e.Line+1, e.Product, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
