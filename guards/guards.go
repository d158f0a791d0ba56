// Package guards holds the fail-fast precondition checks invoked immediately
// before cart-mutating operations. Every predicate is pure and side-effect
// free; a failure means the caller must not proceed.
package guards

import (
	apperrors "github.com/princekenny23/primepos-sub004/errors"
)

// OrderTypeDineIn marks orders that require a table before entry.
const OrderTypeDineIn = "dine_in"

// CartNotEmpty rejects checkout of an empty cart.
func CartNotEmpty(lineCount int) error {
	if lineCount == 0 {
		return apperrors.Guard("cart is empty")
	}
	return nil
}

// TableSelected requires a table association before a dine-in order.
func TableSelected(orderType, tableNumber string) error {
	if orderType == OrderTypeDineIn && tableNumber == "" {
		return apperrors.Guard("select a table before starting a dine-in order")
	}
	return nil
}

// ShiftOpen requires an active register session before any sale-affecting
// operation.
func ShiftOpen(open bool) error {
	if !open {
		return apperrors.Guard("no open shift on this register")
	}
	return nil
}

// PaymentMethodAllowed checks the method against the configured allow-list.
func PaymentMethodAllowed(method string, allowed []string) error {
	for _, m := range allowed {
		if m == method {
			return nil
		}
	}
	return apperrors.Guard("payment method not configured: " + method)
}
