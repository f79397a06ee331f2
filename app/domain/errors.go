// Package domain holds the business errors and the order status machine
// shared by services and controllers.
package domain

import "errors"

var (
	// ErrEmptyCart rejects order placement when the cart has no items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNotFound covers any entity the caller may not see: missing rows
	// and rows owned by another user are indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrOrderNotEligible rejects payment for an order that is missing,
	// not owned by the caller, or no longer pending.
	ErrOrderNotEligible = errors.New("order not found or already paid")

	// ErrInvalidTransition rejects a status change the state machine
	// does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStaleProduct rejects order placement when a cart references a
	// product that has since been removed from the catalogue.
	ErrStaleProduct = errors.New("cart references a product that no longer exists")

	// ErrPaymentDeclined is a definitive refusal from the payment
	// processor. The order stays pending and may be retried.
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken rejects registration with an already-used email.
	ErrEmailTaken = errors.New("email already registered")
)
