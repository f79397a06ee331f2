// Package gateway abstracts the external payment processor.
package gateway

import "context"

// ChargeRequest describes a charge in minor currency units.
type ChargeRequest struct {
	AmountMinor   int64
	Currency      string
	PaymentMethod string
	Description   string
}

// ChargeResult is the processor's answer to a charge attempt.
// Declined is a definitive "no" from the processor; anything else that
// goes wrong surfaces as an error from Charge.
type ChargeResult struct {
	TransactionID string
	Declined      bool
	DeclineReason string
}

// Gateway charges a payment method. Implementations must honour ctx
// cancellation and deadlines.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}
