package domain

import "context"

// PaymentProvider executes the decided outcome against the upstream payment
// ledger. A conclude transition commits locally only after the provider call
// succeeded.
type PaymentProvider interface {
	ApprovePayout(ctx context.Context, externalRef string) error
	RejectPayout(ctx context.Context, externalRef, reason string) error
}
