// Package payment defines the payment collaborator used at checkout.
// The production processor is simulated: outcomes are test-triggered via
// the payment method value, never random, so flows are reproducible.
package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrDeclined is returned when the (simulated) issuer declines a charge.
var ErrDeclined = errors.New("payment declined by issuer")

// Request describes one charge attempt for a booking.
type Request struct {
	BookingID   uint64
	AmountCents int64
	Method      string
	Customer    string
}

// Result is the processor's answer for an accepted charge.
type Result struct {
	Ref string // reference to store on the booking
}

// Processor is the external payment collaborator.  Process returns a
// Result when the charge is accepted and an error (ErrDeclined or a
// transport failure) otherwise.
type Processor interface {
	Process(ctx context.Context, req Request) (Result, error)
}

// DeclineSuffix on the payment method triggers a simulated decline, e.g.
// "card:declined".  This mirrors the explicitly test-triggered failure
// path of the checkout flow.
const DeclineSuffix = ":declined"

// Simulator approves every charge except those whose method carries the
// decline marker.  References are random uuids.
type Simulator struct{}

// Process implements Processor.
func (Simulator) Process(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if req.AmountCents <= 0 {
		return Result{}, errors.New("invalid amount")
	}
	if strings.HasSuffix(strings.ToLower(req.Method), DeclineSuffix) {
		return Result{}, ErrDeclined
	}
	return Result{Ref: "pay-" + uuid.NewString()}, nil
}
