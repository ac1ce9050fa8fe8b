package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatorApproves(t *testing.T) {
	res, err := Simulator{}.Process(context.Background(), Request{
		BookingID:   1,
		AmountCents: 350000,
		Method:      "card",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Ref)
}

func TestSimulatorDeclineMarker(t *testing.T) {
	_, err := Simulator{}.Process(context.Background(), Request{
		BookingID:   1,
		AmountCents: 100000,
		Method:      "card:declined",
	})
	assert.ErrorIs(t, err, ErrDeclined)

	// Marker match is case-insensitive.
	_, err = Simulator{}.Process(context.Background(), Request{
		BookingID:   1,
		AmountCents: 100000,
		Method:      "CARD:DECLINED",
	})
	assert.ErrorIs(t, err, ErrDeclined)
}

func TestSimulatorRejectsInvalidAmount(t *testing.T) {
	_, err := Simulator{}.Process(context.Background(), Request{Method: "card"})
	assert.Error(t, err)
}

func TestSimulatorHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Simulator{}.Process(ctx, Request{AmountCents: 100, Method: "card"})
	assert.ErrorIs(t, err, context.Canceled)
}
