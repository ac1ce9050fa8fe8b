// Package monitoring exposes Prometheus metrics for the booking flow.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "booking_sessions_active",
			Help: "Currently open booking sessions",
		},
	)

	seatToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seat_toggles_total",
			Help: "Seat selection toggles by outcome",
		},
		[]string{"outcome"},
	)

	bookingsConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_confirmed_total",
			Help: "Bookings confirmed after successful payment",
		},
	)

	paymentFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_failures_total",
			Help: "Payment attempts that were declined or errored",
		},
	)

	bookingAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booking_amount_cents",
			Help:    "Total amount of confirmed bookings in cents",
			Buckets: prometheus.ExponentialBuckets(10000, 2, 12),
		},
	)
)

// SessionOpened records a new booking session.
func SessionOpened() { activeSessions.Inc() }

// SessionClosed records a discarded, expired or completed session.
func SessionClosed() { activeSessions.Dec() }

// SeatToggled records a toggle attempt.  Outcome is one of "selected",
// "deselected", "rejected".
func SeatToggled(outcome string) { seatToggles.WithLabelValues(outcome).Inc() }

// BookingConfirmed records a confirmed booking and its amount.
func BookingConfirmed(amountCents int64) {
	bookingsConfirmed.Inc()
	bookingAmount.Observe(float64(amountCents))
}

// PaymentFailed records a declined or failed payment attempt.
func PaymentFailed() { paymentFailures.Inc() }
