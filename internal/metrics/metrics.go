package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelapp_bookings_created_total",
			Help: "Number of bookings created, by travel type",
		},
		[]string{"travel_type"},
	)

	bookingsConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "travelapp_bookings_confirmed_total",
			Help: "Number of bookings confirmed after successful payment",
		},
	)

	bookingsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "travelapp_bookings_cancelled_total",
			Help: "Number of bookings cancelled",
		},
	)

	paymentsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelapp_payments_processed_total",
			Help: "Number of payment attempts, by result",
		},
		[]string{"result"},
	)

	seatConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "travelapp_seat_conflicts_total",
			Help: "Number of booking attempts rejected due to insufficient seats",
		},
	)
)

// Register регистрирует все метрики в глобальном регистре Prometheus
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			bookingsCreated,
			bookingsConfirmed,
			bookingsCancelled,
			paymentsProcessed,
			seatConflicts,
		)
	})
}

func IncBookingCreated(travelType string) {
	bookingsCreated.WithLabelValues(travelType).Inc()
}

func IncBookingConfirmed() {
	bookingsConfirmed.Inc()
}

func IncBookingCancelled() {
	bookingsCancelled.Inc()
}

func IncPaymentProcessed(result string) {
	paymentsProcessed.WithLabelValues(result).Inc()
}

func IncSeatConflict() {
	seatConflicts.Inc()
}
