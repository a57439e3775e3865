package models

import "time"

// NATS Event Types
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventPaymentCompleted = "payment.completed"
	EventPaymentFailed    = "payment.failed"
)

// BookingCreatedEvent represents a booking creation event
type BookingCreatedEvent struct {
	BookingID     string    `json:"booking_id"`
	TravelID      string    `json:"travel_id"`
	UserID        int64     `json:"user_id"`
	NumberOfSeats int       `json:"number_of_seats"`
	TotalPrice    int64     `json:"total_price"`
	Timestamp     time.Time `json:"timestamp"`
}

// BookingCancelledEvent represents a booking cancellation event
type BookingCancelledEvent struct {
	BookingID    string    `json:"booking_id"`
	TravelID     string    `json:"travel_id"`
	Reason       string    `json:"reason"`
	RefundAmount int64     `json:"refund_amount"`
	Timestamp    time.Time `json:"timestamp"`
}

// PaymentCompletedEvent represents a successful payment event
type PaymentCompletedEvent struct {
	BookingID    string    `json:"booking_id"`
	PaymentRef   string    `json:"payment_ref"`
	TotalPrice   int64     `json:"total_price"`
	ContactEmail string    `json:"contact_email"`
	Timestamp    time.Time `json:"timestamp"`
}

// PaymentFailedEvent represents a declined payment event
type PaymentFailedEvent struct {
	BookingID string    `json:"booking_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}
