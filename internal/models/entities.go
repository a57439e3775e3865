package models

import (
	"time"
)

// Travel option statuses and types
const (
	TravelTypeFlight = "FLIGHT"
	TravelTypeTrain  = "TRAIN"
	TravelTypeBus    = "BUS"

	TravelStatusActive    = "ACTIVE"
	TravelStatusInactive  = "INACTIVE"
	TravelStatusCancelled = "CANCELLED"
)

// Booking statuses. REFUNDED is declared for schema parity but no
// transition produces it.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
	BookingStatusRefunded  = "REFUNDED"

	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusRefunded  = "REFUNDED"
)

// User represents an account in the system
type User struct {
	UserID       int64     `json:"user_id" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	Surname      string    `json:"surname" db:"surname"`
	Phone        *string   `json:"phone" db:"phone"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
}

// TravelOption represents a bookable departure (one flight/train/bus) with
// a finite seat pool. Prices are stored in minor currency units.
type TravelOption struct {
	ID              int64     `json:"id" db:"id"`
	TravelID        string    `json:"travel_id" db:"travel_id"`
	TravelType      string    `json:"travel_type" db:"travel_type"`
	OperatorName    string    `json:"operator_name" db:"operator_name"`
	Source          string    `json:"source" db:"source"`
	Destination     string    `json:"destination" db:"destination"`
	SourceCode      *string   `json:"source_code" db:"source_code"`
	DestinationCode *string   `json:"destination_code" db:"destination_code"`
	DepartureAt     time.Time `json:"departure_datetime" db:"departure_datetime"`
	ArrivalAt       time.Time `json:"arrival_datetime" db:"arrival_datetime"`
	DurationMin     int64     `json:"duration_minutes" db:"duration_minutes"`
	BasePrice       int64     `json:"base_price" db:"base_price"`
	AvailableSeats  int       `json:"available_seats" db:"available_seats"`
	TotalSeats      int       `json:"total_seats" db:"total_seats"`
	Description     *string   `json:"description" db:"description"`
	Status          string    `json:"status" db:"status"`
	IsFeatured      bool      `json:"is_featured" db:"is_featured"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// IsBookable reports whether new bookings may be created against the option.
func (t *TravelOption) IsBookable(now time.Time) bool {
	return t.Status == TravelStatusActive &&
		t.AvailableSeats > 0 &&
		t.DepartureAt.After(now)
}

// Booking represents a user's reservation of seats against one travel option.
// TotalPrice is fixed at creation time and never recalculated.
type Booking struct {
	ID               int64      `json:"id" db:"id"`
	BookingID        string     `json:"booking_id" db:"booking_id"`
	UserID           int64      `json:"user_id" db:"user_id"`
	TravelOptionID   int64      `json:"travel_option_id" db:"travel_option_id"`
	NumberOfSeats    int        `json:"number_of_seats" db:"number_of_seats"`
	TotalPrice       int64      `json:"total_price" db:"total_price"`
	Status           string     `json:"status" db:"status"`
	PaymentStatus    string     `json:"payment_status" db:"payment_status"`
	BookingDate      time.Time  `json:"booking_date" db:"booking_date"`
	ConfirmationDate *time.Time `json:"confirmation_date" db:"confirmation_date"`
	CancellationDate *time.Time `json:"cancellation_date" db:"cancellation_date"`
	SpecialRequests  *string    `json:"special_requests" db:"special_requests"`
	ContactEmail     string     `json:"contact_email" db:"contact_email"`
	ContactPhone     string     `json:"contact_phone" db:"contact_phone"`
	BookingReference string     `json:"booking_reference" db:"booking_reference"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`

	TravelOption *TravelOption `json:"travel_option,omitempty"` // Not from DB, filled separately
}

// PassengerDetail is a per-seat passenger record owned by a booking.
type PassengerDetail struct {
	ID                int64     `json:"id" db:"id"`
	BookingID         int64     `json:"booking_id" db:"booking_id"`
	Title             string    `json:"title" db:"title"`
	FirstName         string    `json:"first_name" db:"first_name"`
	LastName          string    `json:"last_name" db:"last_name"`
	DateOfBirth       time.Time `json:"date_of_birth" db:"date_of_birth"`
	Gender            string    `json:"gender" db:"gender"`
	IDType            string    `json:"id_type" db:"id_type"`
	IDNumber          string    `json:"id_number" db:"id_number"`
	SeatPreference    *string   `json:"seat_preference" db:"seat_preference"`
	MealPreference    *string   `json:"meal_preference" db:"meal_preference"`
	SpecialAssistance *string   `json:"special_assistance" db:"special_assistance"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// BookingHistory is an append-only audit row for one status transition.
// StatusFrom is nil for the creation row.
type BookingHistory struct {
	ID         int64     `json:"id" db:"id"`
	BookingID  int64     `json:"booking_id" db:"booking_id"`
	StatusFrom *string   `json:"status_from" db:"status_from"`
	StatusTo   string    `json:"status_to" db:"status_to"`
	ChangedBy  *int64    `json:"changed_by" db:"changed_by"`
	Reason     *string   `json:"reason" db:"reason"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// PopularRoute tracks search/booking frequency for a source-destination pair.
type PopularRoute struct {
	ID           int64     `json:"id" db:"id"`
	Source       string    `json:"source" db:"source"`
	Destination  string    `json:"destination" db:"destination"`
	SearchCount  int64     `json:"search_count" db:"search_count"`
	BookingCount int64     `json:"booking_count" db:"booking_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
