package repository

import (
	"context"
	"database/sql"
	"time"

	"travelapp/internal/database"
	"travelapp/internal/models"
)

type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, booking_id, user_id, travel_option_id, number_of_seats, total_price,
	       status, payment_status, booking_date, confirmation_date, cancellation_date,
	       special_requests, contact_email, contact_phone, booking_reference,
	       created_at, updated_at`

func scanBooking(row interface{ Scan(...interface{}) error }, b *models.Booking) error {
	return row.Scan(
		&b.ID,
		&b.BookingID,
		&b.UserID,
		&b.TravelOptionID,
		&b.NumberOfSeats,
		&b.TotalPrice,
		&b.Status,
		&b.PaymentStatus,
		&b.BookingDate,
		&b.ConfirmationDate,
		&b.CancellationDate,
		&b.SpecialRequests,
		&b.ContactEmail,
		&b.ContactPhone,
		&b.BookingReference,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (booking_id, user_id, travel_option_id, number_of_seats, total_price,
		                      status, payment_status, special_requests, contact_email, contact_phone,
		                      booking_reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, booking_date, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		booking.BookingID,
		booking.UserID,
		booking.TravelOptionID,
		booking.NumberOfSeats,
		booking.TotalPrice,
		booking.Status,
		booking.PaymentStatus,
		booking.SpecialRequests,
		booking.ContactEmail,
		booking.ContactPhone,
		booking.BookingReference,
	).Scan(&booking.ID, &booking.BookingDate, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	booking := &models.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	err := scanBooking(r.db.QueryRowContext(ctx, query, id), booking)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return booking, err
}

func (r *BookingRepository) GetByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking := &models.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1`

	err := scanBooking(r.db.QueryRowContext(ctx, query, bookingID), booking)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return booking, err
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, status string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1`
	args := []interface{}{userID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}

	query += ` ORDER BY booking_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

// Update persists the mutable booking fields. Confirmation and cancellation
// dates are written as-is; the transition functions own the set-once rule.
func (r *BookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, payment_status = $2, confirmation_date = $3,
		    cancellation_date = $4, updated_at = NOW()
		WHERE id = $5`

	_, err := r.db.ExecContext(ctx, query,
		booking.Status,
		booking.PaymentStatus,
		booking.ConfirmationDate,
		booking.CancellationDate,
		booking.ID,
	)

	return err
}

// ListDepartedConfirmed returns CONFIRMED bookings whose travel option has
// already departed, for the completion sweep.
func (r *BookingRepository) ListDepartedConfirmed(ctx context.Context, now time.Time) ([]models.Booking, error) {
	query := `
		SELECT ` + qualifyBookingColumns("b") + `
		FROM bookings b
		JOIN travel_options t ON t.id = b.travel_option_id
		WHERE b.status = 'CONFIRMED' AND t.departure_datetime < $1
		ORDER BY b.booking_date ASC`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

func qualifyBookingColumns(alias string) string {
	return alias + `.id, ` + alias + `.booking_id, ` + alias + `.user_id, ` + alias + `.travel_option_id,
	       ` + alias + `.number_of_seats, ` + alias + `.total_price, ` + alias + `.status,
	       ` + alias + `.payment_status, ` + alias + `.booking_date, ` + alias + `.confirmation_date,
	       ` + alias + `.cancellation_date, ` + alias + `.special_requests, ` + alias + `.contact_email,
	       ` + alias + `.contact_phone, ` + alias + `.booking_reference, ` + alias + `.created_at, ` + alias + `.updated_at`
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	var bookings []models.Booking
	for rows.Next() {
		var booking models.Booking
		if err := scanBooking(rows, &booking); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
