package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelapp/internal/models"
)

var bookingRowColumns = []string{
	"id", "booking_id", "user_id", "travel_option_id", "number_of_seats", "total_price",
	"status", "payment_status", "booking_date", "confirmation_date", "cancellation_date",
	"special_requests", "contact_email", "contact_phone", "booking_reference",
	"created_at", "updated_at",
}

func TestBookingCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	booking := &models.Booking{
		BookingID:        "TKT1234567",
		UserID:           1,
		TravelOptionID:   42,
		NumberOfSeats:    2,
		TotalPrice:       3000000,
		Status:           models.BookingStatusPending,
		PaymentStatus:    models.PaymentStatusPending,
		ContactEmail:     "demo@travelapp.local",
		ContactPhone:     "+77001234567",
		BookingReference: "a7b86f23-0000-0000-0000-000000000000",
	}

	now := time.Now()
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(
			booking.BookingID, booking.UserID, booking.TravelOptionID,
			booking.NumberOfSeats, booking.TotalPrice, booking.Status,
			booking.PaymentStatus, nil, booking.ContactEmail,
			booking.ContactPhone, booking.BookingReference,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_date", "created_at", "updated_at"}).
			AddRow(int64(7), now, now, now))

	require.NoError(t, repo.Create(context.Background(), booking))
	assert.Equal(t, int64(7), booking.ID)
	assert.Equal(t, now, booking.BookingDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByBookingIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs("TKT0000000").
		WillReturnRows(sqlmock.NewRows(bookingRowColumns))

	booking, err := repo.GetByBookingID(context.Background(), "TKT0000000")
	require.NoError(t, err)
	assert.Nil(t, booking)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserFiltersByStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE user_id").
		WithArgs(int64(1), models.BookingStatusConfirmed).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns).
			AddRow(int64(7), "TKT1234567", int64(1), int64(42), 2, int64(3000000),
				models.BookingStatusConfirmed, models.PaymentStatusCompleted,
				now, now, nil, nil, "demo@travelapp.local", "+77001234567",
				"a7b86f23-0000-0000-0000-000000000000", now, now))

	bookings, err := repo.ListByUser(context.Background(), 1, models.BookingStatusConfirmed)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "TKT1234567", bookings[0].BookingID)
	assert.NotNil(t, bookings[0].ConfirmationDate)
	assert.Nil(t, bookings[0].CancellationDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(errors.Join(errors.New("wrapped"), &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}
