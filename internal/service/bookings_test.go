package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelapp/internal/apperrors"
	"travelapp/internal/config"
	"travelapp/internal/database"
	"travelapp/internal/external"
	"travelapp/internal/messaging"
	"travelapp/internal/models"
	"travelapp/internal/repository"
)

var travelRowColumns = []string{
	"id", "travel_id", "travel_type", "operator_name", "source", "destination",
	"source_code", "destination_code", "departure_datetime", "arrival_datetime",
	"duration_minutes", "base_price", "available_seats", "total_seats",
	"description", "status", "is_featured", "created_at", "updated_at",
}

var bookingRowColumns = []string{
	"id", "booking_id", "user_id", "travel_option_id", "number_of_seats", "total_price",
	"status", "payment_status", "booking_date", "confirmation_date", "cancellation_date",
	"special_requests", "contact_email", "contact_phone", "booking_reference",
	"created_at", "updated_at",
}

func newBookingService(t *testing.T, successRate float64) (*BookingService, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	repos := repository.NewRepositories(&database.DB{DB: mockDB})
	nats, err := messaging.NewNATSClient(config.NATSConfig{})
	require.NoError(t, err)
	payment := external.NewPaymentClient(config.PaymentConfig{SuccessRate: successRate})
	notify := external.NewNotificationClient(config.NotifyConfig{})

	return NewBookingService(repos, nats, payment, notify), mock
}

func travelRow(id int64, departure time.Time, availableSeats int, basePrice int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(travelRowColumns).AddRow(
		id, "FL123456", models.TravelTypeFlight, "Air Astana", "Almaty", "Astana",
		nil, nil, departure, departure.Add(90*time.Minute),
		int64(90), basePrice, availableSeats, 120,
		nil, models.TravelStatusActive, false, now, now,
	)
}

func bookingRow(id int64, userID int64, status, paymentStatus string, seats int, totalPrice int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(bookingRowColumns).AddRow(
		id, "TKT1234567", userID, int64(42), seats, totalPrice,
		status, paymentStatus, now, nil, nil,
		nil, "demo@travelapp.local", "+77001234567",
		"a7b86f23-0000-0000-0000-000000000000", now, now,
	)
}

func TestBookingCreate(t *testing.T) {
	t.Run("successful creation reserves seats and records history", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)
		departure := time.Now().AddDate(0, 0, 10)
		now := time.Now()

		mock.ExpectQuery("SELECT (.+) FROM travel_options").
			WithArgs("FL123456").
			WillReturnRows(travelRow(42, departure, 100, 1500000))
		mock.ExpectExec("UPDATE travel_options").
			WithArgs(2, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnRows(sqlmock.NewRows([]string{"id", "booking_date", "created_at", "updated_at"}).
				AddRow(int64(7), now, now, now))
		mock.ExpectQuery("INSERT INTO booking_history").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

		booking, err := svc.Create(context.Background(), 1, &models.CreateBookingRequest{
			TravelID:      "FL123456",
			NumberOfSeats: 2,
			ContactEmail:  "demo@travelapp.local",
			ContactPhone:  "+77001234567",
		})
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
		assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)
		assert.Equal(t, int64(3000000), booking.TotalPrice)
		assert.Regexp(t, `^TKT\d{7}$`, booking.BookingID)
		assert.NotEmpty(t, booking.BookingReference)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown travel id", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)

		mock.ExpectQuery("SELECT (.+) FROM travel_options").
			WithArgs("FL000000").
			WillReturnRows(sqlmock.NewRows(travelRowColumns))

		_, err := svc.Create(context.Background(), 1, &models.CreateBookingRequest{
			TravelID:      "FL000000",
			NumberOfSeats: 1,
			ContactEmail:  "demo@travelapp.local",
			ContactPhone:  "+77001234567",
		})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("departed option is not bookable", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)

		mock.ExpectQuery("SELECT (.+) FROM travel_options").
			WithArgs("FL123456").
			WillReturnRows(travelRow(42, time.Now().Add(-time.Hour), 100, 1500000))

		_, err := svc.Create(context.Background(), 1, &models.CreateBookingRequest{
			TravelID:      "FL123456",
			NumberOfSeats: 1,
			ContactEmail:  "demo@travelapp.local",
			ContactPhone:  "+77001234567",
		})
		assert.ErrorIs(t, err, apperrors.ErrTravelUnavailable)
	})

	t.Run("overbooking attempt is rejected atomically", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)
		departure := time.Now().AddDate(0, 0, 10)

		mock.ExpectQuery("SELECT (.+) FROM travel_options").
			WithArgs("FL123456").
			WillReturnRows(travelRow(42, departure, 3, 1500000))
		mock.ExpectExec("UPDATE travel_options").
			WithArgs(5, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := svc.Create(context.Background(), 1, &models.CreateBookingRequest{
			TravelID:      "FL123456",
			NumberOfSeats: 5,
			ContactEmail:  "demo@travelapp.local",
			ContactPhone:  "+77001234567",
		})
		assert.ErrorIs(t, err, apperrors.ErrSeatsUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("seats restored when booking insert fails", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)
		departure := time.Now().AddDate(0, 0, 10)

		mock.ExpectQuery("SELECT (.+) FROM travel_options").
			WithArgs("FL123456").
			WillReturnRows(travelRow(42, departure, 100, 1500000))
		mock.ExpectExec("UPDATE travel_options").
			WithArgs(2, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnError(assert.AnError)
		mock.ExpectExec("UPDATE travel_options").
			WithArgs(2, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		_, err := svc.Create(context.Background(), 1, &models.CreateBookingRequest{
			TravelID:      "FL123456",
			NumberOfSeats: 2,
			ContactEmail:  "demo@travelapp.local",
			ContactPhone:  "+77001234567",
		})
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingPay(t *testing.T) {
	t.Run("approved payment confirms the booking", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)
		now := time.Now()

		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs("TKT1234567").
			WillReturnRows(bookingRow(7, 1, models.BookingStatusPending, models.PaymentStatusPending, 2, 3000000))
		mock.ExpectExec("UPDATE bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO booking_history").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(2), now))
		mock.ExpectQuery("SELECT (.+) FROM travel_options").
			WithArgs(int64(42)).
			WillReturnRows(travelRow(42, time.Now().AddDate(0, 0, 10), 98, 1500000))
		mock.ExpectExec("INSERT INTO popular_routes").
			WithArgs("Almaty", "Astana").
			WillReturnResult(sqlmock.NewResult(1, 1))

		resp, err := svc.Pay(context.Background(), 1, "TKT1234567")
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, resp.Status)
		assert.Equal(t, models.PaymentStatusCompleted, resp.PaymentStatus)
		assert.Contains(t, resp.PaymentRef, "PAY_TKT1234567_")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("declined payment leaves booking pending", func(t *testing.T) {
		svc, mock := newBookingService(t, 0.0)

		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs("TKT1234567").
			WillReturnRows(bookingRow(7, 1, models.BookingStatusPending, models.PaymentStatusPending, 2, 3000000))
		mock.ExpectExec("UPDATE bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))

		_, err := svc.Pay(context.Background(), 1, "TKT1234567")
		assert.ErrorIs(t, err, apperrors.ErrPaymentDeclined)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("confirmed booking cannot be paid again", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)

		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs("TKT1234567").
			WillReturnRows(bookingRow(7, 1, models.BookingStatusConfirmed, models.PaymentStatusCompleted, 2, 3000000))

		_, err := svc.Pay(context.Background(), 1, "TKT1234567")
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	})

	t.Run("foreign booking is rejected", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)

		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs("TKT1234567").
			WillReturnRows(bookingRow(7, 99, models.BookingStatusPending, models.PaymentStatusPending, 2, 3000000))

		_, err := svc.Pay(context.Background(), 1, "TKT1234567")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestBookingCancel(t *testing.T) {
	t.Run("cancellation eight days ahead refunds ninety percent", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)
		departure := time.Now().AddDate(0, 0, 8)
		now := time.Now()

		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs("TKT1234567").
			WillReturnRows(bookingRow(7, 1, models.BookingStatusConfirmed, models.PaymentStatusCompleted, 2, 3000000))
		mock.ExpectQuery("SELECT (.+) FROM travel_options").
			WithArgs(int64(42)).
			WillReturnRows(travelRow(42, departure, 98, 1500000))
		mock.ExpectExec("UPDATE bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE travel_options").
			WithArgs(2, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO booking_history").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))

		resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			BookingID: "TKT1234567",
			Reason:    "change of plans",
		})
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, resp.Status)
		assert.Equal(t, int64(2700000), resp.RefundAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pending booking is cancelled without refund", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)
		departure := time.Now().AddDate(0, 0, 8)
		now := time.Now()

		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs("TKT1234567").
			WillReturnRows(bookingRow(7, 1, models.BookingStatusPending, models.PaymentStatusPending, 2, 3000000))
		mock.ExpectQuery("SELECT (.+) FROM travel_options").
			WithArgs(int64(42)).
			WillReturnRows(travelRow(42, departure, 98, 1500000))
		mock.ExpectExec("UPDATE bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE travel_options").
			WithArgs(2, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO booking_history").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))

		resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			BookingID: "TKT1234567",
		})
		require.NoError(t, err)
		assert.Zero(t, resp.RefundAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("too close to departure", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)
		departure := time.Now().Add(12 * time.Hour)

		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs("TKT1234567").
			WillReturnRows(bookingRow(7, 1, models.BookingStatusConfirmed, models.PaymentStatusCompleted, 2, 3000000))
		mock.ExpectQuery("SELECT (.+) FROM travel_options").
			WithArgs(int64(42)).
			WillReturnRows(travelRow(42, departure, 98, 1500000))

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			BookingID: "TKT1234567",
		})
		assert.ErrorIs(t, err, apperrors.ErrNotCancellable)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)
		departure := time.Now().AddDate(0, 0, 8)

		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs("TKT1234567").
			WillReturnRows(bookingRow(7, 1, models.BookingStatusCompleted, models.PaymentStatusCompleted, 2, 3000000))
		mock.ExpectQuery("SELECT (.+) FROM travel_options").
			WithArgs(int64(42)).
			WillReturnRows(travelRow(42, departure, 98, 1500000))

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			BookingID: "TKT1234567",
		})
		assert.ErrorIs(t, err, apperrors.ErrNotCancellable)
	})
}

func TestBulkCancel(t *testing.T) {
	t.Run("eligible booking is cancelled with seats restored", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)
		departure := time.Now().AddDate(0, 0, 8)
		now := time.Now()

		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs("TKT1234567").
			WillReturnRows(bookingRow(7, 1, models.BookingStatusConfirmed, models.PaymentStatusCompleted, 2, 3000000))
		mock.ExpectQuery("SELECT (.+) FROM travel_options").
			WithArgs(int64(42)).
			WillReturnRows(travelRow(42, departure, 98, 1500000))
		mock.ExpectExec("UPDATE bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE travel_options").
			WithArgs(2, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO booking_history").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now))

		resp, err := svc.BulkCancel(context.Background(), 99, &models.BulkBookingActionRequest{
			BookingIDs: []string{"TKT1234567"},
			Reason:     "operator schedule change",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("departed booking is skipped and keeps its seats", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)
		departure := time.Now().Add(-2 * time.Hour)

		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs("TKT1234567").
			WillReturnRows(bookingRow(7, 1, models.BookingStatusConfirmed, models.PaymentStatusCompleted, 2, 3000000))
		mock.ExpectQuery("SELECT (.+) FROM travel_options").
			WithArgs(int64(42)).
			WillReturnRows(travelRow(42, departure, 98, 1500000))

		resp, err := svc.BulkCancel(context.Background(), 99, &models.BulkBookingActionRequest{
			BookingIDs: []string{"TKT1234567"},
		})
		require.NoError(t, err)
		assert.Zero(t, resp.Updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("booking inside the cancellation window is skipped", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)
		departure := time.Now().Add(12 * time.Hour)

		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs("TKT1234567").
			WillReturnRows(bookingRow(7, 1, models.BookingStatusConfirmed, models.PaymentStatusCompleted, 2, 3000000))
		mock.ExpectQuery("SELECT (.+) FROM travel_options").
			WithArgs(int64(42)).
			WillReturnRows(travelRow(42, departure, 98, 1500000))

		resp, err := svc.BulkCancel(context.Background(), 99, &models.BulkBookingActionRequest{
			BookingIDs: []string{"TKT1234567"},
		})
		require.NoError(t, err)
		assert.Zero(t, resp.Updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSavePassengers(t *testing.T) {
	t.Run("passenger count above booked seats is rejected", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)

		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs("TKT1234567").
			WillReturnRows(bookingRow(7, 1, models.BookingStatusPending, models.PaymentStatusPending, 1, 1500000))

		req := &models.SavePassengersRequest{
			Passengers: []models.PassengerRequest{
				{Title: "MR", FirstName: "Ali", LastName: "Bekov", DateOfBirth: "1990-01-01", Gender: "M", IDNumber: "N1"},
				{Title: "MS", FirstName: "Aida", LastName: "Bekova", DateOfBirth: "1992-02-02", Gender: "F", IDNumber: "N2"},
			},
		}
		err := svc.SavePassengers(context.Background(), 1, "TKT1234567", req)
		assert.ErrorIs(t, err, apperrors.ErrPassengerCount)
	})

	t.Run("confirmed booking passengers are frozen", func(t *testing.T) {
		svc, mock := newBookingService(t, 1.0)

		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs("TKT1234567").
			WillReturnRows(bookingRow(7, 1, models.BookingStatusConfirmed, models.PaymentStatusCompleted, 2, 3000000))

		req := &models.SavePassengersRequest{
			Passengers: []models.PassengerRequest{
				{Title: "MR", FirstName: "Ali", LastName: "Bekov", DateOfBirth: "1990-01-01", Gender: "M", IDNumber: "N1"},
			},
		}
		err := svc.SavePassengers(context.Background(), 1, "TKT1234567", req)
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	})
}

func TestCompleteDeparted(t *testing.T) {
	svc, mock := newBookingService(t, 1.0)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM bookings b").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns).
			AddRow(int64(7), "TKT1234567", int64(1), int64(42), 2, int64(3000000),
				models.BookingStatusConfirmed, models.PaymentStatusCompleted,
				now, now, nil, nil, "demo@travelapp.local", "+77001234567",
				"a7b86f23-0000-0000-0000-000000000000", now, now))
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO booking_history").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(4), now))

	count, err := svc.CompleteDeparted(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
