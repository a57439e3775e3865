package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelapp/internal/apperrors"
	"travelapp/internal/database"
	"travelapp/internal/models"
)

func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return &database.DB{DB: mockDB}, mock
}

func TestReduceSeats(t *testing.T) {
	t.Run("enough seats", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTravelRepository(db)

		mock.ExpectExec("UPDATE travel_options").
			WithArgs(3, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.ReduceSeats(context.Background(), 7, 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not enough seats", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTravelRepository(db)

		mock.ExpectExec("UPDATE travel_options").
			WithArgs(5, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ReduceSeats(context.Background(), 7, 5)
		assert.ErrorIs(t, err, apperrors.ErrSeatsUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRestoreSeats(t *testing.T) {
	t.Run("within total seats", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTravelRepository(db)

		mock.ExpectExec("UPDATE travel_options").
			WithArgs(3, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.RestoreSeats(context.Background(), 7, 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("restore would exceed total seats", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTravelRepository(db)

		mock.ExpectExec("UPDATE travel_options").
			WithArgs(100, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RestoreSeats(context.Background(), 7, 100)
		assert.ErrorIs(t, err, apperrors.ErrSeatLimitExceeded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTravelCreateRecomputesDuration(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTravelRepository(db)

	departure := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	opt := &models.TravelOption{
		TravelID:       "FL123456",
		TravelType:     models.TravelTypeFlight,
		OperatorName:   "Air Astana",
		Source:         "Almaty",
		Destination:    "Astana",
		DepartureAt:    departure,
		ArrivalAt:      departure.Add(90 * time.Minute),
		BasePrice:      1500000,
		AvailableSeats: 120,
		TotalSeats:     120,
		Status:         models.TravelStatusActive,
	}

	mock.ExpectQuery("INSERT INTO travel_options").
		WithArgs(
			opt.TravelID, opt.TravelType, opt.OperatorName, opt.Source, opt.Destination,
			nil, nil, opt.DepartureAt, opt.ArrivalAt,
			int64(90), opt.BasePrice, opt.AvailableSeats, opt.TotalSeats,
			nil, opt.Status, opt.IsFeatured,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(42), time.Now(), time.Now()))

	require.NoError(t, repo.Create(context.Background(), opt))
	assert.Equal(t, int64(42), opt.ID)
	assert.Equal(t, int64(90), opt.DurationMin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByTravelIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTravelRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM travel_options").
		WithArgs("FL000000").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	opt, err := repo.GetByTravelID(context.Background(), "FL000000")
	require.NoError(t, err)
	assert.Nil(t, opt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
