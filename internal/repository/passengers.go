package repository

import (
	"context"

	"travelapp/internal/database"
	"travelapp/internal/models"
)

type PassengerRepository struct {
	db *database.DB
}

func NewPassengerRepository(db *database.DB) *PassengerRepository {
	return &PassengerRepository{db: db}
}

// ReplaceForBooking rewrites the passenger list of a booking in one
// transaction. Passengers have no lifecycle beyond their booking, so a full
// replace keeps the form-resubmission flow simple.
func (r *PassengerRepository) ReplaceForBooking(ctx context.Context, bookingID int64, passengers []models.PassengerDetail) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM passenger_details WHERE booking_id = $1`, bookingID); err != nil {
		return err
	}

	query := `
		INSERT INTO passenger_details (booking_id, title, first_name, last_name, date_of_birth,
		                               gender, id_type, id_number, seat_preference,
		                               meal_preference, special_assistance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	for _, p := range passengers {
		_, err := tx.ExecContext(ctx, query,
			bookingID,
			p.Title,
			p.FirstName,
			p.LastName,
			p.DateOfBirth,
			p.Gender,
			p.IDType,
			p.IDNumber,
			p.SeatPreference,
			p.MealPreference,
			p.SpecialAssistance,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PassengerRepository) ListByBooking(ctx context.Context, bookingID int64) ([]models.PassengerDetail, error) {
	query := `
		SELECT id, booking_id, title, first_name, last_name, date_of_birth,
		       gender, id_type, id_number, seat_preference, meal_preference,
		       special_assistance, created_at
		FROM passenger_details
		WHERE booking_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passengers []models.PassengerDetail
	for rows.Next() {
		var p models.PassengerDetail
		err := rows.Scan(
			&p.ID,
			&p.BookingID,
			&p.Title,
			&p.FirstName,
			&p.LastName,
			&p.DateOfBirth,
			&p.Gender,
			&p.IDType,
			&p.IDNumber,
			&p.SeatPreference,
			&p.MealPreference,
			&p.SpecialAssistance,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}

	return passengers, rows.Err()
}
