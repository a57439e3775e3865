package repository

import (
	"context"

	"travelapp/internal/database"
	"travelapp/internal/models"
)

// HistoryRepository is append-only. History rows are never updated or
// deleted.
type HistoryRepository struct {
	db *database.DB
}

func NewHistoryRepository(db *database.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Append(ctx context.Context, entry *models.BookingHistory) error {
	query := `
		INSERT INTO booking_history (booking_id, status_from, status_to, changed_by, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		entry.BookingID,
		entry.StatusFrom,
		entry.StatusTo,
		entry.ChangedBy,
		entry.Reason,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *HistoryRepository) ListByBooking(ctx context.Context, bookingID int64) ([]models.BookingHistory, error) {
	query := `
		SELECT id, booking_id, status_from, status_to, changed_by, reason, created_at
		FROM booking_history
		WHERE booking_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.BookingHistory
	for rows.Next() {
		var entry models.BookingHistory
		err := rows.Scan(
			&entry.ID,
			&entry.BookingID,
			&entry.StatusFrom,
			&entry.StatusTo,
			&entry.ChangedBy,
			&entry.Reason,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
