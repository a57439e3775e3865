package repository

import (
	"context"

	"travelapp/internal/database"
	"travelapp/internal/models"
)

// AnalyticsRepository aggregates inventory and booking figures for the admin
// dashboard.
type AnalyticsRepository struct {
	db *database.DB
}

func NewAnalyticsRepository(db *database.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) Overview(ctx context.Context) (*models.AnalyticsResponse, error) {
	resp := &models.AnalyticsResponse{}

	optionsQuery := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'ACTIVE')
		FROM travel_options`
	if err := r.db.QueryRowContext(ctx, optionsQuery).Scan(&resp.TotalOptions, &resp.ActiveOptions); err != nil {
		return nil, err
	}

	bookingsQuery := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status IN ('CONFIRMED', 'COMPLETED')),
		       COALESCE(SUM(total_price) FILTER (WHERE status IN ('CONFIRMED', 'COMPLETED')), 0)
		FROM bookings`
	if err := r.db.QueryRowContext(ctx, bookingsQuery).Scan(&resp.TotalBookings, &resp.ActiveBookings, &resp.TotalRevenue); err != nil {
		return nil, err
	}

	typeStats, err := r.travelTypeStats(ctx)
	if err != nil {
		return nil, err
	}
	resp.TravelTypeStats = typeStats

	return resp, nil
}

func (r *AnalyticsRepository) travelTypeStats(ctx context.Context) ([]models.TravelTypeStat, error) {
	query := `
		SELECT travel_type, COUNT(*), COALESCE(AVG(base_price), 0),
		       COALESCE(SUM(total_seats), 0), COALESCE(SUM(available_seats), 0)
		FROM travel_options
		GROUP BY travel_type
		ORDER BY COUNT(*) DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.TravelTypeStat
	for rows.Next() {
		var s models.TravelTypeStat
		if err := rows.Scan(&s.TravelType, &s.Count, &s.AvgPrice, &s.TotalSeats, &s.AvailableSeats); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
