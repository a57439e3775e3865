package repository

import (
	"context"

	"travelapp/internal/database"
	"travelapp/internal/models"
)

// RouteRepository maintains the monotonic search/booking counters per
// (source, destination) pair. Rows are created lazily on first increment;
// there is no decrement path.
type RouteRepository struct {
	db *database.DB
}

func NewRouteRepository(db *database.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

func (r *RouteRepository) IncrementSearch(ctx context.Context, source, destination string) error {
	query := `
		INSERT INTO popular_routes (source, destination, search_count, booking_count)
		VALUES ($1, $2, 1, 0)
		ON CONFLICT (source, destination)
		DO UPDATE SET search_count = popular_routes.search_count + 1, updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query, source, destination)
	return err
}

func (r *RouteRepository) IncrementBooking(ctx context.Context, source, destination string) error {
	query := `
		INSERT INTO popular_routes (source, destination, search_count, booking_count)
		VALUES ($1, $2, 0, 1)
		ON CONFLICT (source, destination)
		DO UPDATE SET booking_count = popular_routes.booking_count + 1, updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query, source, destination)
	return err
}

func (r *RouteRepository) Top(ctx context.Context, limit int) ([]models.PopularRoute, error) {
	query := `
		SELECT id, source, destination, search_count, booking_count, created_at, updated_at
		FROM popular_routes
		ORDER BY booking_count DESC, search_count DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []models.PopularRoute
	for rows.Next() {
		var route models.PopularRoute
		err := rows.Scan(
			&route.ID,
			&route.Source,
			&route.Destination,
			&route.SearchCount,
			&route.BookingCount,
			&route.CreatedAt,
			&route.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}

	return routes, rows.Err()
}
