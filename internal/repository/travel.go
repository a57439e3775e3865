package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"travelapp/internal/apperrors"
	"travelapp/internal/database"
	"travelapp/internal/models"

	"github.com/lib/pq"
)

type TravelRepository struct {
	db *database.DB
}

func NewTravelRepository(db *database.DB) *TravelRepository {
	return &TravelRepository{db: db}
}

const travelColumns = `id, travel_id, travel_type, operator_name, source, destination,
	       source_code, destination_code, departure_datetime, arrival_datetime,
	       duration_minutes, base_price, available_seats, total_seats,
	       description, status, is_featured, created_at, updated_at`

func scanTravelOption(row interface{ Scan(...interface{}) error }, opt *models.TravelOption) error {
	return row.Scan(
		&opt.ID,
		&opt.TravelID,
		&opt.TravelType,
		&opt.OperatorName,
		&opt.Source,
		&opt.Destination,
		&opt.SourceCode,
		&opt.DestinationCode,
		&opt.DepartureAt,
		&opt.ArrivalAt,
		&opt.DurationMin,
		&opt.BasePrice,
		&opt.AvailableSeats,
		&opt.TotalSeats,
		&opt.Description,
		&opt.Status,
		&opt.IsFeatured,
		&opt.CreatedAt,
		&opt.UpdatedAt,
	)
}

func (r *TravelRepository) Create(ctx context.Context, opt *models.TravelOption) error {
	// Duration is derived, recomputed on every persist.
	opt.DurationMin = int64(opt.ArrivalAt.Sub(opt.DepartureAt) / time.Minute)

	query := `
		INSERT INTO travel_options (travel_id, travel_type, operator_name, source, destination,
		                            source_code, destination_code, departure_datetime, arrival_datetime,
		                            duration_minutes, base_price, available_seats, total_seats,
		                            description, status, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		opt.TravelID,
		opt.TravelType,
		opt.OperatorName,
		opt.Source,
		opt.Destination,
		opt.SourceCode,
		opt.DestinationCode,
		opt.DepartureAt,
		opt.ArrivalAt,
		opt.DurationMin,
		opt.BasePrice,
		opt.AvailableSeats,
		opt.TotalSeats,
		opt.Description,
		opt.Status,
		opt.IsFeatured,
	).Scan(&opt.ID, &opt.CreatedAt, &opt.UpdatedAt)
}

func (r *TravelRepository) Update(ctx context.Context, opt *models.TravelOption) error {
	opt.DurationMin = int64(opt.ArrivalAt.Sub(opt.DepartureAt) / time.Minute)

	query := `
		UPDATE travel_options
		SET operator_name = $1, departure_datetime = $2, arrival_datetime = $3,
		    duration_minutes = $4, base_price = $5, description = $6,
		    status = $7, is_featured = $8, updated_at = NOW()
		WHERE id = $9`

	_, err := r.db.ExecContext(ctx, query,
		opt.OperatorName,
		opt.DepartureAt,
		opt.ArrivalAt,
		opt.DurationMin,
		opt.BasePrice,
		opt.Description,
		opt.Status,
		opt.IsFeatured,
		opt.ID,
	)

	return err
}

func (r *TravelRepository) GetByID(ctx context.Context, id int64) (*models.TravelOption, error) {
	opt := &models.TravelOption{}
	query := `SELECT ` + travelColumns + ` FROM travel_options WHERE id = $1`

	err := scanTravelOption(r.db.QueryRowContext(ctx, query, id), opt)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return opt, err
}

func (r *TravelRepository) GetByTravelID(ctx context.Context, travelID string) (*models.TravelOption, error) {
	opt := &models.TravelOption{}
	query := `SELECT ` + travelColumns + ` FROM travel_options WHERE travel_id = $1`

	err := scanTravelOption(r.db.QueryRowContext(ctx, query, travelID), opt)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return opt, err
}

// GetByIDs returns the options for the given internal ids, ordered by
// departure time. Used to hydrate Elasticsearch hits from Postgres.
func (r *TravelRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.TravelOption, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + travelColumns + ` FROM travel_options WHERE id = ANY($1) ORDER BY departure_datetime`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTravelOptions(rows)
}

// Search runs the Postgres search path: ACTIVE options with a future
// departure, narrowed by the request filters.
func (r *TravelRepository) Search(ctx context.Context, req *models.SearchTravelRequest, now time.Time) ([]models.TravelOption, error) {
	var args []interface{}
	argIndex := 1

	query := `SELECT ` + travelColumns + `
		FROM travel_options
		WHERE status = 'ACTIVE' AND departure_datetime >= $1`
	args = append(args, now)
	argIndex++

	if req.Source != "" {
		query += fmt.Sprintf(" AND (source ILIKE $%d OR source_code ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+req.Source+"%")
		argIndex++
	}

	if req.Destination != "" {
		query += fmt.Sprintf(" AND (destination ILIKE $%d OR destination_code ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+req.Destination+"%")
		argIndex++
	}

	if req.DepartureDate != "" {
		query += fmt.Sprintf(" AND DATE(departure_datetime) = $%d", argIndex)
		args = append(args, req.DepartureDate)
		argIndex++
	}

	if req.TravelType != "" {
		query += fmt.Sprintf(" AND travel_type = $%d", argIndex)
		args = append(args, req.TravelType)
		argIndex++
	}

	if req.MinPrice > 0 {
		query += fmt.Sprintf(" AND base_price >= $%d", argIndex)
		args = append(args, req.MinPrice)
		argIndex++
	}

	if req.MaxPrice > 0 {
		query += fmt.Sprintf(" AND base_price <= $%d", argIndex)
		args = append(args, req.MaxPrice)
		argIndex++
	}

	if req.MinSeats > 0 {
		query += fmt.Sprintf(" AND available_seats >= $%d", argIndex)
		args = append(args, req.MinSeats)
		argIndex++
	}

	query += " ORDER BY " + sortClause(req.SortBy)

	if req.Page > 0 && req.PageSize > 0 {
		offset := (req.Page - 1) * req.PageSize
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, req.PageSize, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTravelOptions(rows)
}

// sortClause whitelists user-supplied sort keys.
func sortClause(sortBy string) string {
	switch sortBy {
	case "price":
		return "base_price ASC"
	case "-price":
		return "base_price DESC"
	case "duration":
		return "duration_minutes ASC"
	case "-seats":
		return "available_seats DESC"
	default:
		return "departure_datetime ASC"
	}
}

// ReduceSeats atomically decrements the seat pool. The availability check and
// the decrement are a single conditional UPDATE so concurrent bookings cannot
// race past each other; zero affected rows means the inventory is exhausted.
func (r *TravelRepository) ReduceSeats(ctx context.Context, id int64, count int) error {
	query := `
		UPDATE travel_options
		SET available_seats = available_seats - $1, updated_at = NOW()
		WHERE id = $2 AND available_seats >= $1`

	res, err := r.db.ExecContext(ctx, query, count, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrSeatsUnavailable
	}
	return nil
}

// RestoreSeats atomically increments the seat pool, bounded by total_seats.
// Zero affected rows means the restore would overflow the pool, which
// indicates corrupted counters rather than a user error.
func (r *TravelRepository) RestoreSeats(ctx context.Context, id int64, count int) error {
	query := `
		UPDATE travel_options
		SET available_seats = available_seats + $1, updated_at = NOW()
		WHERE id = $2 AND available_seats + $1 <= total_seats`

	res, err := r.db.ExecContext(ctx, query, count, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrSeatLimitExceeded
	}
	return nil
}

// SearchCities returns distinct city names matching the prefix, for
// autocomplete.
func (r *TravelRepository) SearchCities(ctx context.Context, prefix string, limit int) ([]string, error) {
	query := `
		SELECT DISTINCT city FROM (
			SELECT source AS city FROM travel_options
			UNION
			SELECT destination AS city FROM travel_options
		) cities
		WHERE city ILIKE $1 || '%'
		ORDER BY city
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, prefix, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}

	return cities, rows.Err()
}

func collectTravelOptions(rows *sql.Rows) ([]models.TravelOption, error) {
	var options []models.TravelOption
	for rows.Next() {
		var opt models.TravelOption
		if err := scanTravelOption(rows, &opt); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}
