package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createUsersTable,
		createTravelOptionsTable,
		createBookingsTable,
		createPassengerDetailsTable,
		createBookingHistoryTable,
		createPopularRoutesTable,
		createBookingIndexes,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    user_id SERIAL PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(64) NOT NULL,
    first_name VARCHAR(100) NOT NULL,
    surname VARCHAR(100) NOT NULL,
    phone VARCHAR(15),
    registered_at TIMESTAMP NOT NULL DEFAULT NOW(),
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE
);`

const createTravelOptionsTable = `
CREATE TABLE IF NOT EXISTS travel_options (
    id SERIAL PRIMARY KEY,
    travel_id VARCHAR(20) UNIQUE NOT NULL,
    travel_type VARCHAR(10) NOT NULL,
    operator_name VARCHAR(100) NOT NULL,
    source VARCHAR(100) NOT NULL,
    destination VARCHAR(100) NOT NULL,
    source_code VARCHAR(10),
    destination_code VARCHAR(10),
    departure_datetime TIMESTAMP NOT NULL,
    arrival_datetime TIMESTAMP NOT NULL,
    duration_minutes BIGINT NOT NULL DEFAULT 0,
    base_price BIGINT NOT NULL,
    available_seats INTEGER NOT NULL,
    total_seats INTEGER NOT NULL,
    description TEXT,
    status VARCHAR(10) NOT NULL DEFAULT 'ACTIVE',
    is_featured BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (travel_type IN ('FLIGHT', 'TRAIN', 'BUS')),
    CHECK (status IN ('ACTIVE', 'INACTIVE', 'CANCELLED')),
    CHECK (base_price >= 0),
    CHECK (available_seats >= 0 AND available_seats <= total_seats)
);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    id SERIAL PRIMARY KEY,
    booking_id VARCHAR(20) UNIQUE NOT NULL,
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    travel_option_id INTEGER NOT NULL REFERENCES travel_options(id) ON DELETE CASCADE,
    number_of_seats INTEGER NOT NULL,
    total_price BIGINT NOT NULL,
    status VARCHAR(10) NOT NULL DEFAULT 'PENDING',
    payment_status VARCHAR(10) NOT NULL DEFAULT 'PENDING',
    booking_date TIMESTAMP NOT NULL DEFAULT NOW(),
    confirmation_date TIMESTAMP,
    cancellation_date TIMESTAMP,
    special_requests TEXT,
    contact_email VARCHAR(255) NOT NULL,
    contact_phone VARCHAR(15) NOT NULL,
    booking_reference UUID UNIQUE NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (number_of_seats >= 1),
    CHECK (total_price >= 0),
    CHECK (status IN ('PENDING', 'CONFIRMED', 'CANCELLED', 'COMPLETED', 'REFUNDED')),
    CHECK (payment_status IN ('PENDING', 'COMPLETED', 'FAILED', 'REFUNDED'))
);`

const createPassengerDetailsTable = `
CREATE TABLE IF NOT EXISTS passenger_details (
    id SERIAL PRIMARY KEY,
    booking_id INTEGER NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    title VARCHAR(3) NOT NULL,
    first_name VARCHAR(50) NOT NULL,
    last_name VARCHAR(50) NOT NULL,
    date_of_birth DATE NOT NULL,
    gender VARCHAR(1) NOT NULL,
    id_type VARCHAR(20) NOT NULL DEFAULT 'Passport',
    id_number VARCHAR(50) NOT NULL,
    seat_preference VARCHAR(20),
    meal_preference VARCHAR(20),
    special_assistance TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (title IN ('MR', 'MRS', 'MS', 'DR')),
    CHECK (gender IN ('M', 'F', 'O'))
);`

const createBookingHistoryTable = `
CREATE TABLE IF NOT EXISTS booking_history (
    id SERIAL PRIMARY KEY,
    booking_id INTEGER NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    status_from VARCHAR(10),
    status_to VARCHAR(10) NOT NULL,
    changed_by INTEGER REFERENCES users(user_id) ON DELETE SET NULL,
    reason TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createPopularRoutesTable = `
CREATE TABLE IF NOT EXISTS popular_routes (
    id SERIAL PRIMARY KEY,
    source VARCHAR(100) NOT NULL,
    destination VARCHAR(100) NOT NULL,
    search_count BIGINT NOT NULL DEFAULT 0,
    booking_count BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    UNIQUE (source, destination)
);`

const createBookingIndexes = `
CREATE INDEX IF NOT EXISTS travel_options_route_idx
ON travel_options (travel_type, source, destination);
CREATE INDEX IF NOT EXISTS travel_options_departure_idx
ON travel_options (departure_datetime);
CREATE INDEX IF NOT EXISTS bookings_user_idx
ON bookings (user_id, booking_date DESC);
CREATE INDEX IF NOT EXISTS bookings_status_idx
ON bookings (status);
CREATE INDEX IF NOT EXISTS booking_history_booking_idx
ON booking_history (booking_id, created_at DESC);`
