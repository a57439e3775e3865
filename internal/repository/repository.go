package repository

import (
	"errors"

	"github.com/lib/pq"

	"travelapp/internal/database"
)

// Repositories собирает все репозитории приложения
type Repositories struct {
	Travel     *TravelRepository
	Bookings   *BookingRepository
	Passengers *PassengerRepository
	History    *HistoryRepository
	Routes     *RouteRepository
	Users      *UserRepository
	Analytics  *AnalyticsRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Travel:     NewTravelRepository(db),
		Bookings:   NewBookingRepository(db),
		Passengers: NewPassengerRepository(db),
		History:    NewHistoryRepository(db),
		Routes:     NewRouteRepository(db),
		Users:      NewUserRepository(db),
		Analytics:  NewAnalyticsRepository(db),
	}
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
