package apperrors

import "errors"

// Error kinds surfaced by services. Handlers map these to HTTP statuses;
// everything else is reported as an internal error.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrTravelUnavailable = errors.New("travel option is not available for booking")
	ErrSeatsUnavailable  = errors.New("not enough available seats")
	ErrSeatLimitExceeded = errors.New("seat restore would exceed total seats")
	ErrInvalidStatus     = errors.New("operation not allowed in current booking status")
	ErrNotCancellable    = errors.New("booking can no longer be cancelled")
	ErrPaymentDeclined   = errors.New("payment was declined")
	ErrPassengerCount    = errors.New("passenger count exceeds booked seats")
	ErrUnauthorized      = errors.New("user is not authorized")
	ErrForbidden         = errors.New("operation is forbidden for user")
)
