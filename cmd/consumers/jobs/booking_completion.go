package jobs

import (
	"context"
	"log/slog"
	"time"

	"travelapp/internal/service"
)

const checkInterval = 1 * time.Minute

// BookingCompletionJob periodically promotes confirmed bookings whose
// departure time has passed to COMPLETED.
type BookingCompletionJob struct {
	bookings *service.BookingService
	ticker   *time.Ticker
	done     chan bool
}

func NewBookingCompletionJob(bookings *service.BookingService) *BookingCompletionJob {
	return &BookingCompletionJob{
		bookings: bookings,
		done:     make(chan bool),
	}
}

// Start begins the background job that sweeps departed bookings.
func (j *BookingCompletionJob) Start(ctx context.Context) {
	slog.Info("Starting booking completion job", "check_interval", checkInterval.String())

	j.ticker = time.NewTicker(checkInterval)

	// Run initial sweep immediately
	go j.sweep(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				go j.sweep(ctx)
			case <-j.done:
				slog.Info("Booking completion job stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the background job.
func (j *BookingCompletionJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}

func (j *BookingCompletionJob) sweep(ctx context.Context) {
	count, err := j.bookings.CompleteDeparted(ctx, time.Now())
	if err != nil {
		slog.Error("Failed to complete departed bookings", "error", err)
		return
	}
	if count > 0 {
		slog.Info("Promoted departed bookings to COMPLETED", "count", count)
	}
}
