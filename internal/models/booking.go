package models

import "time"

// CancellationWindow is how long before departure a booking stops being
// cancellable. This is the single authoritative rule; nothing else in the
// codebase re-checks the window.
const CancellationWindow = 24 * time.Hour

// Refund percentages by whole days remaining until departure.
const (
	refundPctWeekAhead = 90
	refundPctThreeDays = 75
	refundPctOneDay    = 50
)

// Confirm moves a PENDING booking to CONFIRMED and marks the payment
// completed. The confirmation date is set only the first time the status is
// reached. Returns false without mutating anything when the booking is not
// in PENDING.
func (b *Booking) Confirm(now time.Time) bool {
	if b.Status != BookingStatusPending {
		return false
	}

	b.Status = BookingStatusConfirmed
	b.PaymentStatus = PaymentStatusCompleted
	if b.ConfirmationDate == nil {
		ts := now
		b.ConfirmationDate = &ts
	}
	return true
}

// Cancel moves a PENDING or CONFIRMED booking to CANCELLED. Cancelling a
// PENDING booking abandons it before payment; no refund is owed but the
// seats still return to the pool, which is the caller's responsibility
// either way. Returns false without mutating anything from terminal states.
func (b *Booking) Cancel(now time.Time) bool {
	if b.Status != BookingStatusPending && b.Status != BookingStatusConfirmed {
		return false
	}

	b.Status = BookingStatusCancelled
	if b.CancellationDate == nil {
		ts := now
		b.CancellationDate = &ts
	}
	return true
}

// Complete moves a CONFIRMED booking to COMPLETED after departure has
// passed. Returns false when the booking is not in CONFIRMED.
func (b *Booking) Complete() bool {
	if b.Status != BookingStatusConfirmed {
		return false
	}
	b.Status = BookingStatusCompleted
	return true
}

// CanBeCancelled reports whether cancellation is still allowed: terminal
// bookings cannot be cancelled, and cancellation closes CancellationWindow
// before departure.
func (b *Booking) CanBeCancelled(now, departure time.Time) bool {
	if b.Status == BookingStatusCancelled || b.Status == BookingStatusCompleted {
		return false
	}
	return now.Before(departure.Add(-CancellationWindow))
}

// DaysUntilTravel returns the floor calendar-date difference between now and
// departure, and 0 once departure has passed.
func DaysUntilTravel(now, departure time.Time) int {
	if !departure.After(now) {
		return 0
	}

	now = now.UTC()
	departure = departure.UTC()
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	depDate := time.Date(departure.Year(), departure.Month(), departure.Day(), 0, 0, 0, 0, time.UTC)

	days := int(depDate.Sub(nowDate) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}

// RefundAmount computes the refund owed on cancellation as a function of the
// total price and whole days remaining until departure:
// >=7 days 90%, >=3 days 75%, >=1 day 50%, otherwise nothing.
// Returns 0 when the booking is no longer cancellable.
func (b *Booking) RefundAmount(now, departure time.Time) int64 {
	if !b.CanBeCancelled(now, departure) {
		return 0
	}

	switch days := DaysUntilTravel(now, departure); {
	case days >= 7:
		return b.TotalPrice * refundPctWeekAhead / 100
	case days >= 3:
		return b.TotalPrice * refundPctThreeDays / 100
	case days >= 1:
		return b.TotalPrice * refundPctOneDay / 100
	default:
		return 0
	}
}
