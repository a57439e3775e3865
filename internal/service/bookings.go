package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"travelapp/internal/apperrors"
	"travelapp/internal/external"
	"travelapp/internal/messaging"
	"travelapp/internal/metrics"
	"travelapp/internal/models"
	"travelapp/internal/repository"
)

// BookingService инкапсулирует жизненный цикл бронирования:
// PENDING -> CONFIRMED -> CANCELLED/COMPLETED. Места списываются атомарно
// до создания брони и возвращаются при отмене.
type BookingService struct {
	bookingRepo   *repository.BookingRepository
	travelRepo    *repository.TravelRepository
	passengerRepo *repository.PassengerRepository
	historyRepo   *repository.HistoryRepository
	routeRepo     *repository.RouteRepository
	nats          *messaging.NATSClient
	payment       *external.PaymentClient
	notify        *external.NotificationClient
}

func NewBookingService(repos *repository.Repositories, nats *messaging.NATSClient, payment *external.PaymentClient, notify *external.NotificationClient) *BookingService {
	return &BookingService{
		bookingRepo:   repos.Bookings,
		travelRepo:    repos.Travel,
		passengerRepo: repos.Passengers,
		historyRepo:   repos.History,
		routeRepo:     repos.Routes,
		nats:          nats,
		payment:       payment,
		notify:        notify,
	}
}

// Create создает бронирование в статусе PENDING. Места уменьшаются до вставки
// брони; если вставка не удалась, списание компенсируется возвратом мест.
func (s *BookingService) Create(ctx context.Context, userID int64, req *models.CreateBookingRequest) (*models.Booking, error) {
	opt, err := s.travelRepo.GetByTravelID(ctx, req.TravelID)
	if err != nil {
		return nil, err
	}
	if opt == nil {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now()
	if !opt.IsBookable(now) {
		return nil, apperrors.ErrTravelUnavailable
	}

	if err := s.travelRepo.ReduceSeats(ctx, opt.ID, req.NumberOfSeats); err != nil {
		if err == apperrors.ErrSeatsUnavailable {
			metrics.IncSeatConflict()
		}
		return nil, err
	}

	booking := &models.Booking{
		UserID:           userID,
		TravelOptionID:   opt.ID,
		NumberOfSeats:    req.NumberOfSeats,
		TotalPrice:       opt.BasePrice * int64(req.NumberOfSeats),
		Status:           models.BookingStatusPending,
		PaymentStatus:    models.PaymentStatusPending,
		ContactEmail:     req.ContactEmail,
		ContactPhone:     req.ContactPhone,
		BookingReference: uuid.New().String(),
	}
	if req.SpecialRequests != "" {
		booking.SpecialRequests = &req.SpecialRequests
	}

	var createErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		booking.BookingID = models.GenerateBookingID()
		createErr = s.bookingRepo.Create(ctx, booking)
		if createErr == nil {
			break
		}
		if !repository.IsUniqueViolation(createErr) {
			break
		}
	}
	if createErr != nil {
		if restoreErr := s.travelRepo.RestoreSeats(ctx, opt.ID, req.NumberOfSeats); restoreErr != nil {
			slog.Error("Failed to restore seats after booking create failure",
				"travel_id", opt.TravelID, "seats", req.NumberOfSeats, "error", restoreErr)
		}
		return nil, createErr
	}

	booking.TravelOption = opt

	s.appendHistory(ctx, booking.ID, nil, models.BookingStatusPending, &userID, "booking created")

	s.publish(models.EventBookingCreated, models.BookingCreatedEvent{
		BookingID:     booking.BookingID,
		TravelID:      opt.TravelID,
		UserID:        userID,
		NumberOfSeats: booking.NumberOfSeats,
		TotalPrice:    booking.TotalPrice,
		Timestamp:     now,
	})
	metrics.IncBookingCreated(opt.TravelType)

	slog.Info("Created booking", "booking_id", booking.BookingID,
		"travel_id", opt.TravelID, "seats", booking.NumberOfSeats, "total_price", booking.TotalPrice)
	return booking, nil
}

// Pay проводит оплату бронирования. Успех переводит бронь в CONFIRMED;
// отказ фиксируется как payment_status=FAILED, статус брони не меняется
// и бронь можно оплатить повторно.
func (s *BookingService) Pay(ctx context.Context, userID int64, bookingID string) (*models.PayBookingResponse, error) {
	booking, err := s.getOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, apperrors.ErrInvalidStatus
	}

	result, err := s.payment.Charge(ctx, booking.BookingID, booking.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("payment processing failed: %w", err)
	}

	if !result.Approved {
		booking.PaymentStatus = models.PaymentStatusFailed
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			return nil, err
		}
		s.publish(models.EventPaymentFailed, models.PaymentFailedEvent{
			BookingID: booking.BookingID,
			Reason:    "declined by payment gateway",
			Timestamp: result.ProcessedAt,
		})
		metrics.IncPaymentProcessed("declined")
		return nil, apperrors.ErrPaymentDeclined
	}

	booking.Confirm(result.ProcessedAt)
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	from := models.BookingStatusPending
	s.appendHistory(ctx, booking.ID, &from, models.BookingStatusConfirmed, &userID, "payment completed")

	// Booking popularity counts paid bookings, not reservations.
	if opt, err := s.travelRepo.GetByID(ctx, booking.TravelOptionID); err == nil && opt != nil {
		if err := s.routeRepo.IncrementBooking(ctx, opt.Source, opt.Destination); err != nil {
			slog.Warn("Failed to increment route booking count",
				"source", opt.Source, "destination", opt.Destination, "error", err)
		}
	}

	s.publish(models.EventPaymentCompleted, models.PaymentCompletedEvent{
		BookingID:    booking.BookingID,
		PaymentRef:   result.PaymentRef,
		TotalPrice:   booking.TotalPrice,
		ContactEmail: booking.ContactEmail,
		Timestamp:    result.ProcessedAt,
	})
	metrics.IncPaymentProcessed("approved")
	metrics.IncBookingConfirmed()

	slog.Info("Confirmed booking", "booking_id", booking.BookingID, "payment_ref", result.PaymentRef)
	return &models.PayBookingResponse{
		BookingID:     booking.BookingID,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		PaymentRef:    result.PaymentRef,
	}, nil
}

// Cancel отменяет бронирование, возвращает места в пул и считает сумму
// возврата по графику 90/75/50/0 процентов.
func (s *BookingService) Cancel(ctx context.Context, userID int64, req *models.CancelBookingRequest) (*models.CancelBookingResponse, error) {
	booking, err := s.getOwned(ctx, userID, req.BookingID)
	if err != nil {
		return nil, err
	}

	opt, err := s.travelRepo.GetByID(ctx, booking.TravelOptionID)
	if err != nil {
		return nil, err
	}
	if opt == nil {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now()
	if !booking.CanBeCancelled(now, opt.DepartureAt) {
		return nil, apperrors.ErrNotCancellable
	}

	// Cancelling a PENDING booking owes no refund since no payment happened.
	refund := int64(0)
	from := booking.Status
	if booking.Status == models.BookingStatusConfirmed {
		refund = booking.RefundAmount(now, opt.DepartureAt)
	}

	if !booking.Cancel(now) {
		return nil, apperrors.ErrNotCancellable
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.travelRepo.RestoreSeats(ctx, booking.TravelOptionID, booking.NumberOfSeats); err != nil {
		slog.Error("Failed to restore seats on cancellation",
			"booking_id", booking.BookingID, "seats", booking.NumberOfSeats, "error", err)
	}

	s.appendHistory(ctx, booking.ID, &from, models.BookingStatusCancelled, &userID, req.Reason)

	s.publish(models.EventBookingCancelled, models.BookingCancelledEvent{
		BookingID:    booking.BookingID,
		TravelID:     opt.TravelID,
		Reason:       req.Reason,
		RefundAmount: refund,
		Timestamp:    now,
	})
	metrics.IncBookingCancelled()

	if s.notify.Enabled() {
		if err := s.notify.SendBookingCancellation(ctx, booking.ContactEmail, booking.BookingID, refund); err != nil {
			slog.Warn("Failed to send cancellation notification", "booking_id", booking.BookingID, "error", err)
		}
	}

	slog.Info("Cancelled booking", "booking_id", booking.BookingID, "refund_amount", refund)
	return &models.CancelBookingResponse{
		BookingID:    booking.BookingID,
		Status:       booking.Status,
		RefundAmount: refund,
	}, nil
}

// Get возвращает бронирование пользователя вместе с вариантом поездки
func (s *BookingService) Get(ctx context.Context, userID int64, bookingID string) (*models.Booking, error) {
	booking, err := s.getOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	opt, err := s.travelRepo.GetByID(ctx, booking.TravelOptionID)
	if err != nil {
		return nil, err
	}
	booking.TravelOption = opt
	return booking, nil
}

// List возвращает бронирования пользователя, опционально по статусу
func (s *BookingService) List(ctx context.Context, userID int64, status string) ([]models.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID, status)
}

// SavePassengers заменяет список пассажиров бронирования. Разрешено только
// в статусе PENDING и не больше числа забронированных мест.
func (s *BookingService) SavePassengers(ctx context.Context, userID int64, bookingID string, req *models.SavePassengersRequest) error {
	booking, err := s.getOwned(ctx, userID, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != models.BookingStatusPending {
		return apperrors.ErrInvalidStatus
	}
	if len(req.Passengers) > booking.NumberOfSeats {
		return apperrors.ErrPassengerCount
	}

	passengers := make([]models.PassengerDetail, len(req.Passengers))
	for i, p := range req.Passengers {
		dob, err := time.Parse("2006-01-02", p.DateOfBirth)
		if err != nil {
			return fmt.Errorf("invalid date_of_birth for passenger %d: %w", i+1, err)
		}
		passengers[i] = models.PassengerDetail{
			BookingID:         booking.ID,
			Title:             p.Title,
			FirstName:         p.FirstName,
			LastName:          p.LastName,
			DateOfBirth:       dob,
			Gender:            p.Gender,
			IDType:            p.IDType,
			IDNumber:          p.IDNumber,
			SeatPreference:    p.SeatPreference,
			MealPreference:    p.MealPreference,
			SpecialAssistance: p.SpecialAssistance,
		}
	}

	return s.passengerRepo.ReplaceForBooking(ctx, booking.ID, passengers)
}

// ListPassengers возвращает пассажиров бронирования
func (s *BookingService) ListPassengers(ctx context.Context, userID int64, bookingID string) ([]models.PassengerDetail, error) {
	booking, err := s.getOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	return s.passengerRepo.ListByBooking(ctx, booking.ID)
}

// History возвращает журнал смен статуса бронирования
func (s *BookingService) History(ctx context.Context, userID int64, bookingID string) ([]models.BookingHistory, error) {
	booking, err := s.getOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	return s.historyRepo.ListByBooking(ctx, booking.ID)
}

// BulkConfirm подтверждает пачку бронирований от имени админа. Ошибочные
// или неподходящие по статусу брони пропускаются.
func (s *BookingService) BulkConfirm(ctx context.Context, adminID int64, req *models.BulkBookingActionRequest) (*models.BulkBookingActionResponse, error) {
	updated := 0
	now := time.Now()
	for _, bookingID := range req.BookingIDs {
		booking, err := s.bookingRepo.GetByBookingID(ctx, bookingID)
		if err != nil || booking == nil {
			continue
		}
		if !booking.Confirm(now) {
			continue
		}
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			slog.Warn("Failed to bulk-confirm booking", "booking_id", bookingID, "error", err)
			continue
		}
		from := models.BookingStatusPending
		s.appendHistory(ctx, booking.ID, &from, models.BookingStatusConfirmed, &adminID, req.Reason)
		metrics.IncBookingConfirmed()
		updated++
	}
	return &models.BulkBookingActionResponse{Updated: updated}, nil
}

// BulkCancel отменяет пачку бронирований от имени админа с возвратом мест.
// Действует то же правило отмены, что и для пользователя: брони с уже
// состоявшимся или слишком близким отправлением пропускаются.
func (s *BookingService) BulkCancel(ctx context.Context, adminID int64, req *models.BulkBookingActionRequest) (*models.BulkBookingActionResponse, error) {
	updated := 0
	now := time.Now()
	for _, bookingID := range req.BookingIDs {
		booking, err := s.bookingRepo.GetByBookingID(ctx, bookingID)
		if err != nil || booking == nil {
			continue
		}
		opt, err := s.travelRepo.GetByID(ctx, booking.TravelOptionID)
		if err != nil || opt == nil {
			continue
		}
		if !booking.CanBeCancelled(now, opt.DepartureAt) {
			continue
		}
		from := booking.Status
		if !booking.Cancel(now) {
			continue
		}
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			slog.Warn("Failed to bulk-cancel booking", "booking_id", bookingID, "error", err)
			continue
		}
		if err := s.travelRepo.RestoreSeats(ctx, booking.TravelOptionID, booking.NumberOfSeats); err != nil {
			slog.Error("Failed to restore seats on bulk cancellation",
				"booking_id", booking.BookingID, "error", err)
		}
		s.appendHistory(ctx, booking.ID, &from, models.BookingStatusCancelled, &adminID, req.Reason)
		metrics.IncBookingCancelled()
		updated++
	}
	return &models.BulkBookingActionResponse{Updated: updated}, nil
}

// CompleteDeparted переводит в COMPLETED подтверждённые брони, чья поездка
// уже состоялась. Вызывается фоновым заданием.
func (s *BookingService) CompleteDeparted(ctx context.Context, now time.Time) (int, error) {
	bookings, err := s.bookingRepo.ListDepartedConfirmed(ctx, now)
	if err != nil {
		return 0, err
	}

	completed := 0
	for i := range bookings {
		booking := &bookings[i]
		if !booking.Complete() {
			continue
		}
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			slog.Warn("Failed to complete booking", "booking_id", booking.BookingID, "error", err)
			continue
		}
		from := models.BookingStatusConfirmed
		s.appendHistory(ctx, booking.ID, &from, models.BookingStatusCompleted, nil, "travel departed")
		completed++
	}

	if completed > 0 {
		slog.Info("Completed departed bookings", "count", completed)
	}
	return completed, nil
}

// getOwned загружает бронирование и проверяет принадлежность пользователю
func (s *BookingService) getOwned(ctx context.Context, userID int64, bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperrors.ErrNotFound
	}
	if booking.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return booking, nil
}

func (s *BookingService) appendHistory(ctx context.Context, bookingID int64, from *string, to string, changedBy *int64, reason string) {
	entry := &models.BookingHistory{
		BookingID:  bookingID,
		StatusFrom: from,
		StatusTo:   to,
		ChangedBy:  changedBy,
	}
	if reason != "" {
		entry.Reason = &reason
	}
	if err := s.historyRepo.Append(ctx, entry); err != nil {
		slog.Warn("Failed to append booking history", "booking_id", bookingID, "error", err)
	}
}

func (s *BookingService) publish(subject string, event interface{}) {
	if err := s.nats.Publish(subject, event); err != nil {
		slog.Warn("Failed to publish event", "subject", subject, "error", err)
	}
}
