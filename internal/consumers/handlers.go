package consumers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/stan.go"

	"travelapp/internal/external"
	"travelapp/internal/models"
	"travelapp/internal/repository"
)

type Handlers struct {
	repos  *repository.Repositories
	notify *external.NotificationClient
}

func NewHandlers(repos *repository.Repositories, notify *external.NotificationClient) *Handlers {
	return &Handlers{
		repos:  repos,
		notify: notify,
	}
}

func (h *Handlers) HandleBookingCreated(m *stan.Msg) {
	var event models.BookingCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking created event", "error", err)
		return
	}

	slog.Info("Processing booking created event",
		"booking_id", event.BookingID, "travel_id", event.TravelID, "seats", event.NumberOfSeats)

	m.Ack()
}

// HandlePaymentCompleted отправляет письмо о подтверждении бронирования.
// Статус брони уже изменён сервисом оплаты, консюмер отвечает только за
// рассылку уведомлений.
func (h *Handlers) HandlePaymentCompleted(m *stan.Msg) {
	var event models.PaymentCompletedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal payment completed event", "error", err)
		return
	}

	slog.Info("Processing payment completed event",
		"booking_id", event.BookingID, "payment_ref", event.PaymentRef)

	if h.notify.Enabled() && event.ContactEmail != "" {
		ctx := context.Background()
		if err := h.notify.SendBookingConfirmation(ctx, event.ContactEmail, event.BookingID); err != nil {
			slog.Error("Failed to send confirmation notification",
				"booking_id", event.BookingID, "error", err)
			// Leave unacked so the message is redelivered
			return
		}
	}

	m.Ack()
}

func (h *Handlers) HandlePaymentFailed(m *stan.Msg) {
	var event models.PaymentFailedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal payment failed event", "error", err)
		return
	}

	slog.Warn("Payment failed", "booking_id", event.BookingID, "reason", event.Reason)

	m.Ack()
}

func (h *Handlers) HandleBookingCancelled(m *stan.Msg) {
	var event models.BookingCancelledEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking cancelled event", "error", err)
		return
	}

	slog.Info("Processing booking cancelled event",
		"booking_id", event.BookingID, "refund_amount", event.RefundAmount)

	m.Ack()
}
