package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp/internal/models"
)

// Bookings handlers

// CreateBooking - POST /api/bookings
// Создать бронирование
func (h *Handlers) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.services.Booking.Create(c.Request.Context(), userID, &req)
	if err != nil {
		slog.Error("Failed to create booking", "travel_id", req.TravelID, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.CreateBookingResponse{
		BookingID:        booking.BookingID,
		BookingReference: booking.BookingReference,
		TotalPrice:       booking.TotalPrice,
		Status:           booking.Status,
	})
}

// ListBookings - GET /api/bookings
// Список бронирований пользователя, опционально по статусу
func (h *Handlers) ListBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bookings, err := h.services.Booking.List(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		slog.Error("Failed to list bookings", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBooking - GET /api/bookings/:booking_id
// Получить бронирование с вариантом поездки
func (h *Handlers) GetBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	booking, err := h.services.Booking.Get(c.Request.Context(), userID, c.Param("booking_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// PayBooking - POST /api/bookings/:booking_id/pay
// Оплатить бронирование
func (h *Handlers) PayBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.services.Booking.Pay(c.Request.Context(), userID, c.Param("booking_id"))
	if err != nil {
		slog.Error("Failed to pay booking", "booking_id", c.Param("booking_id"), "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CancelBooking - PATCH /api/bookings/cancel
// Отменить бронирование
func (h *Handlers) CancelBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.services.Booking.Cancel(c.Request.Context(), userID, &req)
	if err != nil {
		slog.Error("Failed to cancel booking", "booking_id", req.BookingID, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SavePassengers - PUT /api/bookings/:booking_id/passengers
// Сохранить список пассажиров бронирования
func (h *Handlers) SavePassengers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.SavePassengersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Booking.SavePassengers(c.Request.Context(), userID, c.Param("booking_id"), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": len(req.Passengers)})
}

// ListPassengers - GET /api/bookings/:booking_id/passengers
// Пассажиры бронирования
func (h *Handlers) ListPassengers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	passengers, err := h.services.Booking.ListPassengers(c.Request.Context(), userID, c.Param("booking_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, passengers)
}

// GetBookingHistory - GET /api/bookings/:booking_id/history
// Журнал смен статуса бронирования
func (h *Handlers) GetBookingHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	history, err := h.services.Booking.History(c.Request.Context(), userID, c.Param("booking_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
