package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"travelapp/internal/middleware"
	"travelapp/internal/models"
)

// Admin handlers

// CreateTravelOption - POST /api/admin/travel
// Создать вариант поездки
func (h *Handlers) CreateTravelOption(c *gin.Context) {
	var req models.CreateTravelOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opt, err := h.services.Travel.CreateOption(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Failed to create travel option", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, opt)
}

// UpdateTravelOption - PATCH /api/admin/travel/:travel_id
// Изменить вариант поездки
func (h *Handlers) UpdateTravelOption(c *gin.Context) {
	var req models.UpdateTravelOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opt, err := h.services.Travel.UpdateOption(c.Request.Context(), c.Param("travel_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, opt)
}

// BulkConfirmBookings - POST /api/admin/bookings/confirm
// Подтвердить пачку бронирований
func (h *Handlers) BulkConfirmBookings(c *gin.Context) {
	adminID, _ := middleware.UserIDFromContext(c.Request.Context())

	var req models.BulkBookingActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.services.Booking.BulkConfirm(c.Request.Context(), adminID, &req)
	if err != nil {
		slog.Error("Failed to bulk-confirm bookings", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// BulkCancelBookings - POST /api/admin/bookings/cancel
// Отменить пачку бронирований
func (h *Handlers) BulkCancelBookings(c *gin.Context) {
	adminID, _ := middleware.UserIDFromContext(c.Request.Context())

	var req models.BulkBookingActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.services.Booking.BulkCancel(c.Request.Context(), adminID, &req)
	if err != nil {
		slog.Error("Failed to bulk-cancel bookings", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CompleteDepartedBookings - POST /api/admin/bookings/complete-departed
// Перевести в COMPLETED подтверждённые брони с прошедшим отправлением
func (h *Handlers) CompleteDepartedBookings(c *gin.Context) {
	count, err := h.services.Booking.CompleteDeparted(c.Request.Context(), time.Now())
	if err != nil {
		slog.Error("Failed to complete departed bookings", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BulkBookingActionResponse{Updated: count})
}

// GetAnalytics - GET /api/admin/analytics
// Сводка для дашборда
func (h *Handlers) GetAnalytics(c *gin.Context) {
	resp, err := h.services.Travel.Analytics(c.Request.Context())
	if err != nil {
		slog.Error("Failed to build analytics", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
