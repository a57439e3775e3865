package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelapp/internal/models"
)

// Travel catalog handlers

// SearchTravel - GET /api/travel
// Поиск вариантов поездок по фильтрам
func (h *Handlers) SearchTravel(c *gin.Context) {
	var req models.SearchTravelRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	options, err := h.services.Travel.Search(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Failed to search travel options", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, options)
}

// GetTravel - GET /api/travel/:travel_id
// Получить вариант поездки по публичному ID
func (h *Handlers) GetTravel(c *gin.Context) {
	opt, err := h.services.Travel.Get(c.Request.Context(), c.Param("travel_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, opt)
}

// GetCities - GET /api/cities
// Автодополнение городов по префиксу
func (h *Handlers) GetCities(c *gin.Context) {
	prefix := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	cities, err := h.services.Travel.Autocomplete(c.Request.Context(), prefix, limit)
	if err != nil {
		slog.Error("Failed to autocomplete cities", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CitiesResponse{Cities: cities})
}

// GetPopularRoutes - GET /api/routes/popular
// Самые востребованные маршруты
func (h *Handlers) GetPopularRoutes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	routes, err := h.services.Travel.PopularRoutes(c.Request.Context(), limit)
	if err != nil {
		slog.Error("Failed to get popular routes", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, routes)
}
