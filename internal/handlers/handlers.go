package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp/internal/apperrors"
	"travelapp/internal/middleware"
	"travelapp/internal/service"
)

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{services: services}
}

// currentUserID достаёт ID аутентифицированного пользователя из контекста
func currentUserID(c *gin.Context) (int64, bool) {
	return middleware.UserIDFromContext(c.Request.Context())
}

// respondError подбирает HTTP статус по виду доменной ошибки
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, apperrors.ErrPaymentDeclined):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrSeatsUnavailable),
		errors.Is(err, apperrors.ErrSeatLimitExceeded),
		errors.Is(err, apperrors.ErrInvalidStatus),
		errors.Is(err, apperrors.ErrNotCancellable),
		errors.Is(err, apperrors.ErrTravelUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPassengerCount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
