package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"travelapp/internal/apperrors"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{"payment declined", apperrors.ErrPaymentDeclined, http.StatusPaymentRequired},
		{"seats unavailable", apperrors.ErrSeatsUnavailable, http.StatusConflict},
		{"seat limit exceeded", apperrors.ErrSeatLimitExceeded, http.StatusConflict},
		{"invalid status", apperrors.ErrInvalidStatus, http.StatusConflict},
		{"not cancellable", apperrors.ErrNotCancellable, http.StatusConflict},
		{"travel unavailable", apperrors.ErrTravelUnavailable, http.StatusConflict},
		{"passenger count", apperrors.ErrPassengerCount, http.StatusBadRequest},
		{"unknown error", errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRespondErrorWrapped(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	respondError(c, errors.Join(errors.New("context"), apperrors.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
