package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"travelapp/internal/logger"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	runRequest := func(t *testing.T, req *http.Request) (string, *httptest.ResponseRecorder) {
		t.Helper()
		router := gin.New()
		router.Use(RequestID())
		var seen string
		router.GET("/", func(c *gin.Context) {
			seen, _ = logger.RequestIDFromContext(c.Request.Context())
			c.Status(http.StatusOK)
		})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return seen, rec
	}

	t.Run("generates id when header is absent", func(t *testing.T) {
		seen, rec := runRequest(t, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	})

	t.Run("reuses inbound header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-42")

		seen, rec := runRequest(t, req)

		assert.Equal(t, "req-42", seen)
		assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	})
}

func TestUserIDContext(t *testing.T) {
	ctx := ContextWithUserID(context.Background(), 17)

	userID, ok := UserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(17), userID)

	_, ok = UserIDFromContext(context.Background())
	assert.False(t, ok)
}
