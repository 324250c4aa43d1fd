//go:build unit

package middleware_test

import (
	"net/http"
	"regexp"
	"testing"

	"travel-kernel/internal/handler/middleware"
	"travel-kernel/internal/pkg/config"
	"travel-kernel/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := middleware.NewLogger(config.LogConfig{Level: "error", TimeZone: "UTC", TimeFormat: "2006-01-02T15:04:05Z07:00"})

	r := gin.New()
	r.Use(logger.RequestLogger())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})

	t.Run("generates a request id", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/ping", nil, "")
		id := rec.Header().Get("X-Request-ID")
		assert.Regexp(t, regexp.MustCompile(`^\d{14}-[0-9a-f]{8}$`), id)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("propagates the caller's request id", func(t *testing.T) {
		rec := httptest.PerformRequestWithHeaders(t, r, http.MethodGet, "/ping", nil, map[string]string{"X-Request-ID": "trace-42"})
		assert.Equal(t, "trace-42", rec.Header().Get("X-Request-ID"))
		assert.Equal(t, "trace-42", rec.Body.String())
	})
}
