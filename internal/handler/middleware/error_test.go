//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"travel-kernel/internal/handler/httperr"
	"travel-kernel/internal/handler/middleware"
	"travel-kernel/internal/pkg/errs"
	"travel-kernel/tests/common/helper"
	"travel-kernel/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newErrorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CustomRecovery(), middleware.ErrorHandler())
	return r
}

func TestCustomRecovery(t *testing.T) {
	r := newErrorRouter()
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	rec := httptest.PerformRequest(t, r, http.MethodGet, "/panic", nil, "")
	env := helper.AssertEnvelope(t, rec, http.StatusInternalServerError, httperr.CodeInternal)
	assert.NotContains(t, env.Error.Message, "boom")
}

func TestErrorHandler(t *testing.T) {
	t.Run("public error without body is rendered", func(t *testing.T) {
		r := newErrorRouter()
		r.GET("/deferred", func(c *gin.Context) {
			_ = c.Error(gin.Error{
				Err:  errs.New("gone"),
				Type: gin.ErrorTypePublic,
				Meta: httperr.Response{
					Status: http.StatusNotFound,
					Error:  httperr.Body{Code: httperr.CodeNotFound, Message: "gone"},
				},
			})
			c.Abort()
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/deferred", nil, "")
		env := helper.AssertEnvelope(t, rec, http.StatusNotFound, httperr.CodeNotFound)
		assert.Equal(t, "gone", env.Error.Message)
	})

	t.Run("private error without body is a 500", func(t *testing.T) {
		r := newErrorRouter()
		r.GET("/private", func(c *gin.Context) {
			_ = c.Error(errs.New("driver exploded"))
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/private", nil, "")
		env := helper.AssertEnvelope(t, rec, http.StatusInternalServerError, httperr.CodeInternal)
		assert.NotContains(t, env.Error.Message, "driver")
	})

	t.Run("written responses are left alone", func(t *testing.T) {
		r := newErrorRouter()
		r.GET("/ok", func(c *gin.Context) {
			_ = c.Error(errs.New("logged only"))
			c.JSON(http.StatusAccepted, gin.H{"queued": true})
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/ok", nil, "")
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.JSONEq(t, `{"queued":true}`, rec.Body.String())
	})

	t.Run("server errors never leak their message", func(t *testing.T) {
		r := newErrorRouter()
		r.GET("/db", func(c *gin.Context) {
			httperr.Abort(c, errs.Mark(errs.New("pq: deadlock detected"), errs.ErrTransaction))
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/db", nil, "")
		env := helper.AssertEnvelope(t, rec, http.StatusInternalServerError, httperr.CodeTransaction)
		assert.Equal(t, "Internal Server Error", env.Error.Message)
	})
}
