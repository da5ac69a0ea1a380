//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"fleet-rental/internal/handler/middleware"
	"fleet-rental/internal/pkg/config"
	"fleet-rental/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddlewareAssignsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	logger := middleware.NewLogger(config.LogConfig{Level: "error", TimeFormat: "2006-01-02T15:04:05Z"})
	router.Use(logger.LoggingMiddleware())

	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = middleware.GetRequestID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.PerformRequest(t, router, http.MethodGet, "/ping", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, seen)

	// A second request gets its own id.
	first := seen
	w = httptest.PerformRequest(t, router, http.MethodGet, "/ping", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, seen)
	require.NotEqual(t, first, seen)
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(nil)

	require.Empty(t, middleware.GetRequestID(c))
}
