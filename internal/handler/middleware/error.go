package middleware

import (
	"log/slog"
	"net/http"

	"fleet-rental/internal/handler/httperr"
	"fleet-rental/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const errorStackLogLines = 12

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logPrivateErrors(c)

		if c.Writer.Written() {
			return
		}
		// Search backward through the error stack
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if err.IsType(gin.ErrorTypePublic) {
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// Private errors never reach the response body; they only get logged, with
// enough of the wrapped stack to locate the failure.
func logPrivateErrors(c *gin.Context) {
	for _, err := range c.Errors {
		if err.IsType(gin.ErrorTypePublic) {
			continue
		}
		slog.Error("request error",
			"request_id", GetRequestID(c),
			"path", c.Request.URL.Path,
			"error", err.Err.Error(),
			"stack", errs.ExtractStackLines(err.Err, errorStackLogLines),
		)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic", "error", err, "path", c.Request.URL.Path)

				resp := httperr.Response{Status: http.StatusInternalServerError, Error: "Internal server error"}

				c.JSON(http.StatusInternalServerError, resp)
				c.Abort()
			}
		}()
		c.Next()
	}
}
