package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the flat error envelope every endpoint returns. Status travels
// out of band so deferred middleware can replay the envelope.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
}

// AbortWithError records the original error on the context for logging and
// monitoring while the caller only sees the envelope.
func AbortWithError(c *gin.Context, status int, err error, msg string) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, Error: msg}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
