// Package httperr carries structured error payloads from handlers to the
// rendering middleware through gin's error stack.
package httperr

import "github.com/gin-gonic/gin"

// Response is the JSON error envelope. Status rides along for the middleware
// but is written as the HTTP status code, never serialized.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func NewResponse(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}

// AbortWithError records the original error on the context, for logging and
// future monitoring, and writes the envelope immediately.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("httperr: AbortWithError needs a non-nil error")
	}

	resp := NewResponse(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
