package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Error is an HTTP-facing failure. Message is shown to the client; Err is detail for the
// response's error field and for logs.
type Error struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string, err error) *Error {
	return New(http.StatusBadRequest, message, err)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

func Internal(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// Envelope is the failure body shared by every endpoint. Without a cause the error field
// falls back to the status text.
func (e *Error) Envelope() gin.H {
	detail := strings.ToLower(http.StatusText(e.Code))
	if e.Err != nil {
		detail = e.Err.Error()
	}
	if detail == "" {
		detail = "error"
	}
	return gin.H{
		"success": false,
		"message": e.Message,
		"error":   detail,
	}
}

// Respond writes err as the failure envelope. Errors that are not *Error become a generic 500
// and their detail is not exposed.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal("Internal server error", nil)
	}
	c.AbortWithStatusJSON(appErr.Code, appErr.Envelope())
}

// ErrorMiddleware renders the last error attached with c.Error when the handler wrote nothing.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		Respond(c, c.Errors.Last().Err)
	}
}
