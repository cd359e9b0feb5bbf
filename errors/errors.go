package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents a gateway error surfaced to the client.
type Error struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
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

// Gateway error taxonomy. Unauthorized and BadRequest are detected locally
// before any upstream call; upstream failures are classified by the forwarder.
var (
	ErrUnauthorized = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrBadRequest   = New(http.StatusBadRequest, "Bad request", nil)
	ErrNotFound     = New(http.StatusNotFound, "Not Found", nil)

	// Transport-level failure reaching upstream. Details are logged,
	// never surfaced.
	ErrUpstreamUnavailable = New(http.StatusInternalServerError, "Something went wrong. Please try again.", nil)

	// Session expired mid-flow. Recoverable: the client should log in
	// again and resume, unlike a terminal business rejection.
	ErrReauthRequired = New(http.StatusUnauthorized, "Your session has expired. Please log in and try again.", nil)
)

// UpstreamRejected wraps a structured upstream failure; the message is
// passed through to the client verbatim.
func UpstreamRejected(status int, message string) *Error {
	return New(status, message, nil)
}

// Respond writes the error as the standard {success:false, message} body.
func Respond(c *gin.Context, err *Error) {
	c.JSON(err.Code, gin.H{"success": false, "message": err.Message})
}

// AbortWith writes the error body and stops the handler chain.
func AbortWith(c *gin.Context, err *Error) {
	c.AbortWithStatusJSON(err.Code, gin.H{"success": false, "message": err.Message})
}
