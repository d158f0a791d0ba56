package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
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

// Order-entry error taxonomy. Every one of these is local, synchronous and
// recoverable; the controller maps it to a status and the terminal retries
// or corrects the input.
var (
	ErrLineNotFound    = New(http.StatusNotFound, "cart line not found", nil)
	ErrInvalidDiscount = New(http.StatusBadRequest, "invalid discount", nil)
	ErrHoldNotFound    = New(http.StatusNotFound, "hold not found", nil)
	ErrCartNotEmpty    = New(http.StatusConflict, "cart is not empty", nil)
	ErrSelectionStep   = New(http.StatusConflict, "action not available in current selection step", nil)
	ErrUnknownProduct  = New(http.StatusNotFound, "product not found", nil)
)

// ErrGuardFailed is the base error every guard failure wraps, so callers can
// test the whole class with errors.Is.
var ErrGuardFailed = errors.New("precondition failed")

// Guard builds a guard-layer failure with a message the terminal can show.
func Guard(message string) *Error {
	return New(http.StatusPreconditionFailed, message, ErrGuardFailed)
}

// HandleError writes err to the gin response. Known *Error values keep their
// status code; anything else becomes a 500.
func HandleError(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = New(http.StatusInternalServerError, "internal server error", err)
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
