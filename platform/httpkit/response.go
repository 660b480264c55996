// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"errors"
	"net/http"

	"showroom_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

const msgInternal = "internal error"

// Result is the envelope returned by the public API: {success, error?}.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// OK sends a 200 OK response with the given payload.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Fail sends a {success:false} envelope with the given status code.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Result{Success: false, Error: message})
}

// HandleError maps domain errors to {success:false} responses.
// If the error is a typed *apperr.Error, its Kind decides the status code and
// its Message is the only text exposed to the caller. Untyped errors become a
// generic 500 so internal details never leak.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	_ = c.Error(err)

	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) {
		domainErr = apperr.Internal(msgInternal)
	}
	Fail(c, domainErr.HTTPStatus(), domainErr.Message)
	return true
}
