// Package apierror defines the error kinds the API boundary is allowed to
// surface and their mapping to HTTP status codes.
package apierror

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Kind int

const (
	// Validation: malformed or missing required input, user-correctable.
	Validation Kind = iota
	// NotFound: the identifier does not resolve.
	NotFound
	// Authentication: missing or invalid credential.
	Authentication
	// Authorization: valid credential, insufficient privilege.
	Authorization
	// BackendUnavailable: store or network failure. Surfaced as a generic
	// message, never with internal detail.
	BackendUnavailable
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (k Kind) Status() int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Authentication:
		return http.StatusUnauthorized
	case Authorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as the JSON error response the client expects. Backend
// failures hide their cause behind a fixed message.
func Respond(c *gin.Context, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = &Error{Kind: BackendUnavailable, Message: "Server error", Err: err}
	}

	message := apiErr.Message
	if apiErr.Kind == BackendUnavailable {
		message = "Server error"
	}

	c.JSON(apiErr.Kind.Status(), gin.H{"message": message})
}
