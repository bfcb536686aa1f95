// Package apperr defines the error taxonomy shared by all domain services
// and the single mapping from errors to HTTP responses. Services wrap the
// sentinel values so handlers can classify failures with errors.Is without
// inspecting message text.
package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrMissingCredential means no credential was presented at all.
	ErrMissingCredential = errors.New("missing credential")
	// ErrMalformedCredential means a credential was presented but could not
	// be decoded into a usable claims set.
	ErrMalformedCredential = errors.New("malformed credential")
	// ErrForbidden covers role mismatch and tenant mismatch. Tenant-scoped
	// lookups also report missing resources as ErrForbidden so that callers
	// cannot probe for resource existence across tenants.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is a genuine not-found, reported only after authorization
	// has passed.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput means a required field is missing or unparsable.
	ErrInvalidInput = errors.New("invalid input")
	// ErrTransitionNotAllowed means a lifecycle guard rejected a status change.
	ErrTransitionNotAllowed = errors.New("transition not allowed")
	// ErrConflict means the write contradicts existing state, such as adding
	// a doctor to a team twice.
	ErrConflict = errors.New("conflict")
)

// Error carries a caller-facing message on top of a taxonomy sentinel.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	if msg == "" {
		msg = kind.Error()
	}
	return &Error{kind: kind, msg: msg}
}

func MissingCredential(msg string) error   { return newError(ErrMissingCredential, msg) }
func MalformedCredential(msg string) error { return newError(ErrMalformedCredential, msg) }
func Forbidden(msg string) error           { return newError(ErrForbidden, msg) }
func NotFound(msg string) error            { return newError(ErrNotFound, msg) }
func InvalidInput(msg string) error        { return newError(ErrInvalidInput, msg) }
func TransitionNotAllowed(msg string) error {
	return newError(ErrTransitionNotAllowed, msg)
}
func Conflict(msg string) error { return newError(ErrConflict, msg) }

// Status returns the HTTP status code for an error. Anything outside the
// taxonomy is an unexpected failure and maps to 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrMissingCredential), errors.Is(err, ErrMalformedCredential):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTransitionNotAllowed), errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// HTTP converts an error into an echo.HTTPError with the taxonomy status.
// Internal failures get a generic message; the cause stays server-side for
// the request logger.
func HTTP(err error) *echo.HTTPError {
	status := Status(err)
	if status == http.StatusInternalServerError {
		return echo.NewHTTPError(status, "internal server error").SetInternal(err)
	}
	return echo.NewHTTPError(status, err.Error())
}
