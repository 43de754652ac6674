package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when no matching record exists.
	ErrNotFound = errors.New("resource not found")
	// ErrAccountNotFound is returned by the forgot-password flow for an
	// unregistered email. The message is part of the API contract.
	ErrAccountNotFound = errors.New("No account found with this email")
	// ErrDuplicateCredential is returned when phone or email is already registered.
	ErrDuplicateCredential = errors.New("phone or email already registered")
	// ErrInvalidCredentials covers both unknown phone and wrong password,
	// so a caller cannot enumerate registered accounts.
	ErrInvalidCredentials = errors.New("invalid phone or password")
	// ErrInvalidCode is returned for a missing, expired or already-used reset code.
	ErrInvalidCode = errors.New("invalid or expired verification code")
	// ErrUpstream is returned when the mail relay or image host call fails.
	ErrUpstream = errors.New("upstream service failure")
	// ErrForbidden is returned when the session is valid but not allowed here.
	ErrForbidden = errors.New("you are not allowed to perform this action")
)

// ValidationError carries a request-specific message for malformed input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ErrorResponse is the uniform JSON error body.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HTTPStatus maps a domain error to its HTTP status and user-visible message.
// Unknown errors collapse to a generic 500 so internals never leak.
func HTTPStatus(err error) (int, string) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Reason
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrAccountNotFound):
		return http.StatusNotFound, ErrAccountNotFound.Error()
	case errors.Is(err, ErrInvalidCode):
		return http.StatusNotFound, ErrInvalidCode.Error()
	case errors.Is(err, ErrDuplicateCredential):
		return http.StatusBadRequest, ErrDuplicateCredential.Error()
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrInvalidCredentials.Error()
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, ErrForbidden.Error()
	case errors.Is(err, ErrUpstream):
		return http.StatusInternalServerError, ErrUpstream.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
