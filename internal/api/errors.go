package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	applog "spese-client/internal/log"
)

// Domain errors returned by the client. Message maps them to the text shown
// to the user.
var (
	ErrNotFound        = errors.New("not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmailExists     = errors.New("email already exists")
	ErrInvalidResponse = errors.New("invalid response")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// ErrorType classifies err into one of the log ErrorType categories. It
// returns "" when err carries nothing worth classifying.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrInvalidPassword):
		return applog.ErrorTypeAuth
	case errors.Is(err, ErrEmailExists):
		return applog.ErrorTypeConflict
	}
	if code := StatusCode(err); code != 0 {
		return statusErrorType(code)
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return applog.ErrorTypeNetwork
	}
	if errors.Is(err, ErrInvalidResponse) {
		return applog.ErrorTypeInternal
	}
	return ""
}

func statusErrorType(code int) string {
	switch {
	case code == http.StatusNotFound:
		return applog.ErrorTypeNotFound
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return applog.ErrorTypeAuth
	case code == http.StatusConflict:
		return applog.ErrorTypeConflict
	case code >= 500:
		return applog.ErrorTypeInternal
	case code >= 400:
		return applog.ErrorTypeValidation
	}
	return ""
}

// Message normalizes err to a single human-readable sentence.
func Message(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "User not found"
	case errors.Is(err, ErrInvalidPassword):
		return "Invalid password"
	case errors.Is(err, ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, context.Canceled):
		return "Request canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out"
	case errors.Is(err, ErrInvalidResponse):
		return "Unexpected response from server"
	}

	var se *StatusError
	if errors.As(err, &se) {
		if se.StatusCode == http.StatusNotFound {
			return "Not found"
		}
		return fmt.Sprintf("Request failed with status code %d", se.StatusCode)
	}

	var ue *url.Error
	if errors.As(err, &ue) {
		if ue.Timeout() {
			return "Request timed out"
		}
		return "Network error"
	}

	return err.Error()
}
