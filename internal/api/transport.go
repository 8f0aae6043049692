package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	applog "spese-client/internal/log"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// transport stamps every outgoing request with standard headers and a fresh
// request id, and logs the round trip.
type transport struct {
	base      http.RoundTripper
	userAgent string
	logger    *applog.Logger
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	r := req.Clone(req.Context())
	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		r.Header.Set(RequestIDHeader, requestID)
	}
	r.Header.Set("Accept", "application/json")
	if r.Body != nil && r.Header.Get("Content-Type") == "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if t.userAgent != "" {
		r.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.base.RoundTrip(r)

	fields := applog.NewFields().
		WithRequestID(requestID).
		WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery)
	if err != nil {
		fields.WithError(err).WithErrorType(applog.ErrorTypeNetwork)
		fields[applog.FieldDuration] = time.Since(start).Milliseconds()
		t.logger.ErrorContext(r.Context(), "API request failed", fields.ToSlice()...)
		return nil, err
	}

	fields.WithHTTPResponse(resp.StatusCode, time.Since(start).Milliseconds(), resp.StatusCode < 400).
		WithErrorType(statusErrorType(resp.StatusCode))
	level := slog.LevelDebug
	switch {
	case resp.StatusCode >= 500:
		level = slog.LevelError
	case resp.StatusCode >= 400:
		level = slog.LevelWarn
	}
	t.logger.LogContext(r.Context(), level, "API request completed", fields.ToSlice()...)
	return resp, nil
}
