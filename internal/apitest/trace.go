package apitest

import (
	"net/http"
)

// RequestIDHeader is read from every request and echoed on the response.
const RequestIDHeader = "X-Request-ID"

// trace records the request id each route received, in arrival order.
func (s *Server) trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id != "" {
			w.Header().Set(RequestIDHeader, id)
		}
		s.mu.Lock()
		s.requestIDs = append(s.requestIDs, id)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// RequestIDs returns the request id of every request received, "" where the
// header was missing.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}
