package server

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"

	apperrors "github.com/agbru/numkit/internal/errors"
)

// ResultResponse is the body of a successful operation.
type ResultResponse struct {
	Operation string `json:"operation"`
	Result    any    `json:"result"`
	RequestID string `json:"request_id,omitempty"`
}

// FibonacciResponse is the body of /api/fibonacci. The result is a decimal
// string because it routinely exceeds every JSON number type.
type FibonacciResponse struct {
	N          uint64  `json:"n"`
	Algorithm  string  `json:"algorithm"`
	Result     string  `json:"result"`
	Digits     int     `json:"digits"`
	LastDigits int     `json:"last_digits,omitempty"`
	DurationMs float64 `json:"duration_ms"`
	RequestID  string  `json:"request_id,omitempty"`
}

// ErrorResponse is the body of every failed request. Code repeats the HTTP
// status.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      int    `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status     string   `json:"status"`
	Version    string   `json:"version,omitempty"`
	Algorithms []string `json:"algorithms"`
	Goroutines int      `json:"goroutines"`
	HeapBytes  uint64   `json:"heap_bytes"`
	CPU        string   `json:"cpu"`
}

// statusForError maps an error to its HTTP status.
func statusForError(err error) int {
	var validationErr apperrors.ValidationError
	var configErr apperrors.ConfigError
	switch {
	case errors.Is(err, apperrors.ErrOverflow):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validationErr), errors.As(err, &configErr):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", err, loggingRequestID(r))
	}
	s.writeJSON(w, status, ErrorResponse{
		Error:     err.Error(),
		Code:      status,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, op string, result any) {
	s.writeJSON(w, http.StatusOK, ResultResponse{
		Operation: op,
		Result:    result,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// jsonFloat returns v, or its text form when JSON cannot represent it.
func jsonFloat(v float64) any {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return v
}
