package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agbru/numkit/internal/logging"
	"github.com/agbru/numkit/internal/telemetry"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored by the middleware, or
// "" when there is none.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestIDMiddleware reuses a well-formed incoming X-Request-ID or
// generates a new one, echoes it in the response and opens a span for the
// request.
func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx, span := telemetry.StartSpan(r.Context(), "http.request",
			attribute.String("http.method", r.Method),
			attribute.String("http.path", r.URL.Path),
			attribute.String("request.id", id),
		)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(rec, r.WithContext(context.WithValue(ctx, requestIDKey{}, id)))
		span.SetAttributes(attribute.Int("http.status_code", rec.status))

		s.logger.Debug("request served",
			logging.String("request_id", id),
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.Duration("duration", time.Since(start)),
		)
	}
}

// metricsMiddleware tracks active requests, the request count and latency.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		start := time.Now()
		next(w, r)
		s.metrics.ObserveRequest(r.URL.Path, time.Since(start))
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
