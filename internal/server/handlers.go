package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/logging"
	"github.com/agbru/numkit/internal/metrics"
	"github.com/agbru/numkit/internal/numeric"
)


func loggingRequestID(r *http.Request) logging.Field {
	return logging.String("request_id", RequestIDFromContext(r.Context()))
}

// requireGET answers 405 for any method but GET and reports whether the
// handler may proceed.
func (s *Server) requireGET(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	s.writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Error:     fmt.Sprintf("method %s not allowed", r.Method),
		Code:      http.StatusMethodNotAllowed,
		RequestID: RequestIDFromContext(r.Context()),
	})
	return false
}

// finish writes the outcome of operation op and records it in the metrics.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, op string, result any, err error) {
	if err != nil {
		s.metrics.RecordOperation(op, "error")
		s.writeError(w, r, err)
		return
	}
	s.metrics.RecordOperation(op, "success")
	s.writeResult(w, r, op, result)
}

func queryInt(q url.Values, name string) (int64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, apperrors.ValidationError{Field: name, Message: "parameter is required"}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError{Field: name, Message: fmt.Sprintf("invalid integer %q", raw)}
	}
	return v, nil
}

func queryUint(q url.Values, name string) (uint64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, apperrors.ValidationError{Field: name, Message: "parameter is required"}
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError{Field: name, Message: fmt.Sprintf("invalid non-negative integer %q", raw)}
	}
	return v, nil
}

func queryFloat(q url.Values, name string) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, apperrors.ValidationError{Field: name, Message: "parameter is required"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.ValidationError{Field: name, Message: fmt.Sprintf("invalid number %q", raw)}
	}
	return v, nil
}

func (s *Server) handleSum(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	q := r.URL.Query()
	a, err := queryInt(q, "a")
	if err != nil {
		s.finish(w, r, "sum", nil, err)
		return
	}
	b, err := queryInt(q, "b")
	if err != nil {
		s.finish(w, r, "sum", nil, err)
		return
	}
	sum, err := numeric.Sum(a, b)
	s.finish(w, r, "sum", sum, err)
}

func (s *Server) handleNonEmpty(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	s.finish(w, r, "nonempty", numeric.IsNonEmpty(r.URL.Query().Get("text")), nil)
}

func (s *Server) handleSortSum(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	var numbers []int64
	if raw := strings.TrimSpace(r.URL.Query().Get("numbers")); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			field = strings.TrimSpace(field)
			v, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				s.finish(w, r, "sortsum", nil, apperrors.ValidationError{Field: "numbers", Message: fmt.Sprintf("invalid integer %q", field)})
				return
			}
			numbers = append(numbers, v)
		}
	}
	sum, err := numeric.SortAndSum(numbers)
	s.finish(w, r, "sortsum", sum, err)
}

func (s *Server) handleDistance(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	q := r.URL.Query()
	var coords [4]float64
	for i, name := range []string{"x1", "y1", "x2", "y2"} {
		v, err := queryFloat(q, name)
		if err != nil {
			s.finish(w, r, "distance", nil, err)
			return
		}
		coords[i] = v
	}
	d := numeric.Distance(numeric.Point2D{X: coords[0], Y: coords[1]}, numeric.Point2D{X: coords[2], Y: coords[3]})
	s.finish(w, r, "distance", jsonFloat(d), nil)
}

func (s *Server) handleArea(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	q := r.URL.Query()
	width, err := queryFloat(q, "width")
	if err != nil {
		s.finish(w, r, "area", nil, err)
		return
	}
	height, err := queryFloat(q, "height")
	if err != nil {
		s.finish(w, r, "area", nil, err)
		return
	}
	s.finish(w, r, "area", jsonFloat(numeric.Area(width, height)), nil)
}

func (s *Server) handlePerson(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	q := r.URL.Query()
	age := 0
	if raw := q.Get("age"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			s.finish(w, r, "person", nil, apperrors.ValidationError{Field: "age", Message: fmt.Sprintf("invalid integer %q", raw)})
			return
		}
		age = v
	}
	s.finish(w, r, "person", numeric.MakePerson(q.Get("name"), age, q.Get("email")), nil)
}

// handleFibonacci computes F(n) with the requested algorithm under the
// request timeout. last_digits=K returns only F(n) mod 10^K.
func (s *Server) handleFibonacci(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	const op = "fibonacci"
	q := r.URL.Query()
	n, err := queryUint(q, "n")
	if err != nil {
		s.finish(w, r, op, nil, err)
		return
	}
	if n > s.security.MaxNValue {
		s.finish(w, r, op, nil, apperrors.ValidationError{
			Field:   "n",
			Message: fmt.Sprintf("n must be at most %d", s.security.MaxNValue),
		})
		return
	}

	algo := q.Get("algo")
	if algo == "" {
		algo = s.config.DefaultAlgo
	}
	calc, err := s.factory.Get(algo)
	if err != nil {
		s.finish(w, r, op, nil, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.RequestTimeout)
	defer cancel()

	resp := FibonacciResponse{N: n, Algorithm: calc.Name(), RequestID: RequestIDFromContext(r.Context())}
	start := time.Now()
	if raw := q.Get("last_digits"); raw != "" {
		k, convErr := strconv.Atoi(raw)
		if convErr != nil || k > fibonacci.MaxLastDigits {
			s.finish(w, r, op, nil, apperrors.ValidationError{Field: "last_digits", Message: fmt.Sprintf("want an integer between 1 and %d, got %q", fibonacci.MaxLastDigits, raw)})
			return
		}
		tail, lastErr := fibonacci.LastDigits(n, k)
		if lastErr != nil {
			s.finish(w, r, op, nil, lastErr)
			return
		}
		resp.Algorithm = "Modular Fast Doubling"
		resp.Result = padDigits(tail.String(), k)
		resp.LastDigits = k
	} else {
		result, calcErr := calc.Calculate(ctx, nil, 0, n)
		if calcErr != nil {
			if ctx.Err() != nil && r.Context().Err() == nil {
				calcErr = apperrors.TimeoutError{Operation: op, Limit: s.config.RequestTimeout}
			}
			s.logger.Debug("fibonacci failed", loggingRequestID(r), logging.Uint64("n", n), logging.Err(calcErr))
			s.finish(w, r, op, nil, calcErr)
			return
		}
		resp.Result = result.String()
		resp.Digits = len(resp.Result)
	}
	resp.DurationMs = float64(time.Since(start).Microseconds()) / 1000

	s.metrics.RecordOperation(op, "success")
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	snap := metrics.ReadMemory()
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Version:    s.config.Version,
		Algorithms: s.factory.List(),
		Goroutines: snap.Goroutines,
		HeapBytes:  snap.HeapAlloc,
		CPU:        metrics.DetectCPU().String(),
	})
}

// handleMetrics serves the Prometheus exposition. Only GET is allowed.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("metrics: method not allowed", logging.String("method", r.Method))
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusNotFound, ErrorResponse{
		Error:     fmt.Sprintf("no route for %s", r.URL.Path),
		Code:      http.StatusNotFound,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// padDigits left-pads a decimal string with zeros to width digits.
func padDigits(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
