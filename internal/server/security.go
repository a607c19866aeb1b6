package server

import (
	"net/http"
	"slices"
	"strings"
)

// SecurityConfig configures the security middleware and the request limits.
type SecurityConfig struct {
	// EnableCORS adds CORS headers for allowed origins.
	EnableCORS bool
	// AllowedOrigins lists the origins allowed by CORS; "*" allows any.
	AllowedOrigins []string
	// AllowedMethods lists the methods announced to CORS clients.
	AllowedMethods []string
	// MaxNValue is the largest Fibonacci index accepted by /api/fibonacci.
	MaxNValue uint64
}

// DefaultSecurityConfig returns a permissive CORS configuration for a
// read-only API.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxNValue:      1_000_000_000,
	}
}

// SecurityMiddleware sets the security headers, applies CORS and answers
// preflight requests with 204.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin, ok := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				if origin != "*" {
					h.Add("Vary", "Origin")
				}
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

// allowedOrigin returns the value of Access-Control-Allow-Origin for origin.
func allowedOrigin(allowed []string, origin string) (string, bool) {
	if slices.Contains(allowed, "*") {
		return "*", true
	}
	if origin != "" && slices.Contains(allowed, origin) {
		return origin, true
	}
	return "", false
}

// ParseOrigins splits a comma-separated origin list, dropping blanks.
func ParseOrigins(list string) []string {
	var origins []string
	for _, o := range strings.Split(list, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
