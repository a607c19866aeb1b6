// Package apperrors holds the numkit error types and maps them to process
// exit codes. Types that carry a cause implement Unwrap, so callers test
// them with errors.Is and errors.As rather than by message.
package apperrors
