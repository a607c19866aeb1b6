// Package logging provides the structured Logger used across numkit.
// Components depend on the Logger interface; zerolog backs it by default,
// with zap and the standard log package available as alternatives.
package logging
