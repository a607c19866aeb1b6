// Package orchestration runs one or more Fibonacci calculators concurrently
// and compares their results. Presentation is reached only through the
// ProgressReporter, ResultPresenter and ErrorHandler interfaces.
package orchestration
