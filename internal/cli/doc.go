// Package cli renders numkit results for a terminal: Fibonacci results and
// comparison tables, the progress spinner, structured values for the
// numeric commands, and the REPL with its command evaluator.
//
// Display* functions write to an io.Writer, Format* functions return
// strings, and Write* functions produce files or machine-readable output.
package cli
