// Package format holds the display helpers shared by the CLI, the REPL and
// the TUI: durations, ETAs, progress bars and digit grouping.
package format
