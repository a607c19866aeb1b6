// Package ui holds the color themes shared by the CLI, the REPL and the TUI.
// ANSI escape codes serve line-oriented output; lipgloss colors serve the
// TUI. NO_COLOR (https://no-color.org/) and --no-color select NoColorTheme.
package ui
