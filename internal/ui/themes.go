package ui

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the ANSI escape codes used for each color role of the CLI
// output, and the lipgloss palette used by the TUI.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
	TUI       TUITheme
}

// TUITheme holds the lipgloss colors of the TUI.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

// fg returns the escape code selecting color c of the 256-color palette.
func fg(c int) string { return fmt.Sprintf("\033[38;5;%dm", c) }

// palette builds a colored theme from 256-color indices for the primary,
// secondary, success, warning, error and info roles.
func palette(name string, primary, secondary, success, warning, errColor, info int, tui TUITheme) Theme {
	return Theme{
		Name:      name,
		Primary:   fg(primary),
		Secondary: fg(secondary),
		Success:   fg(success),
		Warning:   fg(warning),
		Error:     fg(errColor),
		Info:      fg(info),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		TUI:       tui,
	}
}

var (
	DarkTUITheme = TUITheme{
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#3B82F6"),
		Accent:  lipgloss.Color("#60A5FA"),
		Success: lipgloss.Color("#9ECE6A"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
		Info:    lipgloss.Color("#A78BFA"),
	}

	LightTUITheme = TUITheme{
		Text:    lipgloss.Color("#1F2937"),
		Border:  lipgloss.Color("#1D4ED8"),
		Accent:  lipgloss.Color("#1E40AF"),
		Success: lipgloss.Color("#15803D"),
		Warning: lipgloss.Color("#B45309"),
		Error:   lipgloss.Color("#B91C1C"),
		Dim:     lipgloss.Color("#6B7280"),
		Info:    lipgloss.Color("#5B21B6"),
	}

	// NoColorTUITheme renders with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}

	DarkTheme   = palette("dark", 39, 245, 82, 220, 196, 141, DarkTUITheme)
	LightTheme  = palette("light", 27, 240, 28, 130, 124, 54, LightTUITheme)
	OrangeTheme = palette("orange", 208, 245, 82, 214, 196, 69, DarkTUITheme)

	// NoColorTheme is selected by --no-color or NO_COLOR. Every escape
	// code is empty.
	NoColorTheme = Theme{Name: "none", TUI: NoColorTUITheme}
)

// ThemeNames lists the names accepted by SetTheme and LookupTheme.
var ThemeNames = []string{"dark", "light", "orange", "none"}

var (
	themeMu      sync.RWMutex
	currentTheme = DarkTheme
)

// LookupTheme returns the theme called name.
func LookupTheme(name string) (Theme, bool) {
	for _, t := range []Theme{DarkTheme, LightTheme, OrangeTheme, NoColorTheme} {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// GetCurrentTUITheme returns the TUI palette of the active theme.
func GetCurrentTUITheme() TUITheme {
	return GetCurrentTheme().TUI
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = t
}

// SetTheme activates the theme called name, falling back to DarkTheme.
func SetTheme(name string) {
	t, ok := LookupTheme(name)
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme activates the theme called name, or NoColorTheme when noColor
// is set or NO_COLOR is present in the environment.
func InitTheme(name string, noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(name)
}
