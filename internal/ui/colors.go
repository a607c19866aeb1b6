package ui

// The Color* helpers return the escape code of the active theme for a color
// role. They return "" when colors are disabled.

// ColorReset clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed marks errors.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen marks successes.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow marks warnings and durations.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue marks algorithm and command names.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta marks inputs such as F(n).
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan marks secondary values.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold starts bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline starts underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }
