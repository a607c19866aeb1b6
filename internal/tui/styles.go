package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/numkit/internal/ui"
)

// Styles of the calculator, rebuilt from the ui theme by initTUIStyles.
var (
	headerStyle    lipgloss.Style
	titleStyle     lipgloss.Style
	dimStyle       lipgloss.Style
	accentStyle    lipgloss.Style
	promptStyle    lipgloss.Style
	inputLineStyle lipgloss.Style
	outputStyle    lipgloss.Style
	errorStyle     lipgloss.Style
	panelStyle     lipgloss.Style
	sparkStyle     lipgloss.Style
	busyStyle      lipgloss.Style
)

func init() {
	initTUIStyles()
}

func color(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// initTUIStyles applies the current ui theme. Run calls it once the theme
// flag has been resolved.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	titleStyle = color(t.Accent).Bold(true)
	headerStyle = titleStyle.Padding(0, 1)
	dimStyle = color(t.Dim)
	accentStyle = color(t.Info)
	promptStyle = color(t.Success).Bold(true)
	inputLineStyle = color(t.Text)
	outputStyle = inputLineStyle.PaddingLeft(2)
	errorStyle = color(t.Error).PaddingLeft(2)
	sparkStyle = color(t.Warning)
	busyStyle = sparkStyle.Bold(true)
	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
}
