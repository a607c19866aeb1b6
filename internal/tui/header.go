package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/numkit/internal/format"
)

// HeaderModel renders the top bar: title, version, algorithm and session
// time.
type HeaderModel struct {
	startTime time.Time
	version   string
	algo      string
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version, algo string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		algo:      algo,
	}
}

// SetAlgo updates the algorithm shown in the header.
func (h *HeaderModel) SetAlgo(algo string) {
	h.algo = algo
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "numkit"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	row := titleStyle.Render(titleText) +
		pipe + accentStyle.Render("algo: "+h.algo) +
		pipe + dimStyle.Render(fmt.Sprintf("session: %s", format.FormatExecutionDuration(time.Since(h.startTime).Truncate(time.Second))))

	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}
	return headerStyle.Render(row)
}
