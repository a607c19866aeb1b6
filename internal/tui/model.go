// Package tui provides the interactive terminal calculator built on
// bubbletea. Commands are evaluated by cli.Evaluator, so the TUI and the
// REPL accept the same language.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/numkit/internal/cli"
	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/format"
	"github.com/agbru/numkit/internal/metrics"
)

const (
	// MaxHistoryEntries bounds the evaluated commands kept on screen.
	MaxHistoryEntries = 200
	// DurationSamples is the number of command durations in the sparkline.
	DurationSamples = 30
	// chromeHeight is the number of lines used by everything but the
	// history panel: header, input, status, help and panel borders.
	chromeHeight = 7
	tickInterval = time.Second
)

// entry is one evaluated command.
type entry struct {
	input    string
	output   string
	err      error
	duration time.Duration
}

type evalResultMsg entry

type tickMsg time.Time

type memStatsMsg metrics.MemorySnapshot

type sysStatsMsg metrics.SystemUsage

// Model is the root bubbletea model of the calculator.
type Model struct {
	ctx  context.Context
	eval *cli.Evaluator

	header HeaderModel
	input  textinput.Model
	help   help.Model
	keymap KeyMap

	entries   []entry
	commands  []string
	cursor    int
	durations *sampleWindow
	mem       metrics.MemorySnapshot
	sys       metrics.SystemUsage

	busy     bool
	quitting bool
	width    int
	height   int
}

// NewModel creates the calculator model.
func NewModel(ctx context.Context, eval *cli.Evaluator, version string) Model {
	ti := textinput.New()
	ti.Prompt = "numkit> "
	ti.Placeholder = "fib 1000, sum 2 3, help..."
	ti.CharLimit = 512
	ti.Focus()

	return Model{
		ctx:       ctx,
		eval:      eval,
		header:    NewHeaderModel(version, eval.Algo()),
		input:     ti,
		help:      help.New(),
		keymap:    DefaultKeyMap(),
		durations: newSampleWindow(DurationSamples),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(), sampleMemStatsCmd, sampleSysStatsCmd)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-4, 10)
		return m, nil

	case evalResultMsg:
		m.busy = false
		if errors.Is(msg.err, cli.ErrExit) {
			m.quitting = true
			return m, tea.Quit
		}
		m.entries = append(m.entries, entry(msg))
		if len(m.entries) > MaxHistoryEntries {
			m.entries = m.entries[len(m.entries)-MaxHistoryEntries:]
		}
		m.durations.Push(msg.duration.Seconds())
		m.header.SetAlgo(m.eval.Algo())
		return m, nil

	case tickMsg:
		return m, tea.Batch(sampleMemStatsCmd, sampleSysStatsCmd, tickCmd())

	case memStatsMsg:
		m.mem = metrics.MemorySnapshot(msg)
		return m, nil

	case sysStatsMsg:
		m.sys = metrics.SystemUsage(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		m.entries = nil
		return m, nil

	case key.Matches(msg, m.keymap.Previous):
		if m.cursor > 0 {
			m.cursor--
			m.input.SetValue(m.commands[m.cursor])
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Next):
		if m.cursor < len(m.commands) {
			m.cursor++
		}
		if m.cursor == len(m.commands) {
			m.input.Reset()
		} else {
			m.input.SetValue(m.commands[m.cursor])
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Submit):
		line := strings.TrimSpace(m.input.Value())
		if m.busy || line == "" {
			return m, nil
		}
		m.commands = append(m.commands, line)
		m.cursor = len(m.commands)
		m.input.Reset()
		m.busy = true
		return m, evalCmd(m.ctx, m.eval, line)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the calculator.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	historyLines := m.renderHistory()
	if m.height > 0 {
		if room := m.height - chromeHeight; room > 0 && len(historyLines) > room {
			historyLines = historyLines[len(historyLines)-room:]
		}
	}
	history := dimStyle.Render("Type a command and press enter. \"help\" lists the commands.")
	if len(historyLines) > 0 {
		history = strings.Join(historyLines, "\n")
	}
	panel := panelStyle
	if m.width > 0 {
		panel = panel.Width(max(m.width-2, 20))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		panel.Render(history),
		m.input.View(),
		m.statusLine(),
		m.help.View(m.keymap),
	)
}

func (m Model) renderHistory() []string {
	var lines []string
	for _, e := range m.entries {
		lines = append(lines, promptStyle.Render(m.input.Prompt)+inputLineStyle.Render(e.input))
		if e.output != "" {
			for _, l := range strings.Split(e.output, "\n") {
				lines = append(lines, outputStyle.Render(l))
			}
		}
		if e.err != nil {
			lines = append(lines, errorStyle.Render("Error: "+e.err.Error()))
		}
	}
	return lines
}

func (m Model) statusLine() string {
	parts := []string{
		fmt.Sprintf("heap %s", format.FormatBytes(m.mem.HeapAlloc)),
		fmt.Sprintf("gc %d", m.mem.NumGC),
		fmt.Sprintf("goroutines %d", m.mem.Goroutines),
		m.sys.String(),
	}
	if m.durations.Len() > 0 {
		parts = append(parts, fmt.Sprintf("last %s %s",
			format.FormatExecutionDuration(time.Duration(m.durations.Last()*float64(time.Second))),
			sparkStyle.Render(Sparkline(m.durations.Values()))))
	}
	status := dimStyle.Render(strings.Join(parts, " · "))
	if m.busy {
		status = busyStyle.Render("evaluating... ") + status
	}
	return status
}

// evalCmd evaluates line off the UI goroutine.
func evalCmd(ctx context.Context, eval *cli.Evaluator, line string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		output, err := eval.Eval(ctx, line)
		return evalResultMsg{input: line, output: output, err: err, duration: time.Since(start)}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func sampleSysStatsCmd() tea.Msg {
	return sysStatsMsg(metrics.SampleSystem())
}

func sampleMemStatsCmd() tea.Msg {
	return memStatsMsg(metrics.ReadMemory())
}

// Run starts the calculator on the alternate screen and blocks until the
// user quits or ctx is canceled. It returns the process exit code.
func Run(ctx context.Context, eval *cli.Evaluator, version string) int {
	// Styles depend on the theme selected after package init.
	initTUIStyles()

	p := tea.NewProgram(NewModel(ctx, eval, version), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
