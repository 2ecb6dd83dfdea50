package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-netanalyzer/pkg/analysis"
)

// pollInterval is how often the view samples run progress.
const pollInterval = time.Second

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Cancel key.Binding
}

var keys = keyMap{
	Cancel: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "cancel analysis"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cancel}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Cancel}}
}

// progressRun is the part of analysis.Run the view polls.
type progressRun interface {
	Progress() analysis.Progress
	State() analysis.State
	Cancel()
}

type progressModel struct {
	run        progressRun
	name       string
	bar        progress.Model
	help       help.Model
	keys       keyMap
	startTime  time.Time
	progress   analysis.Progress
	state      analysis.State
	cancelling bool
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func newProgressModel(run progressRun, name string) progressModel {
	return progressModel{
		run:       run,
		name:      name,
		bar:       progress.New(progress.WithDefaultGradient()),
		help:      help.New(),
		keys:      keys,
		startTime: time.Now(),
		state:     run.State(),
	}
}

func (m progressModel) Init() tea.Cmd {
	return tickCmd()
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = max(msg.Width-8, 10)
		return m, nil

	case tickMsg:
		m.progress = m.run.Progress()
		m.state = m.run.State()
		if m.state.Terminal() {
			return m, tea.Quit
		}
		return m, tickCmd()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Cancel) && !m.cancelling {
			m.cancelling = true
			m.run.Cancel()
		}
		return m, nil
	}
	return m, nil
}

func (m progressModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("netanalyzer: " + m.name))
	b.WriteString("\n")

	var body strings.Builder
	body.WriteString(m.bar.ViewAs(m.progress.Fraction()))
	body.WriteString("\n\n")
	fmt.Fprintf(&body, "sources %d/%d  elapsed %s\n",
		m.progress.Current, m.progress.Max, time.Since(m.startTime).Truncate(time.Second))

	switch {
	case m.state == analysis.StateCompleted:
		body.WriteString(successStyle.Render("completed"))
	case m.state == analysis.StateFailed:
		body.WriteString(errorStyle.Render("failed"))
	case m.state == analysis.StateCancelled:
		body.WriteString(errorStyle.Render("cancelled"))
	case m.cancelling:
		body.WriteString(errorStyle.Render("cancelling..."))
	default:
		body.WriteString(m.state.String())
	}
	b.WriteString(contentStyle.Render(body.String()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")
	return b.String()
}
