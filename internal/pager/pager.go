// Package pager shows a finished report in a scrollable Bubble Tea view.
package pager

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements a read-only report pager.
type Model struct {
	title   string
	content string
	vp      viewport.Model
	ready   bool
	width   int
	height  int
}

// NewModel constructs a pager for content.
func NewModel(title, content string) *Model {
	return &Model{
		title:   title,
		content: strings.TrimRight(content, "\n"),
		vp:      viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = bodyHeight(msg.Height)
		if !m.ready {
			m.vp.SetContent(m.content)
			m.ready = true
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc", "enter":
			return m, tea.Quit
		case "g", "home":
			m.vp.GotoTop()
			return m, nil
		case "G", "end":
			m.vp.GotoBottom()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return ""
	}
	header := titleStyle.Render(m.title)
	footer := footerStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll  g/G top/bottom  q close", m.vp.ScrollPercent()*100))
	return strings.Join([]string{header, m.vp.View(), footer}, "\n")
}

// Show runs the pager full screen until the user closes it.
func Show(title, content string) error {
	program := tea.NewProgram(NewModel(title, content), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run pager: %w", err)
	}
	return nil
}

func bodyHeight(total int) int {
	h := total - 2
	if h < 1 {
		h = 1
	}
	return h
}
