package summary

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/cadence/internal/analytics"
)

var (
	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Width(26)

	metricStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	headlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type Model struct {
	viewport  viewport.Model
	summaries []analytics.Summary
	longest   analytics.Ranking
	current   analytics.Ranking
	width     int
	height    int
}

func New(width, height int) Model {
	vp := viewport.New(width, height)
	return Model{viewport: vp}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.summaries) == 0 {
		return "No habits to analyze yet."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetData(summaries []analytics.Summary, longest, current analytics.Ranking) {
	m.summaries = summaries
	m.longest = longest
	m.current = current
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder

	if m.longest.Streak > 0 {
		b.WriteString(headlineStyle.Render(
			fmt.Sprintf("Longest streak ever: %s (%d)", m.longest.HabitName, m.longest.Streak)))
		b.WriteString("\n")
	}
	if m.current.Streak > 0 {
		b.WriteString(headlineStyle.Render(
			fmt.Sprintf("Best current streak: %s (%d)", m.current.HabitName, m.current.Streak)))
		b.WriteString("\n")
	}
	if m.longest.Streak > 0 || m.current.Streak > 0 {
		b.WriteString("\n")
	}

	for _, s := range m.summaries {
		metrics := fmt.Sprintf("current %d | longest %d | done %d", s.CurrentStreak, s.LongestStreak, s.Completions)
		line := fmt.Sprintf("%s %s\n", nameStyle.Render(s.HabitName), metricStyle.Render(metrics))
		b.WriteString(line)
	}
	m.viewport.SetContent(b.String())
}
