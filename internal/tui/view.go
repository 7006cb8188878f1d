package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDue:
		content = docStyle.Render(m.dueBoard.View())
	case StateHabits:
		content = docStyle.Render(m.habitBoard.View())
	case StateStats:
		content = docStyle.Render(m.summaryModel.View())
	case StateAddHabit:
		content = docStyle.Render(m.form.View())
	}

	sections := []string{m.viewTabs(), content}
	if m.lastErr != nil {
		sections = append(sections, errorStyle.Render("Error: "+m.lastErr.Error()))
	} else if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Due", "Habits", "Stats"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
