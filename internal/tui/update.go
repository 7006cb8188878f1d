package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/streak"
	"github.com/julianstephens/cadence/internal/tui/components/habitboard"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		contentHeight := msg.Height - v - 4
		m.dueBoard.SetSize(msg.Width-h, contentHeight)
		m.habitBoard.SetSize(msg.Width-h, contentHeight)
		m.summaryModel.SetSize(msg.Width-h, contentHeight)
		return m, nil

	case tea.KeyMsg:
		if m.state == StateAddHabit {
			return m.updateAddHabit(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			m.status = ""
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			m.status = ""
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Add) && m.state == StateHabits:
			m.habitForm = &HabitFormModel{Periodicity: models.PeriodicityDaily}
			m.form = newHabitForm(m.habitForm)
			m.state = StateAddHabit
			return m, m.form.Init()
		}

	case habitboard.CheckoffMsg:
		m.checkoff(msg.ID)
		return m, nil

	case habitboard.DeactivateMsg:
		if err := m.store.DeactivateHabit(msg.ID); err != nil {
			m.lastErr = err
		} else {
			m.status = "Habit deactivated"
			m.refresh()
		}
		return m, nil

	case habitboard.RestoreMsg:
		if err := m.store.RestoreHabit(msg.ID); err != nil {
			m.lastErr = err
		} else {
			m.status = "Habit restored"
			m.refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateDue:
		m.dueBoard, cmd = m.dueBoard.Update(msg)
	case StateHabits:
		m.habitBoard, cmd = m.habitBoard.Update(msg)
	case StateStats:
		m.summaryModel, cmd = m.summaryModel.Update(msg)
	case StateAddHabit:
		return m.updateAddHabit(msg)
	}
	return m, cmd
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = StateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		habit := models.Habit{
			ID:          uuid.New().String(),
			UserID:      m.user.ID,
			Name:        m.habitForm.Name,
			Periodicity: m.habitForm.Periodicity,
			CreatedAt:   m.now(),
			Active:      true,
		}
		if err := m.store.AddHabit(habit); err != nil {
			// Stay in the form so the user can retry or cancel with esc.
			m.lastErr = err
			m.form.State = huh.StateNormal
		} else {
			m.status = "Added " + habit.Name
			m.refresh()
			m.state = StateHabits
		}
	case huh.StateAborted:
		m.state = StateHabits
	}
	return m, cmd
}

func (m *Model) checkoff(habitID string) {
	now := m.now()

	habit, err := m.store.GetHabit(habitID)
	if err != nil {
		m.lastErr = err
		return
	}
	isDue, err := streak.IsDue(habit, now)
	if err != nil {
		m.lastErr = err
		return
	}
	if !isDue {
		m.status = habit.Name + " is already done for this period"
		return
	}

	completion, err := models.NewCompletion(now, "", 0, now)
	if err != nil {
		m.lastErr = err
		return
	}
	if err := m.store.AddCompletion(habitID, completion); err != nil {
		m.lastErr = err
		return
	}
	m.status = fmt.Sprintf("✓ Checked off at %s", now.Format("15:04"))
	m.refresh()
}
