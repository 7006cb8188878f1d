package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/cadence/internal/analytics"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/storage"
	"github.com/julianstephens/cadence/internal/streak"
	"github.com/julianstephens/cadence/internal/tui/components/habitboard"
	"github.com/julianstephens/cadence/internal/tui/components/summary"
)

type SessionState int

const (
	StateDue SessionState = iota
	StateHabits
	StateStats
	StateAddHabit
)

// StateAddHabit is modal; only the first three states are tabs.
const tabCount = 3

type HabitFormModel struct {
	Name        string
	Periodicity models.Periodicity
}

type Model struct {
	store        storage.Provider
	user         models.User
	now          func() time.Time
	state        SessionState
	keys         KeyMap
	help         help.Model
	dueBoard     habitboard.Model
	habitBoard   habitboard.Model
	summaryModel summary.Model
	form         *huh.Form
	habitForm    *HabitFormModel
	status       string
	lastErr      error
	quitting     bool
	width        int
	height       int
}

func NewModel(store storage.Provider, user models.User, now func() time.Time) Model {
	m := Model{
		store:        store,
		user:         user,
		now:          now,
		state:        StateDue,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		dueBoard:     habitboard.New(nil, 0, 0),
		habitBoard:   habitboard.New(nil, 0, 0),
		summaryModel: summary.New(0, 0),
	}
	m.refresh()
	return m
}

// refresh reloads habits from the store and recomputes every derived view.
func (m *Model) refresh() {
	m.lastErr = nil

	habits, err := m.store.GetHabits(m.user.ID, false)
	if err != nil {
		m.lastErr = err
		return
	}

	now := m.now()
	var all, due []habitboard.Entry
	var active []models.Habit
	for _, h := range habits {
		entry := habitboard.Entry{Habit: h}
		if h.Active {
			active = append(active, h)
			entry.CurrentStreak, err = streak.Current(h, now)
			if err != nil {
				m.lastErr = err
				return
			}
			entry.Due, err = streak.IsDue(h, now)
			if err != nil {
				m.lastErr = err
				return
			}
		}
		all = append(all, entry)
		if entry.Due {
			due = append(due, entry)
		}
	}

	m.dueBoard.SetEntries(due)
	m.habitBoard.SetEntries(all)

	summaries, err := analytics.Summaries(active, now)
	if err != nil {
		m.lastErr = err
		return
	}
	var longest, current analytics.Ranking
	if len(active) > 0 {
		if longest, err = analytics.BestLongestStreak(active); err != nil {
			m.lastErr = err
			return
		}
		if current, err = analytics.BestCurrentStreak(active, now); err != nil {
			m.lastErr = err
			return
		}
	}
	m.summaryModel.SetData(summaries, longest, current)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateDue:
		keys = append(keys, m.keys.Checkoff)
	case StateHabits:
		keys = append(keys, m.keys.Add, m.keys.Checkoff, m.keys.Delete, m.keys.Restore)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateDue:
		actions = []key.Binding{m.keys.Checkoff}
	case StateHabits:
		actions = []key.Binding{m.keys.Add, m.keys.Checkoff, m.keys.Delete, m.keys.Restore}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func newHabitForm(data *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit name").Value(&data.Name),
			huh.NewSelect[models.Periodicity]().
				Title("How often?").
				Options(
					huh.NewOption("Daily", models.PeriodicityDaily),
					huh.NewOption("Weekly", models.PeriodicityWeekly),
				).
				Value(&data.Periodicity),
		),
	)
}
