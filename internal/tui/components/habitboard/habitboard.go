package habitboard

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/cadence/internal/models"
)

type CheckoffMsg struct {
	ID string
}

type DeactivateMsg struct {
	ID string
}

type RestoreMsg struct {
	ID string
}

// Entry is a habit plus the derived fields the board renders.
type Entry struct {
	Habit         models.Habit
	CurrentStreak int
	Due           bool
}

type Item struct {
	Entry Entry
}

func (i Item) Title() string {
	name := i.Entry.Habit.Name
	if !i.Entry.Habit.Active {
		return "👻 " + name + " (deactivated)"
	}
	if i.Entry.Due {
		return "○ " + name
	}
	return "✓ " + name
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | streak %d", i.Entry.Habit.Periodicity, i.Entry.CurrentStreak)
	if !i.Entry.Habit.Active {
		desc += " | can restore with 'r'"
	} else if i.Entry.Due {
		desc += " | due, check off with 'c'"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Entry.Habit.Name }

type KeyMap struct {
	Checkoff key.Binding
	Delete   key.Binding
	Restore  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Checkoff: key.NewBinding(
			key.WithKeys("c", "enter"),
			key.WithHelp("c", "check off"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "deactivate"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(entries []Entry, width, height int) Model {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered globally by the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Checkoff, keys.Delete, keys.Restore}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Checkoff, keys.Delete, keys.Restore}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetEntries(entries []Entry) {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Checkoff):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if i.Entry.Habit.Active {
					return m, func() tea.Msg { return CheckoffMsg{ID: i.Entry.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if i.Entry.Habit.Active {
					return m, func() tea.Msg { return DeactivateMsg{ID: i.Entry.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Restore):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.Entry.Habit.Active {
					return m, func() tea.Msg { return RestoreMsg{ID: i.Entry.Habit.ID} }
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Add one with 'cadence habit add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
