package tasklist

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evoapps/evodo/internal/keys"
	"github.com/evoapps/evodo/internal/model"
	"github.com/evoapps/evodo/internal/store"
	"github.com/evoapps/evodo/internal/theme"
)

// TodosLoadedMsg is sent when todos have been loaded from the store.
type TodosLoadedMsg struct {
	Todos []model.Todo
}

// NewTodoMsg asks the app to open the todo form for a new entry.
type NewTodoMsg struct{}

// EditTodoMsg asks the app to open the todo form pre-filled with a todo.
type EditTodoMsg struct {
	Todo model.Todo
}

// sortModes defines the available sort modes cycled by Tab.
var sortModes = []string{"newest", "oldest", "priority"}

// doneModes cycles all / pending / completed.
var doneModes = []string{"all", "pending", "completed"}

// Model is the main todo list view component.
type Model struct {
	list        list.Model
	store       store.Store
	keys        *keys.KeyMap
	userID      string
	filter      store.TodoFilter
	sortIndex   int
	priIndex    int // 0 = all, then 1..len(model.Priorities)
	catIndex    int // 0 = all, then 1..len(model.Categories)
	doneIndex   int
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new todo list model scoped to one user's todos.
func New(s store.Store, k *keys.KeyMap, userID string, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Todos"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search todos..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:   l,
		store:  s,
		keys:   k,
		userID: userID,
		filter: store.TodoFilter{
			UserID: &userID,
			SortBy: "newest",
		},
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of todos.
func (m Model) Init() tea.Cmd {
	return m.LoadTodos()
}

// Update handles messages for the todo list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TodosLoadedMsg:
		items := make([]list.Item, len(msg.Todos))
		for i, todo := range msg.Todos {
			items[i] = TodoItem{Todo: todo}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		query := m.searchInput.Value()
		if query != "" {
			m.filter.Query = &query
		} else {
			m.filter.Query = nil
		}
		return m, m.LoadTodos()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = nil
		return m, m.LoadTodos()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.New):
		return m, func() tea.Msg { return NewTodoMsg{} }

	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(TodoItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return EditTodoMsg{Todo: item.Todo} }

	case key.Matches(msg, m.keys.Toggle):
		item, ok := m.list.SelectedItem().(TodoItem)
		if !ok {
			return m, nil
		}
		s := m.store
		id := item.Todo.ID
		load := m.LoadTodos()
		return m, func() tea.Msg {
			if err := s.ToggleTodo(context.Background(), id); err != nil {
				return TodosLoadedMsg{Todos: nil}
			}
			return load()
		}

	case key.Matches(msg, m.keys.Delete):
		item, ok := m.list.SelectedItem().(TodoItem)
		if !ok {
			return m, nil
		}
		s := m.store
		id := item.Todo.ID
		load := m.LoadTodos()
		return m, func() tea.Msg {
			if err := s.DeleteTodo(context.Background(), id); err != nil {
				return TodosLoadedMsg{Todos: nil}
			}
			return load()
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.FilterPriority):
		m.priIndex = (m.priIndex + 1) % (len(model.Priorities) + 1)
		if m.priIndex == 0 {
			m.filter.Priority = nil
		} else {
			p := model.Priorities[m.priIndex-1]
			m.filter.Priority = &p
		}
		return m, m.LoadTodos()

	case key.Matches(msg, m.keys.FilterCategory):
		m.catIndex = (m.catIndex + 1) % (len(model.Categories) + 1)
		if m.catIndex == 0 {
			m.filter.Category = nil
		} else {
			c := model.Categories[m.catIndex-1]
			m.filter.Category = &c
		}
		return m, m.LoadTodos()

	case key.Matches(msg, m.keys.FilterDone):
		m.doneIndex = (m.doneIndex + 1) % len(doneModes)
		switch doneModes[m.doneIndex] {
		case "pending":
			done := false
			m.filter.Completed = &done
		case "completed":
			done := true
			m.filter.Completed = &done
		default:
			m.filter.Completed = nil
		}
		return m, m.LoadTodos()

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIndex = (m.sortIndex + 1) % len(sortModes)
		m.filter.SortBy = sortModes[m.sortIndex]
		return m, m.LoadTodos()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the todo list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no todos are available.
func (m Model) renderEmptyState() string {
	hasFilters := m.filter.Completed != nil ||
		m.filter.Priority != nil ||
		m.filter.Category != nil ||
		m.filter.Query != nil

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if hasFilters {
		return style.Render("No matching todos.\nTry adjusting your filters.")
	}

	return style.Render(
		"No todos yet.\n\n" +
			"Press n to add one, or a to ask Evo.",
	)
}

// LoadTodos returns a tea.Cmd that queries the store with the current filter.
func (m Model) LoadTodos() tea.Cmd {
	filter := m.filter
	s := m.store
	return func() tea.Msg {
		todos, err := s.GetTodos(context.Background(), filter)
		if err != nil {
			return TodosLoadedMsg{Todos: nil}
		}
		return TodosLoadedMsg{Todos: todos}
	}
}

// SelectedTodo returns the currently highlighted todo, if any.
func (m Model) SelectedTodo() (model.Todo, bool) {
	item, ok := m.list.SelectedItem().(TodoItem)
	if !ok {
		return model.Todo{}, false
	}
	return item.Todo, true
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
