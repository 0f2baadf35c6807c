package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evoapps/evodo/internal/auth"
	"github.com/evoapps/evodo/internal/chat"
	"github.com/evoapps/evodo/internal/keys"
	"github.com/evoapps/evodo/internal/model"
	"github.com/evoapps/evodo/internal/store"
	"github.com/evoapps/evodo/internal/ui"
	"github.com/evoapps/evodo/internal/ui/chatpanel"
	helpview "github.com/evoapps/evodo/internal/ui/help"
	loginview "github.com/evoapps/evodo/internal/ui/login"
	"github.com/evoapps/evodo/internal/ui/tasklist"
	"github.com/evoapps/evodo/internal/ui/todoform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewList
	ViewChat
	ViewTodoCreate
	ViewTodoEdit
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the persistence layer.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        *store.SQLiteStore
	cfg          *model.AppConfig
	keys         *keys.KeyMap
	engine       *chat.Engine
	user         *model.User

	loginView    loginview.Model
	taskList     tasklist.Model
	chatView     chatpanel.Model
	todoFormView todoform.Model
	helpView     helpview.Model

	ready bool
}

// New creates a new root application model with the given store and config.
func New(s *store.SQLiteStore, cfg *model.AppConfig) Model {
	k := keys.DefaultKeyMap()
	return Model{
		currentView: ViewLogin,
		store:       s,
		cfg:         cfg,
		keys:        k,
		engine:      chat.NewEngine(),
		loginView:   loginview.New(auth.NewService(s, nil), 80, 24),
		helpView:    helpview.New(k, 80, 24),
	}
}

// Init starts the login screen.
func (m Model) Init() tea.Cmd {
	return m.loginView.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.loginView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		if m.user != nil {
			m.taskList.SetSize(contentWidth, contentHeight)
			m.chatView.SetSize(contentWidth, contentHeight)
			m.todoFormView.SetSize(contentWidth, contentHeight)
		}
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case loginview.LoggedInMsg:
		m.user = msg.User
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		if !m.ready {
			contentWidth, contentHeight = 80, 22
		}
		m.taskList = tasklist.New(m.store, m.keys, m.user.ID, contentWidth, contentHeight)
		m.chatView = chatpanel.New(
			m.engine, m.store, m.keys,
			m.user.ID, m.cfg.Chat.AssistantName, m.cfg.Chat.HistoryLimit,
			contentWidth, contentHeight,
		)
		m.todoFormView = todoform.New(contentWidth, contentHeight)
		m.currentView = ViewList
		return m, m.taskList.Init()

	case tasklist.TodosLoadedMsg:
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd

	case tasklist.NewTodoMsg:
		m.previousView = m.currentView
		m.currentView = ViewTodoCreate
		return m, m.todoFormView.StartCreate()

	case tasklist.EditTodoMsg:
		m.previousView = m.currentView
		m.currentView = ViewTodoEdit
		return m, m.todoFormView.StartEdit(msg.Todo)

	case todoform.TodoCreatedMsg:
		m.currentView = ViewList
		return m, m.createTodo(msg.Todo)

	case todoform.TodoUpdatedMsg:
		m.currentView = ViewList
		return m, m.updateTodo(msg.Todo)

	case todoform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case chatpanel.CloseMsg:
		m.currentView = ViewList
		return m, m.taskList.LoadTodos()

	case chatpanel.HistoryLoadedMsg:
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd

	case chatpanel.ResponseMsg:
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		if msg.TodosChanged {
			return m, tea.Batch(cmd, m.taskList.LoadTodos())
		}
		return m, cmd

	case tea.KeyMsg:
		// Global keys that work regardless of current view
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.currentView == ViewList {
				return m, tea.Quit
			}

		case "?":
			// Do not intercept while a text input has focus
			if m.currentView == ViewChat ||
				m.currentView == ViewLogin ||
				m.currentView == ViewTodoCreate ||
				m.currentView == ViewTodoEdit {
				break
			}
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case "a":
			if m.currentView == ViewList {
				m.previousView = m.currentView
				m.currentView = ViewChat
				return m, tea.Batch(m.chatView.Init(), m.chatView.Focus())
			}

		case "esc":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
		}
	}

	return m.updateActiveView(msg)
}

// updateActiveView routes a message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewChat:
		m.chatView, cmd = m.chatView.Update(msg)
	case ViewTodoCreate, ViewTodoEdit:
		m.todoFormView, cmd = m.todoFormView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full application frame.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("evodo", m.headerStatus())
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

// renderContent renders the active view's content area.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewList:
		return m.taskList.View()
	case ViewChat:
		return m.chatView.View()
	case ViewTodoCreate, ViewTodoEdit:
		return m.todoFormView.View()
	case ViewHelp:
		return m.helpView.View()
	}
	return ""
}

// headerStatus renders the right side of the header bar.
func (m Model) headerStatus() string {
	if m.user == nil {
		return "not signed in"
	}
	return m.user.Email
}

// keyHints returns the status bar hint line for the active view.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewLogin:
		return "tab: next field | enter: submit | esc: quit"
	case ViewChat:
		return fmt.Sprintf("enter: send | ctrl+l: clear | esc: back | type \"help\" to see what %s understands",
			m.cfg.Chat.AssistantName)
	case ViewTodoCreate, ViewTodoEdit:
		return "tab: next field | enter: submit | esc: cancel"
	case ViewHelp:
		return "esc/?: back"
	default:
		return "n: new | a: ask " + m.cfg.Chat.AssistantName +
			" | space: toggle | /: search | ?: help | q: quit"
	}
}

// createTodo persists a todo from the form, then reloads the list.
func (m Model) createTodo(todo model.Todo) tea.Cmd {
	s := m.store
	userID := m.user.ID
	load := m.taskList.LoadTodos()
	return func() tea.Msg {
		todo.UserID = userID
		if _, err := s.CreateTodo(context.Background(), todo); err != nil {
			return tasklist.TodosLoadedMsg{Todos: nil}
		}
		return load()
	}
}

// updateTodo persists edits from the form, then reloads the list.
func (m Model) updateTodo(todo model.Todo) tea.Cmd {
	s := m.store
	load := m.taskList.LoadTodos()
	return func() tea.Msg {
		updates := store.TodoUpdates{
			Title:       &todo.Title,
			Description: &todo.Description,
			Completed:   &todo.Completed,
			Priority:    &todo.Priority,
			Category:    &todo.Category,
		}
		if err := s.UpdateTodo(context.Background(), todo.ID, updates); err != nil {
			return tasklist.TodosLoadedMsg{Todos: nil}
		}
		return load()
	}
}
