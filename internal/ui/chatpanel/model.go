package chatpanel

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evoapps/evodo/internal/chat"
	"github.com/evoapps/evodo/internal/keys"
	"github.com/evoapps/evodo/internal/model"
	"github.com/evoapps/evodo/internal/store"
	"github.com/evoapps/evodo/internal/theme"
)

// CloseMsg signals the parent to close the chat panel.
type CloseMsg struct{}

// ResponseMsg carries the assistant's reply to the last command.
// TodosChanged is true when the command mutated the todo list, so the
// parent can refresh other views.
type ResponseMsg struct {
	Response     string
	TodosChanged bool
}

// HistoryLoadedMsg carries the persisted transcript for the signed-in user.
type HistoryLoadedMsg struct {
	Messages []model.ChatMessage
}

// displayMessage represents a message rendered in the conversation viewport.
type displayMessage struct {
	Role    string
	Content string
}

// Model is the chat panel Bubble Tea model. It feeds typed commands
// through the rule engine, applies the resulting actions to the store,
// and persists the transcript.
type Model struct {
	engine        *chat.Engine
	store         store.Store
	userID        string
	assistantName string
	historyLimit  int
	input         textinput.Model
	viewport      viewport.Model
	messages      []displayMessage
	pending       bool
	keys          *keys.KeyMap
	width         int
	height        int
}

// New creates a new chat panel model.
func New(
	engine *chat.Engine,
	s store.Store,
	k *keys.KeyMap,
	userID string,
	assistantName string,
	historyLimit int,
	width, height int,
) Model {
	ti := textinput.New()
	ti.Placeholder = "add buy milk tomorrow, complete laundry, show stats..."
	ti.Prompt = "> "
	ti.CharLimit = 500
	ti.Width = width - 6
	ti.Focus()

	vpHeight := height - 7 // space for title, input, borders
	if vpHeight < 4 {
		vpHeight = 4
	}

	vp := viewport.New(width-4, vpHeight)
	vp.Style = lipgloss.NewStyle()

	return Model{
		engine:        engine,
		store:         s,
		userID:        userID,
		assistantName: assistantName,
		historyLimit:  historyLimit,
		input:         ti,
		viewport:      vp,
		messages:      make([]displayMessage, 0),
		keys:          k,
		width:         width,
		height:        height,
	}
}

// Init loads the persisted transcript.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadHistory())
}

// Update handles messages for the chat panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case HistoryLoadedMsg:
		m.messages = m.messages[:0]
		for _, cm := range msg.Messages {
			m.messages = append(m.messages, displayMessage{
				Role:    cm.Role,
				Content: cm.Content,
			})
		}
		if len(m.messages) == 0 {
			m.messages = append(m.messages, displayMessage{
				Role:    model.ChatRoleAssistant,
				Content: m.welcome(),
			})
		}
		m.refreshViewport()
		return m, nil

	case ResponseMsg:
		m.pending = false
		m.messages = append(m.messages, displayMessage{
			Role:    model.ChatRoleAssistant,
			Content: msg.Response,
		})
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmds []tea.Cmd

	var tiCmd tea.Cmd
	m.input, tiCmd = m.input.Update(msg)
	if tiCmd != nil {
		cmds = append(cmds, tiCmd)
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	if vpCmd != nil {
		cmds = append(cmds, vpCmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input for the chat panel.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return CloseMsg{} }

	case "ctrl+l":
		cmd := m.Clear()
		return m, cmd

	case "enter":
		if m.pending {
			return m, nil
		}

		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}

		m.input.Reset()
		m.messages = append(m.messages, displayMessage{
			Role:    model.ChatRoleUser,
			Content: text,
		})
		m.pending = true
		m.refreshViewport()

		return m, m.sendCmd(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// sendCmd returns a command that runs the text through the engine,
// applies any resulting action, and persists both sides of the exchange.
func (m Model) sendCmd(text string) tea.Cmd {
	s := m.store
	eng := m.engine
	userID := m.userID
	return func() tea.Msg {
		ctx := context.Background()

		if err := s.AppendChatMessage(ctx, model.ChatMessage{
			UserID: userID, Role: model.ChatRoleUser, Content: text,
		}); err != nil {
			return ResponseMsg{Response: fmt.Sprintf("Something went wrong: %v", err)}
		}

		todos, err := s.GetTodos(ctx, store.TodoFilter{UserID: &userID, SortBy: "newest"})
		if err != nil {
			return ResponseMsg{Response: fmt.Sprintf("Something went wrong: %v", err)}
		}
		stats, err := s.GetStats(ctx, userID)
		if err != nil {
			return ResponseMsg{Response: fmt.Sprintf("Something went wrong: %v", err)}
		}

		result := eng.Process(text, todos, stats)

		changed, err := ApplyAction(ctx, s, userID, result.Action)
		if err != nil {
			return ResponseMsg{Response: fmt.Sprintf("Something went wrong: %v", err)}
		}

		if err := s.AppendChatMessage(ctx, model.ChatMessage{
			UserID: userID, Role: model.ChatRoleAssistant, Content: result.Response,
		}); err != nil {
			return ResponseMsg{Response: result.Response, TodosChanged: changed}
		}

		return ResponseMsg{Response: result.Response, TodosChanged: changed}
	}
}

// loadHistory returns a command that loads the persisted transcript.
func (m Model) loadHistory() tea.Cmd {
	s := m.store
	userID := m.userID
	limit := m.historyLimit
	return func() tea.Msg {
		msgs, err := s.GetChatHistory(context.Background(), userID, limit)
		if err != nil {
			return HistoryLoadedMsg{Messages: nil}
		}
		return HistoryLoadedMsg{Messages: msgs}
	}
}

// welcome is the first assistant line shown on an empty transcript.
func (m Model) welcome() string {
	return fmt.Sprintf(
		"Hey! I'm %s, your to-do assistant. 👋\n"+
			"Tell me things like \"add buy milk tomorrow\" or \"show my tasks\".\n"+
			"Type \"help\" for everything I understand.",
		m.assistantName,
	)
}

// refreshViewport re-renders the conversation content and scrolls to bottom.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

// renderConversation builds the conversation display string.
func (m Model) renderConversation() string {
	var sections []string

	contentStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	for _, msg := range m.messages {
		var label string
		if msg.Role == model.ChatRoleUser {
			label = theme.ChatUserStyle.Render("You:")
		} else {
			label = theme.ChatAssistantStyle.Render(m.assistantName + ":")
		}

		sections = append(sections, label)
		sections = append(sections, contentStyle.Render(msg.Content))
		sections = append(sections, "")
	}

	if m.pending {
		sections = append(sections, theme.HelpStyle.Render("..."))
	}

	return strings.Join(sections, "\n")
}

// View renders the chat panel.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render(m.assistantName)

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	sepWidth := m.width - 6
	if sepWidth > 80 {
		sepWidth = 80
	}
	if sepWidth < 1 {
		sepWidth = 1
	}
	separator := sepStyle.Render(strings.Repeat("─", sepWidth))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.viewport.View(),
		separator,
		m.input.View(),
	)

	return theme.BorderStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the chat panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6

	vpHeight := height - 7
	if vpHeight < 4 {
		vpHeight = 4
	}
	m.viewport.Width = width - 4
	m.viewport.Height = vpHeight
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Clear wipes the persisted transcript and resets the panel.
func (m *Model) Clear() tea.Cmd {
	s := m.store
	userID := m.userID
	m.messages = m.messages[:0]
	m.pending = false
	m.input.Reset()
	m.refreshViewport()
	return func() tea.Msg {
		_ = s.ClearChatHistory(context.Background(), userID)
		return HistoryLoadedMsg{Messages: nil}
	}
}
