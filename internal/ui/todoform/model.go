package todoform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/evoapps/evodo/internal/model"
	"github.com/evoapps/evodo/internal/theme"
)

// TodoCreatedMsg is dispatched when a new todo is created via the form.
type TodoCreatedMsg struct {
	Todo model.Todo
}

// TodoUpdatedMsg is dispatched when an existing todo is updated via the form.
type TodoUpdatedMsg struct {
	Todo model.Todo
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	priority    string
	category    string
	completed   bool
}

// Model is the Bubble Tea model for the todo create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a new todo form model.
func New(width, height int) Model {
	return Model{
		fb: &formBindings{
			priority: model.PriorityMedium,
			category: model.CategoryPersonal,
		},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new todo.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.title = ""
	m.fb.description = ""
	m.fb.priority = model.PriorityMedium
	m.fb.category = model.CategoryPersonal
	m.fb.completed = false
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing todo.
func (m *Model) StartEdit(todo model.Todo) tea.Cmd {
	m.editMode = true
	m.editID = todo.ID
	m.fb.title = todo.Title
	m.fb.description = todo.Description
	m.fb.priority = todo.Priority
	m.fb.category = todo.Category
	m.fb.completed = todo.Completed
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the todo form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the todo form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Todo"
	if m.editMode {
		titleText = "Edit Todo"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("High", model.PriorityHigh),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("Low", model.PriorityLow),
			).
			Value(&m.fb.priority),
		huh.NewSelect[string]().
			Title("Category").
			Options(categoryOptions()...).
			Value(&m.fb.category),
	}

	if m.editMode {
		fields = append(fields,
			huh.NewConfirm().
				Title("Completed").
				Value(&m.fb.completed),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func categoryOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		opts[i] = huh.NewOption(titleCase(c), c)
	}
	return opts
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (m Model) handleSubmit() tea.Cmd {
	todo := model.Todo{
		Title:       strings.TrimSpace(m.fb.title),
		Description: m.fb.description,
		Priority:    m.fb.priority,
		Category:    m.fb.category,
		Completed:   m.fb.completed,
	}

	if m.editMode {
		todo.ID = m.editID
		return func() tea.Msg { return TodoUpdatedMsg{Todo: todo} }
	}
	return func() tea.Msg { return TodoCreatedMsg{Todo: todo} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
