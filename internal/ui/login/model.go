package login

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/evoapps/evodo/internal/auth"
	"github.com/evoapps/evodo/internal/model"
	"github.com/evoapps/evodo/internal/theme"
)

// Form modes.
const (
	modeSignIn   = "sign_in"
	modeRegister = "register"
)

// LoggedInMsg is dispatched when authentication succeeds.
type LoggedInMsg struct {
	User *model.User
}

// authResultMsg carries the outcome of a sign-in or register attempt.
type authResultMsg struct {
	user *model.User
	err  error
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	mode        string
	email       string
	displayName string
	password    string
}

// Model is the sign-in / register screen.
type Model struct {
	svc    *auth.Service
	form   *huh.Form
	fb     *formBindings
	errMsg string
	busy   bool
	width  int
	height int
}

// New creates the login screen model.
func New(svc *auth.Service, width, height int) Model {
	m := Model{
		svc:    svc,
		fb:     &formBindings{mode: modeSignIn},
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the login screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if result, ok := msg.(authResultMsg); ok {
		m.busy = false
		if result.err != nil {
			m.errMsg = result.err.Error()
			m.fb.password = ""
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		user := result.user
		return m, func() tea.Msg { return LoggedInMsg{User: user} }
	}

	if m.busy || m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		return m, m.submit()
	}
	if m.form.State == huh.StateAborted {
		return m, tea.Quit
	}

	return m, cmd
}

// submit runs the auth call for the chosen mode.
func (m Model) submit() tea.Cmd {
	svc := m.svc
	fb := *m.fb
	return func() tea.Msg {
		ctx := context.Background()
		var (
			user *model.User
			err  error
		)
		if fb.mode == modeRegister {
			user, err = svc.Register(ctx, fb.email, fb.displayName, fb.password)
		} else {
			user, err = svc.Login(ctx, fb.email, fb.password)
		}
		return authResultMsg{user: user, err: err}
	}
}

// View renders the login screen.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections := []string{titleStyle.Render("Welcome to evodo")}

	if m.errMsg != "" {
		errStyle := lipgloss.NewStyle().Foreground(theme.ColorRed)
		sections = append(sections, errStyle.Render(m.errMsg))
	}

	if m.busy {
		sections = append(sections, theme.HelpStyle.Render("Signing in..."))
	} else if m.form != nil {
		sections = append(sections, m.form.View())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the login screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Account").
				Options(
					huh.NewOption("Sign in", modeSignIn),
					huh.NewOption("Create account", modeRegister),
				).
				Value(&m.fb.mode),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email),
			huh.NewInput().
				Title("Display name").
				Placeholder("Optional, for new accounts").
				Value(&m.fb.displayName),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
		),
	).WithWidth(m.formWidth())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}
