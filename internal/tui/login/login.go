// ABOUTME: Login screen backed by a huh form
// ABOUTME: Emits LoggedInMsg on success so the app can navigate away

package login

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bookhaven/bookhaven-cli/internal/api"
	"github.com/bookhaven/bookhaven-cli/internal/notify"
	"github.com/bookhaven/bookhaven-cli/internal/session"
	"github.com/bookhaven/bookhaven-cli/internal/tui/icons"
	"github.com/bookhaven/bookhaven-cli/internal/tui/styles"
)

// LoggedInMsg is sent when authentication succeeds.
type LoggedInMsg struct {
	User api.User
}

// CancelledMsg is sent when the user backs out of the login form.
type CancelledMsg struct{}

// doneMsg is sent when the login network call completes
type doneMsg struct {
	user *api.User
	err  error
}

// Login is the login screen model.
type Login struct {
	sessions *session.Manager
	toasts   *notify.Service

	form       *huh.Form
	email      string
	password   string
	submitting bool
	width      int
}

// New creates the login screen. The email field may be prefilled, e.g. after
// a fresh registration.
func New(sessions *session.Manager, toasts *notify.Service, email string) *Login {
	l := &Login{sessions: sessions, toasts: toasts, email: email}
	l.form = l.newForm()
	return l
}

func (l *Login) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&l.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		).Title(icons.Login.String() + " Login to BookHaven"),
	).WithTheme(styles.FormTheme())
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(s, "@") {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width

	case doneMsg:
		l.submitting = false
		if msg.err != nil {
			l.toasts.Publish(loginFailureMessage(msg.err), notify.LevelError)
			l.password = ""
			l.form = l.newForm()
			return l, l.form.Init()
		}
		l.toasts.Publish("Login successful!", notify.LevelSuccess)
		user := *msg.user
		return l, func() tea.Msg { return LoggedInMsg{User: user} }

	case tea.KeyMsg:
		if msg.String() == "esc" && !l.submitting {
			return l, func() tea.Msg { return CancelledMsg{} }
		}
	}

	if l.submitting {
		return l, nil
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.submitting = true
		email, password := strings.TrimSpace(l.email), l.password
		return l, func() tea.Msg {
			user, err := l.sessions.Login(context.Background(), email, password)
			return doneMsg{user: user, err: err}
		}
	}
	return l, cmd
}

func loginFailureMessage(err error) string {
	if api.IsAuth(err) {
		return "Invalid email or password"
	}
	if api.IsNetwork(err) {
		return "Could not reach the server. Please try again."
	}
	return err.Error()
}

// View implements tea.Model
func (l *Login) View() string {
	if l.submitting {
		return styles.Subtitle.Render("Signing in...")
	}
	return l.form.View()
}
