// ABOUTME: Account registration screen backed by a huh form
// ABOUTME: On success sends the user to the login screen with the email prefilled

package register

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bookhaven/bookhaven-cli/internal/notify"
	"github.com/bookhaven/bookhaven-cli/internal/session"
	"github.com/bookhaven/bookhaven-cli/internal/tui/icons"
	"github.com/bookhaven/bookhaven-cli/internal/tui/styles"
)

const minPasswordLength = 6

// RegisteredMsg is sent when the account has been created.
type RegisteredMsg struct {
	Email string
}

// CancelledMsg is sent when the user backs out of the registration form.
type CancelledMsg struct{}

// doneMsg is sent when the registration network call completes
type doneMsg struct {
	err error
}

// Register is the registration screen model.
type Register struct {
	sessions *session.Manager
	toasts   *notify.Service

	form       *huh.Form
	name       string
	email      string
	password   string
	confirm    string
	submitting bool
	width      int
}

// New creates the registration screen.
func New(sessions *session.Manager, toasts *notify.Service) *Register {
	r := &Register{sessions: sessions, toasts: toasts}
	r.form = r.newForm()
	return r
}

func (r *Register) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Your full name").
				Value(&r.name).
				Validate(required("name")),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&r.email).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return fmt.Errorf("email is required")
					}
					if !strings.Contains(s, "@") {
						return fmt.Errorf("enter a valid email address")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				Description(fmt.Sprintf("At least %d characters", minPasswordLength)).
				EchoMode(huh.EchoModePassword).
				Value(&r.password).
				Validate(func(s string) error {
					if len(s) < minPasswordLength {
						return fmt.Errorf("password must be at least %d characters", minPasswordLength)
					}
					return nil
				}),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&r.confirm).
				Validate(func(s string) error {
					if s != r.password {
						return fmt.Errorf("passwords do not match")
					}
					return nil
				}),
		).Title(icons.User.String() + " Create an Account"),
	).WithTheme(styles.FormTheme())
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// Init implements tea.Model
func (r *Register) Init() tea.Cmd {
	return r.form.Init()
}

// Update implements tea.Model
func (r *Register) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width

	case doneMsg:
		r.submitting = false
		if msg.err != nil {
			r.toasts.Publish("Registration failed: "+msg.err.Error(), notify.LevelError)
			r.password = ""
			r.confirm = ""
			r.form = r.newForm()
			return r, r.form.Init()
		}
		r.toasts.Publish("Registration successful! You can now login.", notify.LevelSuccess)
		email := strings.TrimSpace(r.email)
		return r, func() tea.Msg { return RegisteredMsg{Email: email} }

	case tea.KeyMsg:
		if msg.String() == "esc" && !r.submitting {
			return r, func() tea.Msg { return CancelledMsg{} }
		}
	}

	if r.submitting {
		return r, nil
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		r.submitting = true
		name := strings.TrimSpace(r.name)
		email := strings.TrimSpace(r.email)
		password := r.password
		return r, func() tea.Msg {
			return doneMsg{err: r.sessions.Register(context.Background(), name, email, password)}
		}
	}
	return r, cmd
}

// View implements tea.Model
func (r *Register) View() string {
	if r.submitting {
		return styles.Subtitle.Render("Creating your account...")
	}
	return r.form.View()
}
