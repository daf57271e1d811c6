// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, guards, toasts, and routes input to child screens

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/bookhaven/bookhaven-cli/internal/api"
	"github.com/bookhaven/bookhaven-cli/internal/notify"
	"github.com/bookhaven/bookhaven-cli/internal/session"
	"github.com/bookhaven/bookhaven-cli/internal/tui/addbook"
	"github.com/bookhaven/bookhaven-cli/internal/tui/bookdetail"
	"github.com/bookhaven/bookhaven-cli/internal/tui/books"
	"github.com/bookhaven/bookhaven-cli/internal/tui/home"
	"github.com/bookhaven/bookhaven-cli/internal/tui/icons"
	"github.com/bookhaven/bookhaven-cli/internal/tui/login"
	"github.com/bookhaven/bookhaven-cli/internal/tui/profile"
	"github.com/bookhaven/bookhaven-cli/internal/tui/register"
	"github.com/bookhaven/bookhaven-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenHome Screen = iota
	ScreenBooks
	ScreenBookDetail
	ScreenLogin
	ScreenRegister
	ScreenProfile
	ScreenAddBook
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before truncating the frame
	toastDuration    = 4 * time.Second
)

// SessionExpiredMsg is sent from outside the event loop when the backend
// rejects the bearer token. The app tears down to the login screen.
type SessionExpiredMsg struct{}

// sessionResolvedMsg is sent when the startup session check completes
type sessionResolvedMsg struct{}

// toastMsg delivers a notification to the overlay
type toastMsg struct {
	toast notify.Toast
}

// clearToastMsg hides the current toast
type clearToastMsg struct {
	shown time.Time
}

// App is the root model for the TUI
type App struct {
	client   *api.Client
	sessions *session.Manager
	toasts   *notify.Service
	log      zerolog.Logger

	screen Screen
	width  int
	height int

	// Deferred navigation while the session check is still running.
	pendingScreen Screen
	hasPending    bool

	// Where BackMsg from the detail screen returns to.
	listScreen Screen

	toast      *notify.Toast
	toastShown time.Time
	toastCh    <-chan notify.Toast

	// Child models
	home      *home.Home
	books     *books.Books
	detail    *bookdetail.Detail
	loginView *login.Login
	regView   *register.Register
	profView  *profile.Profile
	addView   *addbook.AddBook
}

// New creates a new TUI application
func New(client *api.Client, sessions *session.Manager, toasts *notify.Service, log zerolog.Logger) *App {
	return &App{
		client:     client,
		sessions:   sessions,
		toasts:     toasts,
		log:        log,
		screen:     ScreenHome,
		listScreen: ScreenHome,
		toastCh:    toasts.Subscribe(),
		home:       home.New(client),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.resolveSession(), a.waitForToast(), a.home.Init())
}

// resolveSession validates any persisted token before guarded navigation runs.
func (a *App) resolveSession() tea.Cmd {
	return func() tea.Msg {
		a.sessions.Resolve(context.Background())
		return sessionResolvedMsg{}
	}
}

// waitForToast blocks on the notification channel and re-arms after each one.
func (a *App) waitForToast() tea.Cmd {
	return func() tea.Msg {
		return toastMsg{toast: <-a.toastCh}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.forwardToActive(msg)

	case sessionResolvedMsg:
		if a.hasPending {
			target := a.pendingScreen
			a.hasPending = false
			return a.navigate(target)
		}
		return a, nil

	case SessionExpiredMsg:
		a.toasts.Publish("Your session has expired. Please login again.", notify.LevelWarning)
		return a.navigate(ScreenLogin)

	case toastMsg:
		a.toast = &msg.toast
		a.toastShown = time.Now()
		shown := a.toastShown
		return a, tea.Batch(a.waitForToast(), tea.Tick(toastDuration, func(time.Time) tea.Msg {
			return clearToastMsg{shown: shown}
		}))

	case clearToastMsg:
		// A newer toast restarts the clock; only the matching tick clears.
		if a.toast != nil && msg.shown.Equal(a.toastShown) {
			a.toast = nil
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKey(msg)

	case home.OpenBookMsg:
		a.listScreen = ScreenHome
		return a.openBook(msg.ID)

	case books.OpenBookMsg:
		a.listScreen = ScreenBooks
		return a.openBook(msg.ID)

	case bookdetail.BackMsg:
		return a.navigate(a.listScreen)

	case login.LoggedInMsg:
		a.loginView = nil
		if a.hasPending {
			target := a.pendingScreen
			a.hasPending = false
			return a.navigate(target)
		}
		return a.navigate(ScreenHome)

	case login.CancelledMsg:
		a.loginView = nil
		a.hasPending = false
		return a.navigate(ScreenHome)

	case register.RegisteredMsg:
		a.regView = nil
		a.loginView = login.New(a.sessions, a.toasts, msg.Email)
		a.screen = ScreenLogin
		return a, a.loginView.Init()

	case register.CancelledMsg:
		a.regView = nil
		return a.navigate(ScreenHome)

	case profile.BackMsg:
		return a.navigate(ScreenHome)

	case addbook.BookAddedMsg:
		a.addView = nil
		a.listScreen = ScreenHome
		return a.openBook(msg.ID)

	case addbook.CancelledMsg:
		a.addView = nil
		return a.navigate(ScreenHome)

	default:
		// Async results and form internals belong to the active child.
		return a, a.forwardToActive(msg)
	}
}

// handleKey routes keyboard input. Screens with an open form get every key;
// otherwise navigation keys are handled here and the rest delegated.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenHome:
		return a.updateHome(msg)
	case ScreenBooks:
		return a.updateBooks(msg)
	case ScreenBookDetail:
		return a.updateDetail(msg)
	case ScreenProfile:
		return a.updateProfile(msg)
	case ScreenLogin, ScreenRegister, ScreenAddBook:
		return a, a.forwardToActive(msg)
	}
	return a, nil
}

func (a *App) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b":
		return a.navigate(ScreenBooks)
	case "l":
		if !a.sessions.IsAuthenticated() {
			return a.navigate(ScreenLogin)
		}
	case "o":
		if a.sessions.IsAuthenticated() {
			return a, a.logout()
		}
	case "s":
		if !a.sessions.IsAuthenticated() {
			return a.navigate(ScreenRegister)
		}
	case "u":
		return a.navigate(ScreenProfile)
	case "a":
		return a.navigate(ScreenAddBook)
	}
	return a, a.forwardToActive(msg)
}

func (a *App) updateBooks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.books != nil && a.books.FormActive() {
		return a, a.forwardToActive(msg)
	}
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "esc", "h":
		return a.navigate(ScreenHome)
	}
	return a, a.forwardToActive(msg)
}

func (a *App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.detail != nil && a.detail.FormActive() {
		return a, a.forwardToActive(msg)
	}
	if msg.String() == "q" {
		return a, tea.Quit
	}
	return a, a.forwardToActive(msg)
}

func (a *App) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.profView != nil && a.profView.FormActive() {
		return a, a.forwardToActive(msg)
	}
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "o":
		return a, a.logout()
	}
	return a, a.forwardToActive(msg)
}

// forwardToActive delegates a message to the current screen's child model.
func (a *App) forwardToActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenHome:
		if a.home != nil {
			var model tea.Model
			model, cmd = a.home.Update(msg)
			a.home = model.(*home.Home)
		}
	case ScreenBooks:
		if a.books != nil {
			var model tea.Model
			model, cmd = a.books.Update(msg)
			a.books = model.(*books.Books)
		}
	case ScreenBookDetail:
		if a.detail != nil {
			var model tea.Model
			model, cmd = a.detail.Update(msg)
			a.detail = model.(*bookdetail.Detail)
		}
	case ScreenLogin:
		if a.loginView != nil {
			var model tea.Model
			model, cmd = a.loginView.Update(msg)
			a.loginView = model.(*login.Login)
		}
	case ScreenRegister:
		if a.regView != nil {
			var model tea.Model
			model, cmd = a.regView.Update(msg)
			a.regView = model.(*register.Register)
		}
	case ScreenProfile:
		if a.profView != nil {
			var model tea.Model
			model, cmd = a.profView.Update(msg)
			a.profView = model.(*profile.Profile)
		}
	case ScreenAddBook:
		if a.addView != nil {
			var model tea.Model
			model, cmd = a.addView.Update(msg)
			a.addView = model.(*addbook.AddBook)
		}
	}
	return cmd
}

// navigate switches to the target screen, enforcing its guard first.
func (a *App) navigate(target Screen) (tea.Model, tea.Cmd) {
	guard := guardFor(target)
	decision := guard.Check(a.sessions.Resolved(), a.sessions.IsAuthenticated(), a.sessions.IsAdmin())

	switch decision {
	case DecisionWait:
		// Session check still running; finish navigation when it resolves.
		a.pendingScreen = target
		a.hasPending = true
		return a, nil

	case DecisionRedirect:
		if a.sessions.IsAuthenticated() {
			// Authenticated but missing the admin role.
			a.toasts.Publish("You don't have permission to access that page", notify.LevelError)
			return a.navigate(ScreenHome)
		}
		a.toasts.Publish("Please login to continue", notify.LevelWarning)
		a.pendingScreen = target
		a.hasPending = true
		target = ScreenLogin
	}

	// Login and register bounce already-authenticated users home.
	if (target == ScreenLogin || target == ScreenRegister) && a.sessions.IsAuthenticated() {
		target = ScreenHome
	}

	a.screen = target
	switch target {
	case ScreenHome:
		a.home = home.New(a.client)
		return a, a.home.Init()
	case ScreenBooks:
		a.books = books.New(a.client)
		return a, a.books.Init()
	case ScreenLogin:
		a.loginView = login.New(a.sessions, a.toasts, "")
		return a, a.loginView.Init()
	case ScreenRegister:
		a.regView = register.New(a.sessions, a.toasts)
		return a, a.regView.Init()
	case ScreenProfile:
		a.profView = profile.New(a.client, a.toasts)
		return a, a.profView.Init()
	case ScreenAddBook:
		a.addView = addbook.New(a.client, a.toasts)
		return a, a.addView.Init()
	}
	return a, nil
}

// openBook switches to the detail screen for the given book.
func (a *App) openBook(id string) (tea.Model, tea.Cmd) {
	a.screen = ScreenBookDetail
	a.detail = bookdetail.New(a.client, a.sessions, a.toasts, id)
	return a, a.detail.Init()
}

// logout clears the session and reports the outcome as a toast.
func (a *App) logout() tea.Cmd {
	return func() tea.Msg {
		if err := a.sessions.Logout(context.Background()); err != nil {
			a.log.Warn().Err(err).Msg("logout cleanup failed")
		}
		a.toasts.Publish("You have been logged out", notify.LevelInfo)
		return nil
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenHome:
		if a.home != nil {
			content = a.home.View()
		}
	case ScreenBooks:
		if a.books != nil {
			content = a.books.View()
		}
	case ScreenBookDetail:
		if a.detail != nil {
			content = a.detail.View()
		}
	case ScreenLogin:
		if a.loginView != nil {
			content = a.loginView.View()
		}
	case ScreenRegister:
		if a.regView != nil {
			content = a.regView.View()
		}
	case ScreenProfile:
		if a.profView != nil {
			content = a.profView.View()
		}
	case ScreenAddBook:
		if a.addView != nil {
			content = a.addView.View()
		}
	}

	return a.wrapWithFrame(content)
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("BookHaven"))

	rightText := ""
	if user := a.sessions.Current(); user != nil {
		badge := icons.User.String()
		if user.Role == api.RoleAdmin {
			badge = icons.Admin.String()
		}
		rightText = contextStyle.Render(badge+" "+user.Name) + " "
	}

	leftRendered := lipgloss.NewStyle().Render(leftText)
	rightRendered := lipgloss.NewStyle().Align(lipgloss.Right).Render(rightText)

	fillWidth := width - 4 - lipgloss.Width(leftRendered) - lipgloss.Width(rightRendered)
	if fillWidth < 0 {
		fillWidth = 0
	}
	fill := strings.Repeat("─", fillWidth)

	return borderStyle.Render("╭─" + leftRendered + fill + rightRendered + "─╮")
}

// renderFooter creates the footer with keyboard shortcuts for the screen
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenHome:
		shortcuts = []string{"↑↓ Navigate", "Enter Open", "b Browse", "u Profile"}
		if a.sessions.IsAuthenticated() {
			if a.sessions.IsAdmin() {
				shortcuts = append(shortcuts, "a Add book")
			}
			shortcuts = append(shortcuts, "o Logout")
		} else {
			shortcuts = append(shortcuts, "l Login", "s Sign up")
		}
		shortcuts = append(shortcuts, "q Quit")
	case ScreenBooks:
		shortcuts = []string{"↑↓ Navigate", "Enter Open", "f Filter", "c Clear", "n/p Page", "h Home", "q Quit"}
	case ScreenBookDetail:
		shortcuts = []string{"w Write review", "n/p Reviews", "b Back", "q Quit"}
	case ScreenLogin, ScreenRegister, ScreenAddBook:
		shortcuts = []string{"Tab Next field", "Enter Confirm", "Esc Cancel"}
	case ScreenProfile:
		shortcuts = []string{"Tab Switch tab", "e Edit", "d Delete review", "b Back", "q Quit"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	fillWidth := width - 4 - lipgloss.Width(leftPlainText)
	if fillWidth < 0 {
		fillWidth = 0
	}
	fill := strings.Repeat("─", fillWidth)

	return borderStyle.Render("╰─" + leftText + fill + "─╯")
}

// renderToast renders the active notification, if any.
func (a *App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	var style lipgloss.Style
	var icon string
	switch a.toast.Level {
	case notify.LevelSuccess:
		style, icon = styles.ToastSuccess, icons.CheckOK.String()
	case notify.LevelWarning:
		style, icon = styles.ToastWarning, icons.Warning.String()
	case notify.LevelError:
		style, icon = styles.ToastError, icons.Critical.String()
	default:
		style, icon = styles.ToastInfo, icons.Info.String()
	}
	return style.Render(icon + " " + a.toast.Message)
}

// Run starts the TUI. It wires the API client's 401 handler so an expired
// token lands the user on the login screen exactly once.
func Run(client *api.Client, sessions *session.Manager, toasts *notify.Service, log zerolog.Logger) error {
	app := New(client, sessions, toasts, log)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)

	client.SetUnauthorizedHandler(func() {
		if sessions.SessionExpired() {
			p.Send(SessionExpiredMsg{})
		}
	})

	_, err := p.Run()
	return err
}

// wrapWithFrame wraps content with header, toast overlay, and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	if toast := a.renderToast(); toast != "" {
		sb.WriteString(toast)
		sb.WriteString("\n")
	}
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}
