// ABOUTME: Tests for root app navigation, guards, and frame rendering
// ABOUTME: Uses an httptest backend so session state is resolved for real

package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/bookhaven-cli/internal/api"
	"github.com/bookhaven/bookhaven-cli/internal/notify"
	"github.com/bookhaven/bookhaven-cli/internal/session"
)

// newTestApp wires a real session manager against the given backend handler.
func newTestApp(t *testing.T, handler http.Handler, token string) (*App, *session.Manager) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewFileStore(filepath.Join(t.TempDir(), "token"))
	if token != "" {
		require.NoError(t, store.Save(token))
	}

	client := api.New(server.URL, store, zerolog.Nop())
	mgr := session.NewManager(client, store, zerolog.Nop())
	app := New(client, mgr, notify.NewService(), zerolog.Nop())
	return app, mgr
}

func profileHandler(role string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":   "u1",
			"name": "Ada",
			"role": role,
		})
	})
	return mux
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGuardedNavigationWaitsForUnresolvedSession(t *testing.T) {
	app, _ := newTestApp(t, http.NotFoundHandler(), "")

	model, _ := app.Update(key("u"))
	app = model.(*App)

	assert.Equal(t, ScreenHome, app.screen)
	assert.True(t, app.hasPending)
	assert.Equal(t, ScreenProfile, app.pendingScreen)
}

func TestPendingNavigationRedirectsAnonymousToLogin(t *testing.T) {
	app, mgr := newTestApp(t, http.NotFoundHandler(), "")

	model, _ := app.Update(key("u"))
	app = model.(*App)

	mgr.Resolve(context.Background())
	model, _ = app.Update(sessionResolvedMsg{})
	app = model.(*App)

	assert.Equal(t, ScreenLogin, app.screen)
}

func TestAdminScreenRejectsRegularUser(t *testing.T) {
	app, mgr := newTestApp(t, profileHandler(api.RoleUser), "tok-1")
	mgr.Resolve(context.Background())
	require.True(t, mgr.IsAuthenticated())

	model, _ := app.Update(key("a"))
	app = model.(*App)

	assert.Equal(t, ScreenHome, app.screen)
}

func TestAdminScreenAllowsAdmin(t *testing.T) {
	app, mgr := newTestApp(t, profileHandler(api.RoleAdmin), "tok-1")
	mgr.Resolve(context.Background())

	model, _ := app.Update(key("a"))
	app = model.(*App)

	assert.Equal(t, ScreenAddBook, app.screen)
}

func TestSessionExpiredNavigatesToLogin(t *testing.T) {
	app, mgr := newTestApp(t, profileHandler(api.RoleUser), "tok-1")
	mgr.Resolve(context.Background())
	require.True(t, mgr.SessionExpired())

	model, _ := app.Update(SessionExpiredMsg{})
	app = model.(*App)

	assert.Equal(t, ScreenLogin, app.screen)
}

func TestLoginScreenBouncesAuthenticatedUsers(t *testing.T) {
	app, mgr := newTestApp(t, profileHandler(api.RoleUser), "tok-1")
	mgr.Resolve(context.Background())

	model, _ := app.Update(key("l"))
	app = model.(*App)

	assert.Equal(t, ScreenHome, app.screen)
}

func TestFrameRendersBranding(t *testing.T) {
	app, _ := newTestApp(t, http.NotFoundHandler(), "")
	app.width = 100
	app.height = 30

	view := app.View()
	assert.Contains(t, view, "BookHaven")
	assert.Contains(t, view, "╭─")
	assert.Contains(t, view, "╰─")
}

func TestToastLifecycle(t *testing.T) {
	app, _ := newTestApp(t, http.NotFoundHandler(), "")

	model, _ := app.Update(toastMsg{toast: notify.Toast{Message: "hello", Level: notify.LevelInfo}})
	app = model.(*App)
	require.NotNil(t, app.toast)
	assert.Contains(t, app.View(), "hello")

	model, _ = app.Update(clearToastMsg{shown: app.toastShown})
	app = model.(*App)
	assert.Nil(t, app.toast)
}
