// ABOUTME: Auth session manager: login, register, logout, and startup resolution
// ABOUTME: Owns the Anonymous/Authenticated state machine, including the 401 transition

package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bookhaven/bookhaven-cli/internal/api"
)

// Manager holds the current-user state and persists the bearer token. All
// methods are safe for concurrent use.
type Manager struct {
	api   *api.Client
	store *FileStore
	log   zerolog.Logger

	mu       sync.Mutex
	user     *api.User
	resolved bool
}

// NewManager creates a session manager over the given client and token store.
func NewManager(client *api.Client, store *FileStore, log zerolog.Logger) *Manager {
	return &Manager{api: client, store: store, log: log}
}

// Login authenticates against the backend, persists the opaque token, and
// transitions the session to Authenticated.
func (m *Manager) Login(ctx context.Context, email, password string) (*api.User, error) {
	result, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := m.store.Save(result.Token); err != nil {
		return nil, err
	}

	m.mu.Lock()
	user := result.User
	m.user = &user
	m.resolved = true
	m.mu.Unlock()

	m.log.Info().Str("email", email).Msg("logged in")
	return &user, nil
}

// Register creates an account server-side. It does not establish a session;
// the caller must log in separately.
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	return m.api.Register(ctx, name, email, password)
}

// Logout invalidates the server-side session best-effort and always clears
// the local token, regardless of the network outcome.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.api.Logout(ctx); err != nil {
		m.log.Warn().Err(err).Msg("server logout failed; clearing local session anyway")
	}

	m.mu.Lock()
	m.user = nil
	m.resolved = true
	m.mu.Unlock()

	return m.store.Clear()
}

// Resolve validates a persisted token at startup by fetching the profile.
// On any failure the token is cleared and the session stays Anonymous.
// Guards must treat the session as loading until this has run.
func (m *Manager) Resolve(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.resolved = true
		m.mu.Unlock()
	}()

	if _, ok := m.store.Token(); !ok {
		return
	}

	profile, err := m.api.GetProfile(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("stored token rejected; clearing session")
		if err := m.store.Clear(); err != nil {
			m.log.Error().Err(err).Msg("failed to clear stored token")
		}
		return
	}

	m.mu.Lock()
	user := profile.User
	m.user = &user
	m.mu.Unlock()
}

// SessionExpired is the central 401 transition: any authenticated state is
// torn down and the token cleared. It reports whether a transition actually
// happened so navigation fires exactly once under concurrent failures.
func (m *Manager) SessionExpired() bool {
	m.mu.Lock()
	hadUser := m.user != nil
	m.user = nil
	m.resolved = true
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.Error().Err(err).Msg("failed to clear stored token")
	}
	if hadUser {
		m.log.Info().Msg("session expired")
	}
	return hadUser
}

// Current returns the cached session user, or nil when Anonymous.
func (m *Manager) Current() *api.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}

// IsAuthenticated reports whether a validated session is present.
func (m *Manager) IsAuthenticated() bool {
	return m.Current() != nil
}

// Role returns the current user's role, or the empty string when Anonymous.
func (m *Manager) Role() string {
	if user := m.Current(); user != nil {
		return user.Role
	}
	return ""
}

// IsAdmin reports whether the current user has the admin role.
func (m *Manager) IsAdmin() bool {
	return m.Role() == api.RoleAdmin
}

// Resolved reports whether the startup session check has completed.
func (m *Manager) Resolved() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolved
}
