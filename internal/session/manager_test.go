// ABOUTME: Tests for the auth session manager state machine
// ABOUTME: Covers login, best-effort logout, startup resolution, and 401 idempotence

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/bookhaven-cli/internal/api"
)

type backendOpts struct {
	loginStatus   int
	logoutStatus  int
	profileStatus int
}

func newTestManager(t *testing.T, opts backendOpts) (*Manager, *FileStore) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if opts.loginStatus != 0 {
			w.WriteHeader(opts.loginStatus)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-abc",
			"user":  map[string]string{"_id": "u1", "name": "Ada", "email": "ada@example.com", "role": "user"},
		})
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		status := opts.logoutStatus
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
	})
	mux.HandleFunc("/users/profile", func(w http.ResponseWriter, r *http.Request) {
		if opts.profileStatus != 0 {
			w.WriteHeader(opts.profileStatus)
			json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"_id": "u1", "name": "Ada", "email": "ada@example.com", "role": "admin", "reviewCount": 3})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store := NewFileStore(filepath.Join(t.TempDir(), "token"))
	client := api.New(server.URL, store, zerolog.Nop())
	mgr := NewManager(client, store, zerolog.Nop())
	client.SetUnauthorizedHandler(func() { mgr.SessionExpired() })
	return mgr, store
}

func TestLoginPersistsTokenAndSession(t *testing.T) {
	mgr, store := newTestManager(t, backendOpts{})

	user, err := mgr.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, mgr.IsAuthenticated())
	assert.Equal(t, "user", mgr.Role())

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-abc", token)
}

func TestLoginInvalidCredentials(t *testing.T) {
	mgr, store := newTestManager(t, backendOpts{loginStatus: http.StatusUnauthorized})

	_, err := mgr.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, api.IsAuth(err))
	assert.False(t, mgr.IsAuthenticated())

	_, ok := store.Token()
	assert.False(t, ok)
}

func TestLogoutClearsTokenEvenWhenServerFails(t *testing.T) {
	mgr, store := newTestManager(t, backendOpts{logoutStatus: http.StatusInternalServerError})

	_, err := mgr.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, mgr.Logout(context.Background()))
	assert.False(t, mgr.IsAuthenticated())

	_, ok := store.Token()
	assert.False(t, ok, "local token must be cleared regardless of server outcome")
}

func TestResolveWithoutToken(t *testing.T) {
	mgr, _ := newTestManager(t, backendOpts{})

	assert.False(t, mgr.Resolved())
	mgr.Resolve(context.Background())
	assert.True(t, mgr.Resolved())
	assert.False(t, mgr.IsAuthenticated())
	assert.Nil(t, mgr.Current())
}

func TestResolveValidToken(t *testing.T) {
	mgr, store := newTestManager(t, backendOpts{})
	require.NoError(t, store.Save("tok-abc"))

	mgr.Resolve(context.Background())
	assert.True(t, mgr.Resolved())
	require.True(t, mgr.IsAuthenticated())
	assert.True(t, mgr.IsAdmin())
}

func TestResolveRejectedTokenClears(t *testing.T) {
	mgr, store := newTestManager(t, backendOpts{profileStatus: http.StatusUnauthorized})
	require.NoError(t, store.Save("stale"))

	mgr.Resolve(context.Background())
	assert.True(t, mgr.Resolved())
	assert.False(t, mgr.IsAuthenticated())

	_, ok := store.Token()
	assert.False(t, ok)
}

func TestSessionExpiredIdempotentUnderConcurrency(t *testing.T) {
	mgr, store := newTestManager(t, backendOpts{})
	_, err := mgr.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- mgr.SessionExpired()
		}()
	}
	wg.Wait()
	close(results)

	transitions := 0
	for r := range results {
		if r {
			transitions++
		}
	}
	assert.Equal(t, 1, transitions, "exactly one caller may observe the Authenticated→Anonymous transition")
	assert.False(t, mgr.IsAuthenticated())

	_, ok := store.Token()
	assert.False(t, ok)
}
