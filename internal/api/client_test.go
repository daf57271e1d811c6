// ABOUTME: Tests for the HTTP client adapter
// ABOUTME: Uses httptest to mock backend responses

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory TokenStore for tests.
type fakeStore struct {
	mu     sync.Mutex
	token  string
	clears int
}

func (s *fakeStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *fakeStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.clears++
	return nil
}

func emptyPage() BookPage {
	return BookPage{Data: []Book{}, Pagination: Pagination{TotalPages: 1, CurrentPage: 1, Limit: 10}}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(emptyPage())
	}))
	defer server.Close()

	c := New(server.URL, &fakeStore{token: "tok-123"}, zerolog.Nop())
	_, err := c.ListBooks(context.Background(), 1, 10, BookFilters{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestNoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(emptyPage())
	}))
	defer server.Close()

	c := New(server.URL, &fakeStore{}, zerolog.Nop())
	_, err := c.ListBooks(context.Background(), 1, 10, BookFilters{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedClearsTokenAndFiresHandler(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))
	defer server.Close()

	store := &fakeStore{token: "stale"}
	c := New(server.URL, store, zerolog.Nop())

	handled := 0
	c.SetUnauthorizedHandler(func() { handled++ })

	_, err := c.GetProfile(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuth(err))

	_, ok := store.Token()
	assert.False(t, ok, "token should be cleared synchronously on 401")
	assert.Equal(t, 1, handled)
}

func TestErrorKindMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   Kind
	}{
		{"not found", http.StatusNotFound, KindNotFound},
		{"server error", http.StatusInternalServerError, KindServer},
		{"bad request", http.StatusBadRequest, KindServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]string{"message": "nope"})
			}))
			defer server.Close()

			c := New(server.URL, &fakeStore{}, zerolog.Nop())
			_, err := c.GetBook(context.Background(), "b1")
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.want, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "nope", apiErr.Message)
		})
	}
}

func TestNetworkErrorKind(t *testing.T) {
	// Closed server: connection refused, no response received.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := New(server.URL, &fakeStore{}, zerolog.Nop())
	_, err := c.GetBook(context.Background(), "b1")
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(emptyPage())
	}))
	defer server.Close()

	c := New(server.URL, &fakeStore{}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListBooks(ctx, 1, 10, BookFilters{})
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.Contains(t, err.Error(), "canceled")
}

func TestFailuresAreRecorded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "boom"})
	}))
	defer server.Close()

	var sink testSink
	log := zerolog.New(&sink)

	c := New(server.URL, &fakeStore{}, log)
	_, err := c.GetBook(context.Background(), "b1")
	require.Error(t, err)
	assert.Contains(t, sink.String(), "api response error")
	assert.Contains(t, sink.String(), "boom")
}

type testSink struct {
	mu  sync.Mutex
	buf []byte
}

func (s *testSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func (s *testSink) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.buf)
}
