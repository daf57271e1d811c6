// ABOUTME: Tests for the login, whoami, and register commands
// ABOUTME: Exercises session persistence and exit codes against a fake backend

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func authBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "secret123" {
			http.Error(w, `{"message":"Invalid credentials"}`, http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-abc",
			"user":  map[string]string{"id": "u1", "name": "Ada", "email": creds["email"], "role": "user"},
		})
	})
	mux.HandleFunc("/users/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-abc" {
			http.Error(w, `{"message":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "u1", "name": "Ada", "email": "ada@example.com", "role": "user"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLoginCommand_Success(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	server := authBackend(t)

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, "ada@example.com", "secret123")

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Ada") {
		t.Error("expected user name in output")
	}

	token, err := os.ReadFile(filepath.Join(configDir, "bookhaven", "token"))
	if err != nil {
		t.Fatalf("expected token file: %v", err)
	}
	if strings.TrimSpace(string(token)) != "tok-abc" {
		t.Errorf("expected persisted token, got %q", token)
	}
}

func TestLoginCommand_InvalidCredentials(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	server := authBackend(t)

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, "ada@example.com", "wrong")

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "invalid email or password") {
		t.Error("expected credential error in output")
	}
}

func TestLoginCommand_MissingCredentials(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, "", "")

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
}

func TestWhoamiCommand_LoggedIn(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	server := authBackend(t)

	apiURL = server.URL
	defer func() { apiURL = "" }()

	tokenPath := filepath.Join(configDir, "bookhaven", "token")
	if err := os.MkdirAll(filepath.Dir(tokenPath), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tokenPath, []byte("tok-abc"), 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	exitCode := runWhoami(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "ada@example.com") {
		t.Error("expected email in output")
	}
}

func TestWhoamiCommand_Anonymous(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var buf bytes.Buffer
	exitCode := runWhoami(context.Background(), &buf)

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Not logged in") {
		t.Error("expected anonymous message in output")
	}
}

func TestRegisterValidation(t *testing.T) {
	if problem := validateRegistration("", "a@b.com", "secret123"); problem == "" {
		t.Error("expected name validation problem")
	}
	if problem := validateRegistration("Ada", "not-an-email", "secret123"); problem == "" {
		t.Error("expected email validation problem")
	}
	if problem := validateRegistration("Ada", "a@b.com", "short"); problem == "" {
		t.Error("expected password validation problem")
	}
	if problem := validateRegistration("Ada", "a@b.com", "secret123"); problem != "" {
		t.Errorf("expected valid registration, got %q", problem)
	}
}
