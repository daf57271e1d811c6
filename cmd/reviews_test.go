// ABOUTME: Tests for the reviews commands
// ABOUTME: Verifies local validation blocks network calls and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bookhaven/bookhaven-cli/internal/api"
)

func TestValidateReviewInput(t *testing.T) {
	tests := []struct {
		name    string
		rating  int
		content string
		wantOK  bool
	}{
		{"valid", 4, "a perfectly fine review", true},
		{"rating too low", 0, "a perfectly fine review", false},
		{"rating too high", 6, "a perfectly fine review", false},
		{"content too short", 3, "short", false},
		{"content only whitespace", 3, "             ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := validateReviewInput(tt.rating, tt.content)
			if tt.wantOK && problem != "" {
				t.Errorf("expected valid, got %q", problem)
			}
			if !tt.wantOK && problem == "" {
				t.Error("expected validation problem, got none")
			}
		})
	}
}

func TestReviewsAddCommand_InvalidInputSkipsNetwork(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the backend for invalid input")
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runReviewsAdd(context.Background(), &buf, "b1", 0, "too short")

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
}

func TestReviewsAddCommand_Success(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input api.NewReview
		json.NewDecoder(r.Body).Decode(&input)
		if input.BookID != "b1" || input.Rating != 4 {
			t.Errorf("unexpected payload: %+v", input)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": api.Review{ID: "r1", BookID: "b1", Rating: 4},
		})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runReviewsAdd(context.Background(), &buf, "b1", 4, "a review with enough length")

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "r1") {
		t.Error("expected review id in output")
	}
}

func TestReviewsMineCommand_NotLoggedIn(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Unauthorized"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runReviewsMine(context.Background(), &buf)

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "not logged in") {
		t.Error("expected login hint in output")
	}
}
