// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies flag, environment, and config wiring through newDeps

package cmd

import (
	"testing"
)

func TestNewDepsDefaultBaseURL(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	apiURL = ""

	d, err := newDeps()
	if err != nil {
		t.Fatalf("newDeps failed: %v", err)
	}
	if d.cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Errorf("expected default base URL, got %s", d.cfg.API.BaseURL)
	}
}

func TestNewDepsEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BOOKHAVEN_API_BASE_URL", "http://backend.example.com/api")
	apiURL = ""

	d, err := newDeps()
	if err != nil {
		t.Fatalf("newDeps failed: %v", err)
	}
	if d.cfg.API.BaseURL != "http://backend.example.com/api" {
		t.Errorf("expected env override, got %s", d.cfg.API.BaseURL)
	}
}

func TestNewDepsFlagOverridesEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BOOKHAVEN_API_BASE_URL", "http://backend.example.com/api")
	apiURL = "http://flag-override.example.com/api"
	defer func() { apiURL = "" }()

	d, err := newDeps()
	if err != nil {
		t.Fatalf("newDeps failed: %v", err)
	}
	if d.cfg.API.BaseURL != "http://flag-override.example.com/api" {
		t.Errorf("expected flag to override env, got %s", d.cfg.API.BaseURL)
	}
}

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}
