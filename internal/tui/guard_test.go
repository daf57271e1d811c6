// ABOUTME: Tests for route guard decisions
// ABOUTME: Covers public, auth-only, and admin-only screens across session states

package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardPublicScreenAlwaysAllowed(t *testing.T) {
	g := Guard{}
	assert.Equal(t, DecisionAllow, g.Check(false, false, false))
	assert.Equal(t, DecisionAllow, g.Check(true, false, false))
	assert.Equal(t, DecisionAllow, g.Check(true, true, true))
}

func TestGuardWaitsUntilSessionResolved(t *testing.T) {
	g := Guard{RequireAuth: true}
	assert.Equal(t, DecisionWait, g.Check(false, false, false))
}

func TestGuardRedirectsAnonymous(t *testing.T) {
	g := Guard{RequireAuth: true}
	assert.Equal(t, DecisionRedirect, g.Check(true, false, false))
	assert.Equal(t, DecisionAllow, g.Check(true, true, false))
}

func TestGuardAdminScreenRejectsRegularUsers(t *testing.T) {
	g := Guard{RequireAuth: true, RequireAdmin: true}
	assert.Equal(t, DecisionWait, g.Check(false, false, false))
	assert.Equal(t, DecisionRedirect, g.Check(true, false, false))
	assert.Equal(t, DecisionRedirect, g.Check(true, true, false))
	assert.Equal(t, DecisionAllow, g.Check(true, true, true))
}

func TestGuardForScreens(t *testing.T) {
	assert.Equal(t, Guard{}, guardFor(ScreenHome))
	assert.Equal(t, Guard{}, guardFor(ScreenBooks))
	assert.Equal(t, Guard{RequireAuth: true}, guardFor(ScreenProfile))
	assert.Equal(t, Guard{RequireAuth: true, RequireAdmin: true}, guardFor(ScreenAddBook))
}
