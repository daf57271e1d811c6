// ABOUTME: Route guard decisions for screens that require auth or admin role
// ABOUTME: Mirrors session state into allow/wait/redirect navigation outcomes

package tui

// Decision is the outcome of checking a guard against the current session.
type Decision int

const (
	// DecisionAllow lets navigation proceed to the target screen.
	DecisionAllow Decision = iota
	// DecisionWait defers navigation until the startup session check completes.
	DecisionWait
	// DecisionRedirect sends the user to the login screen instead.
	DecisionRedirect
)

// Guard describes the access requirements of a screen.
type Guard struct {
	RequireAuth  bool
	RequireAdmin bool
}

// Check evaluates the guard against the session state. Screens with no
// requirements are always allowed, even before the session is resolved.
func (g Guard) Check(resolved, authenticated, admin bool) Decision {
	if !g.RequireAuth && !g.RequireAdmin {
		return DecisionAllow
	}
	if !resolved {
		return DecisionWait
	}
	if !authenticated {
		return DecisionRedirect
	}
	if g.RequireAdmin && !admin {
		return DecisionRedirect
	}
	return DecisionAllow
}

// guardFor returns the access requirements for a screen.
func guardFor(screen Screen) Guard {
	switch screen {
	case ScreenProfile:
		return Guard{RequireAuth: true}
	case ScreenAddBook:
		return Guard{RequireAuth: true, RequireAdmin: true}
	default:
		return Guard{}
	}
}
