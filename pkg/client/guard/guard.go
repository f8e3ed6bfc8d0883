// Package guard gates navigation to protected views based on live session
// state.
package guard

import "github.com/dkozyrev/devconnect/pkg/client/session"

// Decision is the outcome of checking a protected navigation.
type Decision int

const (
	// Defer: session state is still loading; render nothing and decide on
	// the next check. Redirecting now would flash the login view at users
	// who are in fact authenticated.
	Defer Decision = iota
	// Render the protected view.
	Render
	// Redirect to the login view.
	Redirect
)

func (d Decision) String() string {
	switch d {
	case Defer:
		return "defer"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	}
	return "unknown"
}

// SessionSource exposes the live session state the guard consults.
type SessionSource interface {
	State() session.State
}

// Guard decides whether a protected view may be shown. It holds no cached
// verdict: every Check reads the current session state, so a logout is
// enforced on the very next navigation.
type Guard struct {
	source SessionSource
}

func New(source SessionSource) *Guard {
	return &Guard{source: source}
}

func (g *Guard) Check() Decision {
	st := g.source.State()
	if st.Loading {
		return Defer
	}
	if !st.Authenticated {
		return Redirect
	}
	return Render
}
