package auth

// Guard is the pre-render check used by every screen that needs a session.
// It is advisory only: real authorization is enforced by the upstream
// services, this just keeps unauthenticated shoppers off protected views.
type Guard struct {
	state *State
}

func NewGuard(state *State) *Guard {
	return &Guard{state: state}
}

// Allow reports whether the protected view may render.
func (g *Guard) Allow() bool {
	return g.state.Validate()
}

// CheckOrRedirect returns ok=true when the session is valid, otherwise
// ok=false together with the login route to send the visitor to.
func (g *Guard) CheckOrRedirect() (redirect string, ok bool) {
	if g.state.Validate() {
		return "", true
	}
	return RouteLogin, false
}
