package authsdk

// Decision is a route guard verdict: either let the view render or redirect.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allowDecision() Decision           { return Decision{Allow: true} }
func redirectTo(target string) Decision { return Decision{RedirectTo: target} }

// Guard protects a view. EntryPath is where unauthenticated visitors go (the
// login screen); LandingPath is where authenticated non-admins go when the
// view is admin-only.
type Guard struct {
	AdminOnly   bool
	EntryPath   string
	LandingPath string
}

// Evaluate decides from the session's current state. It only reads cached
// state; a stale token is caught by the first guarded request instead.
func (g Guard) Evaluate(s *Session) Decision {
	if !s.IsAuthenticated() {
		return redirectTo(g.EntryPath)
	}
	if g.AdminOnly && !s.IsAdmin() {
		return redirectTo(g.LandingPath)
	}
	return allowDecision()
}

// Watch re-evaluates the guard on every session change and feeds the decision
// to fn, starting with the current state. Returns an unsubscribe function so
// a dismounted view stops receiving verdicts.
func (g Guard) Watch(s *Session, fn func(Decision)) func() {
	unsubscribe := s.Subscribe(func() {
		fn(g.Evaluate(s))
	})
	fn(g.Evaluate(s))
	return unsubscribe
}
