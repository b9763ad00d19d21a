// Package guard gates command dispatch on auth state, the way the SPA's
// navigation guards gated route transitions.
package guard

import "ob-go/internal/session"

// Route is a navigation target.
type Route string

const (
	RouteLogin Route = "/login"
	RouteFeed  Route = "/feed"
)

// Decision is the outcome of evaluating a guard against a requested route.
type Decision struct {
	Allow      bool
	RedirectTo Route // where to send the user when denied
	ReturnTo   Route // the originally requested route, kept for post-login redirect
}

// Auth allows any authenticated user. An anonymous user is redirected to
// login with the requested route remembered.
func Auth(s *session.Store, requested Route) Decision {
	if s.IsLoggedIn() {
		return Decision{Allow: true}
	}
	return Decision{RedirectTo: RouteLogin, ReturnTo: requested}
}

// Admin allows only an authenticated ADMIN. An anonymous user goes to
// login; an authenticated non-admin goes to the feed, never back to login.
func Admin(s *session.Store, requested Route) Decision {
	if !s.IsLoggedIn() {
		return Decision{RedirectTo: RouteLogin, ReturnTo: requested}
	}
	if s.IsAdmin() {
		return Decision{Allow: true}
	}
	return Decision{RedirectTo: RouteFeed}
}
