package session

import (
	"context"
	"slices"

	"storefront/internal/clientstore"
)

// Decision is the outcome of evaluating a route guard.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// Location is the navigation target for redirect decisions, empty for Allow.
func (d Decision) Location() string {
	switch d {
	case RedirectLogin:
		return "/login"
	case RedirectHome:
		return "/"
	default:
		return ""
	}
}

// Guard describes what a route needs. An empty AllowedRoles admits any
// authenticated role.
type Guard struct {
	RequiresAuth bool
	AllowedRoles []Role
}

// Public is the guard of routes anyone may open.
var Public = Guard{}

func Authenticated(roles ...Role) Guard {
	return Guard{RequiresAuth: true, AllowedRoles: roles}
}

// Authorize decides a navigation. This is UI gating only; the server behind
// the token enforces the real access rules.
func Authorize(s Session, g Guard) Decision {
	if g.RequiresAuth && !s.Authenticated() {
		return RedirectLogin
	}
	if len(g.AllowedRoles) > 0 && s.Authenticated() && !slices.Contains(g.AllowedRoles, s.Role) {
		return RedirectHome
	}
	return Allow
}

// Evaluate reads the session fresh from storage and authorizes it. A storage
// failure evaluates as an unauthenticated session; err is only for logging.
func Evaluate(ctx context.Context, s clientstore.Storage, g Guard) (Decision, Session, error) {
	sess, err := Read(ctx, s)
	return Authorize(sess, g), sess, err
}
