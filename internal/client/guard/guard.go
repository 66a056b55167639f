// Package guard decides what a route shows for a given session state.
package guard

import (
	"strings"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/session"
)

const (
	LoginRoute     = "/login"
	RegisterRoute  = "/register"
	DashboardRoute = "/dashboard"
)

type Kind int

const (
	// Placeholder is shown while the session is still resolving.
	Placeholder Kind = iota
	Redirect
	Render
)

func (k Kind) String() string {
	switch k {
	case Placeholder:
		return "placeholder"
	case Redirect:
		return "redirect"
	default:
		return "render"
	}
}

type Decision struct {
	Kind   Kind
	Target string
}

// Protected renders only for an authenticated session.
func Protected(state session.State) Decision {
	switch {
	case state.Loading:
		return Decision{Kind: Placeholder}
	case !state.Authenticated:
		return Decision{Kind: Redirect, Target: LoginRoute}
	default:
		return Decision{Kind: Render}
	}
}

// PublicOnly renders only while signed out.
func PublicOnly(state session.State) Decision {
	switch {
	case state.Loading:
		return Decision{Kind: Placeholder}
	case state.Authenticated:
		return Decision{Kind: Redirect, Target: DashboardRoute}
	default:
		return Decision{Kind: Render}
	}
}

// ForRoute applies the route table: login and register are public-only,
// the landing page and public albums are open, everything else is protected.
func ForRoute(route string, state session.State) Decision {
	route = normalize(route)
	switch {
	case route == LoginRoute || route == RegisterRoute:
		return PublicOnly(state)
	case route == "/" || isPublicAlbum(route):
		return Decision{Kind: Render}
	default:
		return Protected(state)
	}
}

func normalize(route string) string {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	if route == "" {
		return "/"
	}
	if len(route) > 1 {
		route = strings.TrimRight(route, "/")
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return route
}

func isPublicAlbum(route string) bool {
	id, ok := strings.CutPrefix(route, "/album/")
	return ok && id != "" && !strings.Contains(id, "/")
}
