package guard

import (
	"testing"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/api"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/session"
)

var (
	loading  = session.State{Loading: true}
	signedIn = session.State{Authenticated: true, User: &api.User{ID: "u1"}}
	anon     = session.State{}
)

func TestProtectedAndPublicOnly(t *testing.T) {
	tests := []struct {
		name   string
		state  session.State
		guard  func(session.State) Decision
		expect Decision
	}{
		{"protected loading", loading, Protected, Decision{Kind: Placeholder}},
		{"protected anon", anon, Protected, Decision{Kind: Redirect, Target: LoginRoute}},
		{"protected signed in", signedIn, Protected, Decision{Kind: Render}},
		{"public-only loading", loading, PublicOnly, Decision{Kind: Placeholder}},
		{"public-only anon", anon, PublicOnly, Decision{Kind: Render}},
		{"public-only signed in", signedIn, PublicOnly, Decision{Kind: Redirect, Target: DashboardRoute}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.guard(tt.state); got != tt.expect {
				t.Fatalf("expected %+v, got %+v", tt.expect, got)
			}
		})
	}
}

func TestForRoute(t *testing.T) {
	tests := []struct {
		route  string
		state  session.State
		expect Decision
	}{
		{"/", anon, Decision{Kind: Render}},
		{"", loading, Decision{Kind: Render}},
		{"/album/u1", anon, Decision{Kind: Render}},
		{"/album/", anon, Decision{Kind: Redirect, Target: LoginRoute}},
		{"/login", signedIn, Decision{Kind: Redirect, Target: DashboardRoute}},
		{"/register/", anon, Decision{Kind: Render}},
		{"/dashboard", anon, Decision{Kind: Redirect, Target: LoginRoute}},
		{"/members/m1?tab=photos", signedIn, Decision{Kind: Render}},
		{"/forum", loading, Decision{Kind: Placeholder}},
		{"events", anon, Decision{Kind: Redirect, Target: LoginRoute}},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			if got := ForRoute(tt.route, tt.state); got != tt.expect {
				t.Fatalf("expected %+v, got %+v", tt.expect, got)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if Placeholder.String() != "placeholder" || Redirect.String() != "redirect" || Render.String() != "render" {
		t.Fatal("unexpected kind names")
	}
}
