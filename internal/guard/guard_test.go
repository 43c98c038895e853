// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package guard

import (
	"testing"

	"newsdesk/internal/auth"
	"newsdesk/internal/models"
)

var adminRoles = []models.Role{models.RoleAdmin, models.RoleCreator}

func signedIn(role models.Role) auth.Session {
	return auth.Authenticated(&models.Identity{ID: "x", Email: "x@news.com", Role: role})
}

func TestProtect(t *testing.T) {
	tests := []struct {
		name string
		sess auth.Session
		want Decision
	}{
		{"unloaded", auth.Session{}, Decision{Kind: Wait}},
		{"loading", auth.Session{State: auth.StateLoading}, Decision{Kind: Wait}},
		{"anonymous", auth.Anonymous(), Decision{Kind: Redirect, Path: "/login"}},
		{"reader", signedIn(models.RoleReader), Decision{Kind: Redirect, Path: "/"}},
		{"creator", signedIn(models.RoleCreator), Decision{Kind: Allow}},
		{"admin", signedIn(models.RoleAdmin), Decision{Kind: Allow}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Protect(tt.sess, adminRoles...); got != tt.want {
				t.Errorf("Protect: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProtectWithoutRoles(t *testing.T) {
	if got := Protect(signedIn(models.RoleReader)); got.Kind != Allow {
		t.Errorf("any signed-in role should pass, got %+v", got)
	}
	if got := Protect(auth.Anonymous()); got.Kind != Redirect || got.Path != LoginPath {
		t.Errorf("anonymous: got %+v", got)
	}
}

func TestLoginRoute(t *testing.T) {
	if got := LoginRoute(auth.Anonymous()); got.Kind != Allow {
		t.Errorf("anonymous: got %+v", got)
	}
	if got := LoginRoute(signedIn(models.RoleReader)); got != (Decision{Kind: Redirect, Path: HomePath}) {
		t.Errorf("signed in: got %+v", got)
	}
	if got := LoginRoute(auth.Session{State: auth.StateLoading}); got.Kind != Wait {
		t.Errorf("loading: got %+v", got)
	}
}
