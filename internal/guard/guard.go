// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package guard decides whether a session may see a protected route.
package guard

import (
	"slices"

	"newsdesk/internal/auth"
	"newsdesk/internal/models"
)

const (
	// LoginPath is where anonymous visitors are sent.
	LoginPath = "/login"
	// HomePath is where signed-in visitors without the right role are sent.
	HomePath = "/"
)

// Kind is the outcome of a guard check.
type Kind int

const (
	// Allow renders the protected content.
	Allow Kind = iota
	// Wait shows a neutral loading indicator; no decision yet.
	Wait
	// Redirect sends the visitor to Decision.Path.
	Redirect
)

// Decision is the result of Protect or LoginRoute.
type Decision struct {
	Kind Kind
	Path string
}

func redirect(path string) Decision { return Decision{Kind: Redirect, Path: path} }

// Protect checks a protected route. With no roles any signed-in identity is
// allowed.
func Protect(sess auth.Session, roles ...models.Role) Decision {
	switch sess.State {
	case auth.StateUnloaded, auth.StateLoading:
		return Decision{Kind: Wait}
	case auth.StateAnonymous:
		return redirect(LoginPath)
	case auth.StateAuthenticated:
		if len(roles) > 0 && !slices.Contains(roles, sess.Role()) {
			return redirect(HomePath)
		}
		return Decision{Kind: Allow}
	}
	return redirect(LoginPath)
}

// LoginRoute checks the login page, which signed-in visitors skip.
func LoginRoute(sess auth.Session) Decision {
	switch sess.State {
	case auth.StateUnloaded, auth.StateLoading:
		return Decision{Kind: Wait}
	case auth.StateAuthenticated:
		return redirect(HomePath)
	}
	return Decision{Kind: Allow}
}
