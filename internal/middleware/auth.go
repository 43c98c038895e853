// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/url"

	"newsdesk/internal/acl"
	"newsdesk/internal/auth"
	"newsdesk/internal/guard"
	"newsdesk/internal/models"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the resolved auth.Session.
	SessionKey contextKey = "session"

	// retryAfterSeconds is sent with the waiting page while the session
	// backend is unavailable.
	retryAfterSeconds = "2"
)

// SessionRestorer resolves the session carried by a request.
type SessionRestorer interface {
	Restore(ctx context.Context, r *http.Request) auth.Session
}

// LoadSession resolves the session once per request and stores it in the
// request context. It never blocks the request; gating is left to
// RequireRoles and the handlers.
func LoadSession(sessions SessionRestorer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessions.Restore(r.Context(), r)
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess auth.Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}

// SessionFromCtx returns the session loaded by LoadSession. Without one
// the zero value is returned, whose state is Unloaded.
func SessionFromCtx(ctx context.Context) auth.Session {
	sess, _ := ctx.Value(SessionKey).(auth.Session)
	return sess
}

// RequireRoles applies the route guard. With no roles any signed-in
// identity passes.
func RequireRoles(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apply(w, r, next, guard.Protect(SessionFromCtx(r.Context()), roles...))
		})
	}
}

// GuestOnly sends signed-in visitors away from the login and register
// pages.
func GuestOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apply(w, r, next, guard.LoginRoute(SessionFromCtx(r.Context())))
	})
}

// RequirePermission consults the permission matrix for the signed-in role.
// Denied requests go back to the dashboard with a notice. Must run after
// RequireRoles.
func RequirePermission(matrix *acl.Matrix, res acl.Resource, act acl.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromCtx(r.Context())
			if !sess.SignedIn() || !matrix.Allowed(sess.Role(), res, act) {
				Redirect(w, r, "/admin?denied="+url.QueryEscape(string(res)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func apply(w http.ResponseWriter, r *http.Request, next http.Handler, d guard.Decision) {
	switch d.Kind {
	case guard.Allow:
		next.ServeHTTP(w, r)
	case guard.Redirect:
		Redirect(w, r, d.Path)
	case guard.Wait:
		waiting(w)
	}
}

// waiting renders the neutral placeholder shown while the session cannot
// be resolved.
func waiting(w http.ResponseWriter) {
	w.Header().Set("Retry-After", retryAfterSeconds)
	w.Header().Set("Cache-Control", "no-store")
	http.Error(w, "Loading...", http.StatusServiceUnavailable)
}

// Redirect sends an HTMX-aware redirect: HTMX requests get an HX-Redirect
// header, normal requests a 303.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
