// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"newsdesk/internal/auth"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/render"
)

// Auth groups the sign-in, registration and sign-out handlers.
type Auth struct {
	renderer *render.Renderer
	manager  *auth.Manager
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, manager *auth.Manager) *Auth {
	return &Auth{renderer: renderer, manager: manager}
}

// LoginPage renders the login form. Signed-in viewers are sent away by
// middleware.GuestOnly before reaching it.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "login", &render.PageData{Title: "Sign In"})
}

// LoginSubmit checks the credentials and starts a session. Admins and
// creators land in the console, readers on the home page.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	form := loginForm{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	if msg := check(form); msg != "" {
		a.loginError(w, r, http.StatusUnprocessableEntity, form.Email, msg)
		return
	}

	ident, err := a.manager.Login(r.Context(), w, form.Email, form.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		a.loginError(w, r, http.StatusUnauthorized, form.Email, "Invalid email or password.")
		return
	case errors.Is(err, auth.ErrAccountDisabled):
		a.loginError(w, r, http.StatusForbidden, form.Email, "This account has been deactivated.")
		return
	case err != nil:
		slog.Error("login failed", "error", err)
		a.loginError(w, r, http.StatusServiceUnavailable, form.Email, "Sign-in is temporarily unavailable. Please try again.")
		return
	}

	slog.Info("user signed in", "user_id", ident.ID, "role", ident.Role)
	middleware.Redirect(w, r, landingFor(ident))
}

func (a *Auth) loginError(w http.ResponseWriter, r *http.Request, status int, email, msg string) {
	a.renderer.PageStatus(w, r, status, "login", &render.PageData{
		Title: "Sign In",
		Data:  map[string]any{"Error": msg, "Email": email},
	})
}

// RegisterPage renders the sign-up form.
func (a *Auth) RegisterPage(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "register", &render.PageData{Title: "Create Account"})
}

// RegisterSubmit creates a reader account and signs it in.
func (a *Auth) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	form := registerForm{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	if msg := check(form); msg != "" {
		a.registerError(w, r, http.StatusUnprocessableEntity, form, msg)
		return
	}

	ident, err := a.manager.Register(r.Context(), w, form.Email, form.Name, form.Password)
	if err != nil {
		slog.Error("register failed", "error", err)
		a.registerError(w, r, http.StatusServiceUnavailable, form, "Registration is temporarily unavailable. Please try again.")
		return
	}

	slog.Info("reader registered", "user_id", ident.ID)
	middleware.Redirect(w, r, withQuery("/", "notice", "Welcome, "+ident.DisplayName+"!"))
}

func (a *Auth) registerError(w http.ResponseWriter, r *http.Request, status int, form registerForm, msg string) {
	a.renderer.PageStatus(w, r, status, "register", &render.PageData{
		Title: "Create Account",
		Data:  map[string]any{"Error": msg, "Name": form.Name, "Email": form.Email},
	})
}

// Logout ends the session and returns to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := a.manager.Logout(ctx, w, r, middleware.SessionFromCtx(ctx)); err != nil {
		slog.Error("logout failed", "error", err)
	}
	middleware.Redirect(w, r, "/login")
}

// landingFor picks where a fresh session starts.
func landingFor(ident *models.Identity) string {
	if ident.CanManage() {
		return "/admin"
	}
	return "/"
}
