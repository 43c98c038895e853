// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth manages who is signed in. It exposes login, logout and
// register over the session store and the identity directory, and turns
// an incoming request into a Session in one of the states Unloaded,
// Loading, Authenticated or Anonymous.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/segmentio/ksuid"
	"golang.org/x/crypto/bcrypt"

	"newsdesk/internal/models"
	"newsdesk/internal/session"
)

var (
	// ErrInvalidCredentials is returned when the email is unknown or the
	// password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountDisabled is returned when the identity has been deactivated.
	ErrAccountDisabled = errors.New("account disabled")
)

// State is the lifecycle position of a Session.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Session is the current viewer. Identity is set only when State is
// StateAuthenticated.
type Session struct {
	State    State
	Identity *models.Identity
}

// Anonymous returns a resolved session with nobody signed in.
func Anonymous() Session {
	return Session{State: StateAnonymous}
}

// Authenticated returns a resolved session for ident.
func Authenticated(ident *models.Identity) Session {
	return Session{State: StateAuthenticated, Identity: ident}
}

// SignedIn reports whether the session carries an identity.
func (s Session) SignedIn() bool {
	return s.State == StateAuthenticated && s.Identity != nil
}

// Role returns the signed-in role, or "" for anyone else.
func (s Session) Role() models.Role {
	if !s.SignedIn() {
		return ""
	}
	return s.Identity.Role
}

// UserDirectory is the subset of the user repository used to sign in.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*models.Identity, error)
}

// ActivityRecorder receives login and logout entries.
type ActivityRecorder interface {
	Append(ctx context.Context, e *models.ActivityLog) error
}

// SessionStore is the persisted session backend.
type SessionStore interface {
	Create(ctx context.Context, w http.ResponseWriter, ident *models.Identity) (string, error)
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
	Discard(ctx context.Context, r *http.Request) error
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Manager implements the sign-in operations.
type Manager struct {
	sessions SessionStore
	users    UserDirectory
	logs     ActivityRecorder
	now      func() time.Time
}

// NewManager creates a Manager. logs may be nil.
func NewManager(sessions SessionStore, users UserDirectory, logs ActivityRecorder) *Manager {
	return &Manager{sessions: sessions, users: users, logs: logs, now: time.Now}
}

// Restore resolves the session for a request. A missing or expired record
// yields Anonymous. A malformed record is discarded and also yields
// Anonymous. If the backend cannot be reached the state stays Loading.
func (m *Manager) Restore(ctx context.Context, r *http.Request) Session {
	data, err := m.sessions.Get(ctx, r)
	switch {
	case errors.Is(err, session.ErrMalformed):
		slog.Warn("discarding malformed session", "error", err)
		if derr := m.sessions.Discard(ctx, r); derr != nil {
			slog.Warn("discard malformed session failed", "error", derr)
		}
		return Anonymous()
	case err != nil:
		slog.Error("session restore failed", "error", err)
		return Session{State: StateLoading}
	case data == nil:
		return Anonymous()
	}
	ident := data.Identity
	return Authenticated(&ident)
}

// Login checks the credentials against the directory and starts a session.
// The email must match exactly.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, email, password string) (*models.Identity, error) {
	user, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login lookup: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	ident := *user
	ident.PasswordHash = ""
	if _, err := m.sessions.Create(ctx, w, &ident); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	m.record(ctx, &ident, models.ActionLogin, "User logged in")
	return &ident, nil
}

// Logout ends the session held by the request. Calling it without a
// session is harmless.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request, sess Session) error {
	if err := m.sessions.Destroy(ctx, w, r); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if sess.SignedIn() {
		m.record(ctx, sess.Identity, models.ActionLogout, "User logged out")
	}
	return nil
}

// Register creates a reader identity and signs it in. The identity is not
// added to the directory, so later logins with the same email still resolve
// to the directory entry, if any.
func (m *Manager) Register(ctx context.Context, w http.ResponseWriter, email, name, password string) (*models.Identity, error) {
	now := m.now()
	ident := &models.Identity{
		ID:          ksuid.New().String(),
		Email:       email,
		DisplayName: name,
		Role:        models.RoleReader,
		IsActive:    true,
		CreatedAt:   now,
	}
	if _, err := m.sessions.Create(ctx, w, ident); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	m.record(ctx, ident, models.ActionLogin, "Registered new account")
	return ident, nil
}

// record appends an activity entry. Failures are only logged.
func (m *Manager) record(ctx context.Context, who *models.Identity, action models.Action, details string) {
	if m.logs == nil {
		return
	}
	err := m.logs.Append(ctx, &models.ActivityLog{
		ID:        ksuid.New().String(),
		UserID:    who.ID,
		User:      *who,
		Action:    action,
		Details:   details,
		CreatedAt: m.now(),
	})
	if err != nil {
		slog.Warn("activity log append failed", "action", action, "error", err)
	}
}
