// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"newsdesk/internal/models"
	"newsdesk/internal/seed"
	"newsdesk/internal/session"
	"newsdesk/internal/store/memstore"
)

type fixture struct {
	mgr   *Manager
	mem   *memstore.Store
	redis *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.DefaultPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	mem := memstore.New(string(hash))
	return &fixture{
		mgr:   NewManager(session.NewStore(client, false), mem.Users, mem.Logs),
		mem:   mem,
		redis: mr,
	}
}

// requestWithCookies copies the cookies set on w into a new request.
func requestWithCookies(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestLoginEveryDirectoryIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	users, _ := f.mem.Users.List(ctx)
	for _, u := range users {
		t.Run(u.Email, func(t *testing.T) {
			w := httptest.NewRecorder()
			got, err := f.mgr.Login(ctx, w, u.Email, seed.DefaultPassword)
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if got.ID != u.ID || got.Email != u.Email || got.Role != u.Role || got.DisplayName != u.DisplayName {
				t.Errorf("identity changed: got %+v, want %+v", got, u)
			}
			if got.PasswordHash != "" {
				t.Error("returned identity must not carry the hash")
			}

			sess := f.mgr.Restore(ctx, requestWithCookies(w))
			if !sess.SignedIn() || sess.Identity.ID != u.ID {
				t.Errorf("restored session: %+v", sess)
			}

			if _, err := f.mgr.Login(ctx, httptest.NewRecorder(), u.Email, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLoginUnknownOrMiscasedEmail(t *testing.T) {
	f := newFixture(t)
	for _, email := range []string{"nobody@news.com", "Admin@news.com", ""} {
		w := httptest.NewRecorder()
		_, err := f.mgr.Login(context.Background(), w, email, seed.DefaultPassword)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q): got %v, want ErrInvalidCredentials", email, err)
		}
		if len(w.Result().Cookies()) != 0 {
			t.Errorf("Login(%q) set a cookie on failure", email)
		}
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mem.Users.SetActive(ctx, "3", false)

	_, err := f.mgr.Login(ctx, httptest.NewRecorder(), "reader@news.com", seed.DefaultPassword)
	if !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("got %v, want ErrAccountDisabled", err)
	}
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	w := httptest.NewRecorder()
	if _, err := f.mgr.Login(ctx, w, "admin@news.com", seed.DefaultPassword); err != nil {
		t.Fatalf("Login: %v", err)
	}
	r := requestWithCookies(w)
	sess := f.mgr.Restore(ctx, r)
	if sess.State != StateAuthenticated {
		t.Fatalf("state after login: %v", sess.State)
	}

	if err := f.mgr.Logout(ctx, httptest.NewRecorder(), r, sess); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(f.redis.Keys()) != 0 {
		t.Errorf("persisted session survived logout: %v", f.redis.Keys())
	}
	if got := f.mgr.Restore(ctx, r); got.State != StateAnonymous {
		t.Errorf("state after logout: %v", got.State)
	}

	logs, _ := f.mem.Logs.List(ctx)
	if logs[0].Action != models.ActionLogout || logs[1].Action != models.ActionLogin {
		t.Errorf("expected logout then login at the top of the log, got %s, %s", logs[0].Action, logs[1].Action)
	}
	if logs[0].UserID != "1" {
		t.Errorf("logout entry user: got %q", logs[0].UserID)
	}
}

func TestRegisterAlwaysReader(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before, _ := f.mem.Users.List(ctx)

	// Even an email that belongs to an admin yields a fresh reader.
	for _, email := range []string{"new@news.com", "admin@news.com"} {
		w := httptest.NewRecorder()
		ident, err := f.mgr.Register(ctx, w, email, "Newcomer", "whatever")
		if err != nil {
			t.Fatalf("Register(%q): %v", email, err)
		}
		if ident.Role != models.RoleReader {
			t.Errorf("role: got %q, want reader", ident.Role)
		}
		if ident.ID == "" || ident.ID == "1" {
			t.Errorf("unexpected id %q", ident.ID)
		}
		sess := f.mgr.Restore(ctx, requestWithCookies(w))
		if sess.Role() != models.RoleReader || sess.Identity.Email != email {
			t.Errorf("restored: %+v", sess)
		}
	}

	after, _ := f.mem.Users.List(ctx)
	if len(after) != len(before) {
		t.Error("register must not add to the directory")
	}

	// The directory entry still wins at login.
	got, err := f.mgr.Login(ctx, httptest.NewRecorder(), "admin@news.com", seed.DefaultPassword)
	if err != nil || got.Role != models.RoleAdmin {
		t.Errorf("login after shadow register: %+v, %v", got, err)
	}
}

func TestRestoreStates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if got := f.mgr.Restore(ctx, httptest.NewRequest("GET", "/", nil)); got.State != StateAnonymous {
		t.Errorf("no cookie: got %v", got.State)
	}

	f.redis.Set("session:junk", "{{{")
	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "junk"})
	if got := f.mgr.Restore(ctx, r); got.State != StateAnonymous {
		t.Errorf("malformed: got %v", got.State)
	}
	if f.redis.Exists("session:junk") {
		t.Error("malformed record should be discarded")
	}

	f.redis.Close()
	if got := f.mgr.Restore(ctx, r); got.State != StateLoading {
		t.Errorf("backend down: got %v, want loading", got.State)
	}
}

func TestLoginSessionBackendDown(t *testing.T) {
	f := newFixture(t)
	f.redis.Close()

	w := httptest.NewRecorder()
	_, err := f.mgr.Login(context.Background(), w, "admin@news.com", seed.DefaultPassword)
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("no cookie may be set when the session was not stored")
	}
}

func TestSessionZeroValueIsUnloaded(t *testing.T) {
	var s Session
	if s.State != StateUnloaded || s.SignedIn() || s.Role() != "" {
		t.Errorf("zero session: %+v", s)
	}
	if StateLoading.String() != "loading" {
		t.Errorf("String: got %q", StateLoading.String())
	}
}
