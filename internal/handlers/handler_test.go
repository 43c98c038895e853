// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Every test runs against the seeded in-memory store and a miniredis
// instance, so nothing external is needed.
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"newsdesk/internal/acl"
	"newsdesk/internal/auth"
	"newsdesk/internal/cache"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/newsroom"
	"newsdesk/internal/render"
	"newsdesk/internal/seed"
	"newsdesk/internal/session"
	"newsdesk/internal/storage"
	"newsdesk/internal/store/memstore"
)

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	Mem       *memstore.Store
	Redis     *miniredis.Miniredis
	Valkey    *redis.Client
	Sessions  *session.Store
	Manager   *auth.Manager
	Matrix    *acl.Matrix
	News      *newsroom.Service
	PageCache *cache.PageCache
	Renderer  *render.Renderer
	Auth      *Auth
	Public    *Public
	Admin     *Admin
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.DefaultPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mem := memstore.New(string(hash))

	mr := miniredis.RunT(t)
	vk := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { vk.Close() })

	matrix := acl.New(mem.Permissions)
	news := newsroom.New(newsroom.Repositories{
		Users:    mem.Users,
		Posts:    mem.Posts,
		Comments: mem.Comments,
		Likes:    mem.Likes,
		Logs:     mem.Logs,
		Settings: mem.Settings,
	}, matrix)

	renderer, err := render.New(news)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	manager := auth.NewManager(sessions, mem.Users, mem.Logs)
	pageCache := cache.NewPageCache(vk, time.Minute)

	return &testEnv{
		Mem:       mem,
		Redis:     mr,
		Valkey:    vk,
		Sessions:  sessions,
		Manager:   manager,
		Matrix:    matrix,
		News:      news,
		PageCache: pageCache,
		Renderer:  renderer,
		Auth:      NewAuth(renderer, manager),
		Public:    NewPublic(renderer, news, pageCache),
		Admin:     NewAdmin(renderer, news, matrix, storage.NewMock(), pageCache),
	}
}

// identity loads a seeded identity: "1" admin, "2" creator, "3" reader.
func (e *testEnv) identity(t *testing.T, id string) *models.Identity {
	t.Helper()
	u, err := e.Mem.Users.FindByID(context.Background(), id)
	if err != nil || u == nil {
		t.Fatalf("identity %s: %v", id, err)
	}
	u.PasswordHash = ""
	return u
}

// as attaches a resolved session to the request. A nil identity means an
// anonymous visitor.
func as(r *http.Request, ident *models.Identity) *http.Request {
	sess := auth.Anonymous()
	if ident != nil {
		sess = auth.Authenticated(ident)
	}
	return r.WithContext(middleware.WithSession(r.Context(), sess))
}

// withID adds the chi {id} URL parameter to a request.
func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// formRequest builds a urlencoded form request.
func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// htmx marks a request as coming from HTMX.
func htmx(r *http.Request) *http.Request {
	r.Header.Set("HX-Request", "true")
	return r
}

// serve runs a handler and returns the recorder.
func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, r)
	return rr
}

// assertRedirect checks for a 303 whose Location starts with prefix.
func assertRedirect(t *testing.T, rr *httptest.ResponseRecorder, prefix string) {
	t.Helper()
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body: %s", rr.Code, rr.Body.String())
	}
	if loc := rr.Header().Get("Location"); !strings.HasPrefix(loc, prefix) {
		t.Fatalf("Location = %q, want prefix %q", loc, prefix)
	}
}

// flashParam decodes the notice or error parameter of a redirect.
func flashParam(t *testing.T, rr *httptest.ResponseRecorder, key string) string {
	t.Helper()
	u, err := url.Parse(rr.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse Location: %v", err)
	}
	return u.Query().Get(key)
}
