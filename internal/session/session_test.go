package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"newsdesk/internal/models"
)

// testStore returns a session store backed by an in-process Valkey.
func testStore(t *testing.T, secure bool) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, secure), mr
}

func testIdentity() *models.Identity {
	return &models.Identity{
		ID:           "1",
		Email:        "admin@news.com",
		DisplayName:  "Admin User",
		Role:         models.RoleAdmin,
		PasswordHash: "secret-hash",
		IsActive:     true,
	}
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("expected session cookie to be set")
	return nil
}

func TestSessionCreateAndGet(t *testing.T) {
	store, mr := testStore(t, false)
	w := httptest.NewRecorder()
	ctx := context.Background()

	sessionID, err := store.Create(ctx, w, testIdentity())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(sessionID) != idLength*2 {
		t.Errorf("session id length: got %d", len(sessionID))
	}

	cookie := sessionCookie(t, w)
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if cookie.Secure {
		t.Error("expected Secure=false for non-secure store")
	}

	// The hash never reaches Valkey.
	raw, _ := mr.Get(keyPrefix + sessionID)
	if raw == "" {
		t.Fatal("expected record in valkey")
	}
	if strings.Contains(raw, "secret-hash") {
		t.Error("password hash persisted in session record")
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)

	got, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected session data, got nil")
	}
	if got.Identity.Email != "admin@news.com" || got.Identity.Role != models.RoleAdmin {
		t.Errorf("unexpected identity: %+v", got.Identity)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestSessionCreateValkeyDown(t *testing.T) {
	store, mr := testStore(t, false)
	mr.Close()

	w := httptest.NewRecorder()
	if _, err := store.Create(context.Background(), w, testIdentity()); err == nil {
		t.Fatal("expected error when valkey is down")
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("cookie must not be set when the record was not stored")
	}
}

func TestSessionGetNoCookie(t *testing.T) {
	store, _ := testStore(t, false)

	req := httptest.NewRequest("GET", "/", nil)
	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get (no cookie): %v", err)
	}
	if data != nil {
		t.Error("expected nil for request without session cookie")
	}
}

func TestSessionGetExpired(t *testing.T) {
	store, _ := testStore(t, false)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "nonexistent-session-id"})

	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get (expired): %v", err)
	}
	if data != nil {
		t.Error("expected nil for expired/nonexistent session")
	}
}

func TestSessionGetMalformed(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"not json", "{not json"},
		{"missing id", `{"identity":{"email":"a@b.c","role":"admin"}}`},
		{"bad role", `{"identity":{"id":"1","email":"a@b.c","role":"owner"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mr := testStore(t, false)
			mr.Set(keyPrefix+"broken", tt.stored)

			req := httptest.NewRequest("GET", "/", nil)
			req.AddCookie(&http.Cookie{Name: CookieName, Value: "broken"})

			data, err := store.Get(context.Background(), req)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
			if data != nil {
				t.Error("expected nil data for malformed record")
			}

			if err := store.Discard(context.Background(), req); err != nil {
				t.Fatalf("Discard: %v", err)
			}
			if mr.Exists(keyPrefix + "broken") {
				t.Error("expected malformed record to be discarded")
			}
		})
	}
}

func TestSessionGetValkeyDown(t *testing.T) {
	store, mr := testStore(t, false)
	mr.Close()

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "any"})

	_, err := store.Get(context.Background(), req)
	if err == nil {
		t.Fatal("expected error when valkey is down")
	}
	if errors.Is(err, ErrMalformed) {
		t.Error("backend failure must not be reported as malformed")
	}
}

func TestSessionDestroy(t *testing.T) {
	store, _ := testStore(t, false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	store.Create(ctx, w, testIdentity())
	cookie := sessionCookie(t, w)

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)

	if err := store.Destroy(ctx, w2, req); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	cleared := sessionCookie(t, w2)
	if cleared.MaxAge != -1 {
		t.Errorf("expected MaxAge=-1 on destroyed cookie, got %d", cleared.MaxAge)
	}

	retrieved, _ := store.Get(ctx, req)
	if retrieved != nil {
		t.Error("expected nil after destroy")
	}
}

func TestSessionDestroyNoCookie(t *testing.T) {
	store, _ := testStore(t, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	if err := store.Destroy(context.Background(), w, req); err != nil {
		t.Errorf("Destroy (no cookie): %v", err)
	}
}

func TestSessionSecureCookie(t *testing.T) {
	store, _ := testStore(t, true)

	w := httptest.NewRecorder()
	store.Create(context.Background(), w, testIdentity())

	if !sessionCookie(t, w).Secure {
		t.Error("expected Secure=true for secure store")
	}
}

func TestSessionExpiry(t *testing.T) {
	store, mr := testStore(t, false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	store.Create(ctx, w, testIdentity())
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(sessionCookie(t, w))

	mr.FastForward(DefaultTTL + 1)

	data, err := store.Get(ctx, req)
	if err != nil || data != nil {
		t.Errorf("expected expired session, got %v, %v", data, err)
	}
}
