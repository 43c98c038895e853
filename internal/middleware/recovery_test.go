package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecoverer(t *testing.T) {
	t.Run("panic becomes 500", func(t *testing.T) {
		h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/news/1", nil))

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("status: got %d, want 500", rr.Code)
		}
	})

	t.Run("normal requests untouched", func(t *testing.T) {
		next, called := okHandler()
		rr := httptest.NewRecorder()
		Recoverer(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		if !*called || rr.Code != http.StatusOK {
			t.Errorf("got %d, called=%v", rr.Code, *called)
		}
	})

	t.Run("abort handler is re-raised", func(t *testing.T) {
		h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		defer func() {
			if rec := recover(); rec != http.ErrAbortHandler {
				t.Errorf("recovered %v, want http.ErrAbortHandler", rec)
			}
		}()
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
