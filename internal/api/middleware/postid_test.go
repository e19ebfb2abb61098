package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func postIDRouter(called *bool) http.Handler {
	r := chi.NewRouter()
	r.Route("/posts/{id}", func(r chi.Router) {
		r.Use(RequirePostID)
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			*called = true
		})
	})
	return r
}

func TestRequirePostIDRejectsMalformedIDs(t *testing.T) {
	for _, id := range []string{"not-an-id", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		called := false
		rec := httptest.NewRecorder()
		postIDRouter(&called).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/"+id, nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("id %q: expected 400, got %d", id, rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Errorf("id %q: expected empty body, got %q", id, rec.Body.String())
		}
		if called {
			t.Errorf("id %q: handler must not run", id)
		}
	}
}

func TestRequirePostIDAcceptsValidIDs(t *testing.T) {
	called := false
	rec := httptest.NewRecorder()
	postIDRouter(&called).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/5f2a1b3c4d5e6f7a8b9c0d1e", nil))

	if !called {
		t.Errorf("expected handler to run, got status %d", rec.Code)
	}
}
