package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const testSignKey = "test-sign-key-0123456789abcdef"

// sessionCookie issues a signed session cookie with the logged flag set the
// way a login would, for priming test requests.
func sessionCookie(t *testing.T, logged bool) *http.Cookie {
	t.Helper()

	store := NewSessionStore(testSignKey)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	session, err := store.Get(req, SessionName)
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	session.Values[LoggedKey] = logged
	if err := session.Save(req, rec); err != nil {
		t.Fatalf("saving session: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}
	return cookies[0]
}

func TestRequireLoginWithoutSession(t *testing.T) {
	gate := NewLoginGate(NewSessionStore(testSignKey))

	handlerCalled := false
	handler := gate.RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if handlerCalled {
		t.Error("handler must not run without a logged session")
	}
}

func TestRequireLoginWithLoggedSession(t *testing.T) {
	gate := NewLoginGate(NewSessionStore(testSignKey))

	handlerCalled := false
	handler := gate.RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/posts", nil)
	req.AddCookie(sessionCookie(t, true))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !handlerCalled {
		t.Errorf("expected handler to run, got status %d", rec.Code)
	}
}

func TestRequireLoginWithLoggedOutSession(t *testing.T) {
	gate := NewLoginGate(NewSessionStore(testSignKey))

	handler := gate.RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with logged=false")
	}))

	req := httptest.NewRequest(http.MethodPost, "/posts", nil)
	req.AddCookie(sessionCookie(t, false))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireLoginWithTamperedCookie(t *testing.T) {
	gate := NewLoginGate(NewSessionStore(testSignKey))

	handler := gate.RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with an undecodable cookie")
	}))

	req := httptest.NewRequest(http.MethodPost, "/posts", nil)
	req.AddCookie(&http.Cookie{Name: SessionName, Value: "not-a-signed-session"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
