package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Quill/internal/api/middleware"
	"Quill/internal/core/admin"
	"Quill/internal/core/posts"
)

const (
	testPassword = "hunter2"
	testSignKey  = "test-sign-key-0123456789abcdef"
	testID       = "5f2a1b3c4d5e6f7a8b9c0d1e"
)

// stubService counts mutations so the tests can prove that unauthorized
// requests never reach the service.
type stubService struct {
	mutations int
}

func (s *stubService) Create(ctx context.Context, req posts.CreatePostRequest) (*posts.Post, error) {
	s.mutations++
	return &posts.Post{ID: primitive.NewObjectID(), Title: "t", Body: "b", Tags: []string{}}, nil
}

func (s *stubService) List(ctx context.Context, req posts.ListPostsRequest) (*posts.ListPostsResponse, error) {
	return &posts.ListPostsResponse{Posts: []*posts.Post{}, LastPage: 0}, nil
}

func (s *stubService) Get(ctx context.Context, id string) (*posts.Post, error) {
	return nil, posts.ErrNotFound
}

func (s *stubService) Update(ctx context.Context, id string, patch map[string]interface{}) (*posts.Post, error) {
	s.mutations++
	return &posts.Post{ID: primitive.NewObjectID()}, nil
}

func (s *stubService) Delete(ctx context.Context, id string) error {
	s.mutations++
	return nil
}

func (s *stubService) Search(ctx context.Context, query string) ([]*posts.Post, error) {
	return []*posts.Post{}, nil
}

func testServer(service posts.Service) http.Handler {
	store := middleware.NewSessionStore(testSignKey)
	r := chi.NewRouter()
	RegisterAuthRoutes(r, admin.NewService(testPassword), store)
	RegisterPostRoutes(r, service, middleware.NewLoginGate(store))
	return r
}

// loginCookie obtains a real session cookie through the login endpoint.
func loginCookie(t *testing.T, server http.Handler) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"password":"`+testPassword+`"}`))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login issued no session cookie")
	}
	return cookies[0]
}

func TestMutatingRoutesRequireLogin(t *testing.T) {
	cases := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodPost, "/posts", `{"title":"t","body":"b","tags":[]}`},
		{http.MethodPatch, "/posts/" + testID, `{"title":"x"}`},
		{http.MethodDelete, "/posts/" + testID, ""},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			service := &stubService{}
			server := testServer(service)

			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body)))

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
			if service.mutations != 0 {
				t.Error("unauthorized request must cause no storage mutation")
			}
		})
	}
}

func TestMutatingRoutesWithLogin(t *testing.T) {
	cases := []struct {
		method string
		target string
		body   string
		status int
	}{
		{http.MethodPost, "/posts", `{"title":"t","body":"b","tags":[]}`, http.StatusOK},
		{http.MethodPatch, "/posts/" + testID, `{"title":"x"}`, http.StatusOK},
		{http.MethodDelete, "/posts/" + testID, "", http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			service := &stubService{}
			server := testServer(service)
			cookie := loginCookie(t, server)

			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			req.AddCookie(cookie)
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, rec.Code)
			}
			if service.mutations != 1 {
				t.Errorf("expected exactly one mutation, got %d", service.mutations)
			}
		})
	}
}

func TestReadRoutesArePublic(t *testing.T) {
	server := testServer(&stubService{})

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("list: expected 200 without auth, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/"+testID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("get: expected 404 without auth, got %d", rec.Code)
	}
}

func TestMalformedIDRejectedAfterLogin(t *testing.T) {
	service := &stubService{}
	server := testServer(service)
	cookie := loginCookie(t, server)

	req := httptest.NewRequest(http.MethodDelete, "/posts/not-an-id", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if service.mutations != 0 {
		t.Error("malformed id must short-circuit before the service")
	}
}

func TestSessionLifecycle(t *testing.T) {
	server := testServer(&stubService{})
	cookie := loginCookie(t, server)

	// check reports logged=true with the cookie
	req := httptest.NewRequest(http.MethodGet, "/auth/check", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	var status struct {
		Logged bool `json:"logged"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decoding check response: %v", err)
	}
	if !status.Logged {
		t.Error("expected logged=true after login")
	}

	// logout expires the cookie
	req = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("logout: expected 204, got %d", rec.Code)
	}
}
