package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	// SessionName is the cookie holding the admin session.
	SessionName = "session"

	// SessionMaxAge bounds a session to one day from last issuance, matching
	// the session expiry of the original deployment.
	SessionMaxAge = 86400

	// LoggedKey is the session value carrying the authorization flag.
	LoggedKey = "logged"
)

// NewSessionStore builds the signed-cookie session store shared by the auth
// handlers and the login gate. The signing key is injected at startup; it is
// never read from the environment here.
func NewSessionStore(signKey string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(signKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// IsLogged reports whether the request carries a session with the logged
// flag set. A missing, expired or undecodable cookie reads as logged out.
func IsLogged(store sessions.Store, r *http.Request) bool {
	session, err := store.Get(r, SessionName)
	if err != nil {
		return false
	}
	logged, _ := session.Values[LoggedKey].(bool)
	return logged
}
