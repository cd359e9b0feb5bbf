package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TokenContextKey is where middleware stashes the per-request token so
// downstream handlers never reach for a process-wide value.
const TokenContextKey = "session_token"

// Store reads and writes the session token cookie. It does not validate
// token contents; the upstream backend is authoritative for that.
type Store struct {
	CookieName string
	MaxAge     int
	Secure     bool
}

func NewStore(cookieName string, maxAge int, secure bool) *Store {
	return &Store{CookieName: cookieName, MaxAge: maxAge, Secure: secure}
}

// Get returns the session token from the request cookie. Absence is a
// normal state, not an error.
func (s *Store) Get(c *gin.Context) (string, bool) {
	token, err := c.Cookie(s.CookieName)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// Set writes the session token cookie. HTTP-only so the browser script
// never sees the credential.
func (s *Store) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.CookieName, token, s.MaxAge, "/", "", s.Secure, true)
}

// Clear removes the session token cookie.
func (s *Store) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.CookieName, "", -1, "/", "", s.Secure, true)
}

// FromContext returns the token placed in the gin context by the auth
// middleware for the current request.
func FromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(TokenContextKey)
	if !exists {
		return "", false
	}
	token, ok := v.(string)
	return token, ok && token != ""
}
