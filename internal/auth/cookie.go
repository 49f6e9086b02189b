package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie writes and clears the HTTP-only session token cookie.
// Production deployments serve the client cross-site, so the cookie is
// Secure with SameSite=None; elsewhere it is SameSite=Strict.
type SessionCookie struct {
	Name       string
	Domain     string
	Production bool
}

func NewSessionCookie(name, domain string, production bool) *SessionCookie {
	if name == "" {
		name = "token"
	}
	return &SessionCookie{Name: name, Domain: domain, Production: production}
}

func (s *SessionCookie) sameSite() http.SameSite {
	if s.Production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}

// Set stores token until exp.
func (s *SessionCookie) Set(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(s.sameSite())
	c.SetCookie(s.Name, token, maxAgeFrom(exp), "/", s.Domain, s.Production, true)
}

// Clear expires the cookie immediately.
func (s *SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(s.sameSite())
	c.SetCookie(s.Name, "", -1, "/", s.Domain, s.Production, true)
}

// Read returns the raw token, or "" when the cookie is absent.
func (s *SessionCookie) Read(c *gin.Context) string {
	token, err := c.Cookie(s.Name)
	if err != nil {
		return ""
	}
	return token
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
