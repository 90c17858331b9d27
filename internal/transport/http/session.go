package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/util"
)

const (
	sessionCookieName  = "wanderlust_session"
	returnToCookieName = "wanderlust_return_to"
)

// SessionCookies signs and reads the login cookie. The cookie value is a JWT
// wrapping the opaque session token; tampering invalidates the signature and
// the login silently drops.
type SessionCookies struct {
	jwt *util.JWTManager
}

func NewSessionCookies(secret string, ttl time.Duration) *SessionCookies {
	return &SessionCookies{jwt: util.NewJWTManager(secret, ttl)}
}

func (s *SessionCookies) write(c echo.Context, session *domain.Session) error {
	signed, expiresAt, err := s.jwt.Generate(session.Token, session.UserID)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// read returns the opaque session token, or "" when the cookie is missing or
// fails verification.
func (s *SessionCookies) read(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	claims, err := s.jwt.Parse(cookie.Value)
	if err != nil {
		return ""
	}
	return claims.SessionToken
}

func (s *SessionCookies) clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func rememberReturnTo(c echo.Context, path string) {
	c.SetCookie(&http.Cookie{
		Name:     returnToCookieName,
		Value:    path,
		Path:     "/",
		HttpOnly: true,
	})
}

// popReturnTo yields the stored post-login destination, defaulting to
// /listings.
func popReturnTo(c echo.Context) string {
	cookie, err := c.Cookie(returnToCookieName)
	if err != nil || cookie.Value == "" {
		return "/listings"
	}
	c.SetCookie(&http.Cookie{
		Name:     returnToCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	// Only same-site paths; "//host" would redirect off-site.
	if cookie.Value[0] != '/' || strings.HasPrefix(cookie.Value, "//") {
		return "/listings"
	}
	return cookie.Value
}
