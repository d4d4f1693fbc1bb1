package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/rs/zerolog/log"

	"easybooking/internal/domain"
)

const sessionCookieName = "sid"

// SessionCookie signs the session token into the sid cookie.
type SessionCookie struct {
	codec  *securecookie.SecureCookie
	secure bool
}

func NewSessionCookie(secret string, secure bool) *SessionCookie {
	return &SessionCookie{codec: securecookie.New([]byte(secret), nil), secure: secure}
}

func (c *SessionCookie) Write(w http.ResponseWriter, token string, expires time.Time) {
	v, err := c.codec.Encode(sessionCookieName, token)
	if err != nil {
		log.Error().Err(err).Msg("encode session cookie")
		return
	}
	maxAge := int(time.Until(expires).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    v,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the token of a cookie carrying a valid signature.
func (c *SessionCookie) Read(r *http.Request) (string, bool) {
	ck, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", false
	}
	var token string
	if err := c.codec.Decode(sessionCookieName, ck.Value, &token); err != nil {
		return "", false
	}
	return token, token != ""
}

func (c *SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type sessionKey struct{}

func withSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func sessionFrom(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(domain.Session)
	return s, ok
}
