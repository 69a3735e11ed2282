// Package services holds the stateless session token service.
package services

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie the session token travels in.
const CookieName = "token"

// TokenTTL is how long an issued session stays valid.
const TokenTTL = 30 * 24 * time.Hour

// ErrInvalidToken is returned by Verify for anything that is not a
// well-signed, unexpired token.
var ErrInvalidToken = errors.New("invalid session token")

// SessionService issues and verifies signed session tokens. The server
// keeps no session state; the cookie is the whole session.
type SessionService struct {
	secret     []byte
	production bool
}

// NewSessionService creates a session service signing with secret. The
// production flag switches the cookie to cross-site mode.
func NewSessionService(secret string, production bool) *SessionService {
	return &SessionService{secret: []byte(secret), production: production}
}

// Issue signs a token carrying the given email, valid for TokenTTL.
func (s *SessionService) Issue(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(TokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Verify checks the signature and expiry and returns the embedded email.
func (s *SessionService) Verify(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}

// Cookie wraps a signed token in the session cookie. In production the
// frontend lives on another origin, so the cookie must be cross-site
// (SameSite=None requires Secure); everywhere else it stays strict.
func (s *SessionService) Cookie(token string) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if s.production {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}

// ClearCookie expires the session cookie immediately, with the same
// attribute policy as issuance.
func (s *SessionService) ClearCookie() *http.Cookie {
	c := s.Cookie("")
	c.MaxAge = -1
	return c
}
