package httpserver

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const (
	defaultSessionCookie = "hangman"
	sessionLifetime      = 7 * 24 * time.Hour
	sessionIssuer        = "hangman"
)

// Sessions binds a browser to one game identifier through an HS256-signed
// cookie. The signing key is derived from the configured secret with HKDF.
type Sessions struct {
	key    []byte
	name   string
	secure bool
	now    func() time.Time
}

// NewSessions derives the signing key. An empty secret is rejected.
func NewSessions(secret, cookieName string, secure bool) (*Sessions, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	if cookieName == "" {
		cookieName = defaultSessionCookie
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte("hangman session v1")), key); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return &Sessions{key: key, name: cookieName, secure: secure, now: time.Now}, nil
}

// Read returns the game identifier stored in the request's session cookie.
func (s *Sessions) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.name)
	if err != nil || c.Value == "" {
		return "", false
	}
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(c.Value, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// Write stores id in a fresh session cookie.
func (s *Sessions) Write(w http.ResponseWriter, id string) error {
	now := s.now()
	exp := now.Add(sessionLifetime)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := tok.SignedString(s.key)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	http.SetCookie(w, s.cookie(signed, exp))
	return nil
}

// Clear deletes the session cookie.
func (s *Sessions) Clear(w http.ResponseWriter) {
	c := s.cookie("", time.Time{})
	c.MaxAge = -1
	http.SetCookie(w, c)
}

func (s *Sessions) cookie(value string, exp time.Time) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if s.secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	return &http.Cookie{
		Name:     s.name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: sameSite,
		Expires:  exp,
	}
}
