// Package sessions implements the cookie-backed session tokens that bind a
// logged-in user to a client. A token is a signed JWT carrying the user id
// and a session id; the session id keys a server-side record so that logout
// invalidates the token before its signature expires.
package sessions

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the name of the session cookie.
const CookieName = "warbler_session"

var (
	ErrNoSessionCookie = errors.New("session cookie missing")
	ErrInvalidToken    = errors.New("invalid session token")
)

// Manager issues and parses session tokens.
type Manager struct {
	secretKey string        // Secret key for signing tokens
	exp       time.Duration // Token expiration duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithSecretKey sets the signing secret.
func WithSecretKey(secret string) Option {
	return func(m *Manager) { m.secretKey = secret }
}

// WithExpiration sets the token lifetime.
func WithExpiration(exp time.Duration) Option {
	return func(m *Manager) { m.exp = exp }
}

// New creates a new Manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		secretKey: "secret",
		exp:       time.Hour,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue creates a session token for the given user and returns the signed
// token together with the freshly generated session id.
func (m *Manager) Issue(ctx context.Context, userID int64) (token string, sessionID string, err error) {
	sessionID = uuid.NewString()

	claims := jwt.MapClaims{
		"user_id": userID,
		"sid":     sessionID,
		"exp":     time.Now().Add(m.exp).Unix(),
		"iat":     time.Now().Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", "", err
	}

	return token, sessionID, nil
}

// Parse validates the token signature and expiry and returns the user id and
// session id it carries.
func (m *Manager) Parse(ctx context.Context, tokenString string) (int64, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return 0, "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", ErrInvalidToken
	}

	// JSON numbers decode as float64
	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	sid, ok := claims["sid"].(string)
	if !ok {
		return 0, "", ErrInvalidToken
	}

	return int64(rawID), sid, nil
}

// FromRequest extracts the session token from the request cookie.
func (m *Manager) FromRequest(ctx context.Context, r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSessionCookie
	}
	return cookie.Value, nil
}

// SetCookie writes the session cookie on the response.
func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.exp.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie on the response.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
