// Package session implements the signed-cookie session: a short-lived
// HS256 token carrying the authenticated user's identity. All state
// lives in the cookie; the server keeps no session table.
package session

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nordqvist/webshop/internal/apperr"
	"github.com/nordqvist/webshop/internal/config"
	"github.com/nordqvist/webshop/internal/models"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// TTL is the session lifetime.
const TTL = 24 * time.Hour

// Identity is the authenticated principal carried by a session.
type Identity struct {
	UserID int64
	Email  string
}

// Manager issues, reads and clears session cookies.
type Manager struct {
	cfg *config.Config
}

// NewManager creates a session manager over the given configuration.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{cfg: cfg}
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issue writes a session cookie for the given user. The cookie is
// HTTP-only and SameSite=Lax; Secure follows SESSION_COOKIE_SECURE.
func (m *Manager) Issue(w http.ResponseWriter, user *models.User) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := token.SignedString([]byte(m.cfg.SecretKey()))
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure(),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Current returns the identity carried by the request's session cookie,
// or apperr.ErrAuthentication when the cookie is absent, expired or
// tampered with.
func (m *Manager) Current(r *http.Request) (*Identity, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, fmt.Errorf("%w: no session", apperr.ErrAuthentication)
	}

	var c claims
	token, err := jwt.ParseWithClaims(cookie.Value, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(m.cfg.SecretKey()), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid session", apperr.ErrAuthentication)
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session subject", apperr.ErrAuthentication)
	}
	return &Identity{UserID: userID, Email: c.Email}, nil
}

// Clear expires the session cookie. Idempotent: clearing an absent
// session is not an error.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure(),
		SameSite: http.SameSiteLaxMode,
	})
}
