package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordqvist/webshop/internal/config"
	"github.com/nordqvist/webshop/internal/flash"
	"github.com/nordqvist/webshop/internal/models"
	"github.com/nordqvist/webshop/internal/session"
)

func TestRequireAuth_RedirectsAnonymous(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	sessions := session.NewManager(&config.Config{})

	called := false
	h := RequireAuth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.False(t, called, "protected handler must not run without a session")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, flash.CookieName, cookies[0].Name)
}

func TestRequireAuth_PassesIdentity(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	sessions := session.NewManager(&config.Config{})

	issue := httptest.NewRecorder()
	require.NoError(t, sessions.Issue(issue, &models.User{ID: 9, Email: "anna@example.com"}))
	cookie := issue.Result().Cookies()[0]

	var got *session.Identity
	h := RequireAuth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, int64(9), got.UserID)
}
