// Package middleware holds the HTTP capability gates shared by the
// protected routes.
package middleware

import (
	"context"
	"net/http"

	"github.com/nordqvist/webshop/internal/flash"
	"github.com/nordqvist/webshop/internal/session"
)

type contextKey string

// identityKey stores the authenticated identity in the request context.
const identityKey contextKey = "identity"

// IdentityFrom returns the authenticated identity placed in the context
// by RequireAuth, or nil outside a protected route.
func IdentityFrom(ctx context.Context) *session.Identity {
	id, _ := ctx.Value(identityKey).(*session.Identity)
	return id
}

// WithIdentity returns a context carrying the given identity. Exposed
// for handler tests.
func WithIdentity(ctx context.Context, id *session.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// RequireAuth gates any handler behind a valid session. Requests without
// one are redirected to the login page before the wrapped handler runs;
// authenticated requests proceed with the identity in their context.
func RequireAuth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := sessions.Current(r)
			if err != nil {
				flash.Set(w, "Please log in to access this page.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
