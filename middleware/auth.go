package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"go-shop/auth"
)

// TokenHeader is the request header carrying the session token.
const TokenHeader = "x-auth-token"

type contextKey string

const principalKey = contextKey("principal")

// RequireAuth verifies the session token and attaches the resulting
// principal to the request context. A missing token is rejected with 401,
// an unverifiable one with 400. Either failure ends the request here; the
// wrapped handler never runs.
func RequireAuth(tokens *auth.TokenService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				http.Error(w, "No token provided", http.StatusUnauthorized)
				return
			}

			principal, err := tokens.Verify(token)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusBadRequest)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin principals with 403. It must be chained
// after RequireAuth; a request with no principal on the context is treated
// as unauthenticated.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFrom(r.Context())
		if !ok {
			http.Error(w, "No token provided", http.StatusUnauthorized)
			return
		}
		if !principal.IsAdmin {
			http.Error(w, "User must be an admin", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PrincipalFrom returns the authenticated principal placed on the context
// by RequireAuth.
func PrincipalFrom(ctx context.Context) (auth.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(auth.Principal)
	return principal, ok
}
