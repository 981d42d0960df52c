package middleware

import (
	"net/http"
	"strings"

	"github.com/smarteval/auth-service/internal/application/auth"
	"github.com/smarteval/auth-service/internal/domain"
)

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// RequireAuth verifies Authorization: Bearer <token> against the guard and
// injects the authenticated user into the request context. An empty role set
// means any authenticated user passes.
func RequireAuth(guard *auth.Guard, class auth.TokenClass, writeErr WriteErrFunc, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearerToken(r)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			u, err := guard.Check(r.Context(), raw, class, roles...)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", domain.ErrTokenMissing()
	}

	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", domain.ErrTokenInvalid()
	}

	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return "", domain.ErrTokenInvalid()
	}
	return raw, nil
}
