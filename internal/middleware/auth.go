package middleware

import (
	"context"
	"net/http"
	"strings"

	"userhub/internal/models"

	"github.com/rs/zerolog"
)

// Authenticator resolves a bearer token to the account it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxUser, u)
}

func UserFrom(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxUser).(*models.User)
	return u, ok && u != nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// WithAuth loads the caller when a valid bearer token is present. Requests
// without one pass through unauthenticated; RequireAuth decides.
func WithAuth(log zerolog.Logger, auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerToken(r)
			if tok == "" {
				next.ServeHTTP(w, r)
				return
			}

			u, err := auth.Authenticate(r.Context(), tok)
			if err != nil {
				log.Debug().Err(err).Str("request_id", RequestIDFrom(r.Context())).Msg("bearer token rejected")
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}
