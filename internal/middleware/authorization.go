package middleware

import (
	"net/http"

	"userhub/internal/utils"
)

// RequireAuth blocks when no user is present in context (set by WithAuth).
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFrom(r.Context()); !ok {
			utils.Error(w, http.StatusUnauthorized, utils.MsgUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
