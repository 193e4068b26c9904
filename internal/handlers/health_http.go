package handlers

import (
	"net/http"

	"userhub/internal/utils"

	"github.com/rs/zerolog"
)

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.OK(w, http.StatusOK, utils.MsgSuccess, map[string]string{"status": "ok"})
	}
}

// NotFound answers unknown routes with the standard envelope.
func NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, http.StatusNotFound, utils.MsgNotFound)
	}
}

// logFrom prefers the request-scoped logger set by RequestLogger.
func logFrom(r *http.Request, fallback zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &fallback
}
