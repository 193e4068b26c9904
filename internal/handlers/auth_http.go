package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"userhub/internal/service"
	"userhub/internal/utils"

	"github.com/rs/zerolog"
)

type AuthHTTP struct {
	svc *service.AuthService
	log zerolog.Logger
}

func NewAuthHTTP(s *service.AuthService, log zerolog.Logger) *AuthHTTP {
	return &AuthHTTP{svc: s, log: log}
}

var loginFields = []utils.Field{
	{Name: "email", Type: utils.String, Required: true},
	{Name: "pin", Type: utils.String, Required: true},
}

// POST /api/auth/login {email, pin}
func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
			utils.ErrorDetail(w, http.StatusBadRequest, utils.MsgEnterCorrectInput,
				[]utils.FieldError{{Field: "body", Message: "must be a JSON object"}})
			return
		}
		if errs := utils.ValidateJSON(body, loginFields); len(errs) > 0 {
			utils.ErrorDetail(w, http.StatusBadRequest, utils.MsgEnterCorrectInput, errs)
			return
		}
		email, _ := body["email"].(string)
		pin, _ := body["pin"].(string)

		res, err := h.svc.Login(r.Context(), email, pin)
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			utils.Error(w, http.StatusNotFound, utils.MsgUserNotExist)
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			utils.Error(w, http.StatusForbidden, utils.MsgInvalidCredentials)
			return
		case err != nil:
			logFrom(r, h.log).Error().Err(err).Msg("login failed")
			utils.Error(w, http.StatusInternalServerError, utils.MsgSomethingWentWrong)
			return
		}
		utils.OK(w, http.StatusOK, utils.MsgLoginSuccessfully, res)
	}
}
