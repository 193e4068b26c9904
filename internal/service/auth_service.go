package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"userhub/internal/models"
	"userhub/internal/repository"
	"userhub/internal/utils"

	"github.com/rs/zerolog"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

type AuthService struct {
	users     repository.UserRepository
	secretKey string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(users repository.UserRepository, secretKey string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, secretKey: secretKey, tokenTTL: tokenTTL, log: log, now: time.Now}
}

type LoginResult struct {
	Token   string             `json:"token"`
	Details models.UserDetails `json:"details"`
	User    *models.User       `json:"-"`
}

// Login verifies email+pin and issues a token. Missing users and lookup
// failures both surface as ErrUserNotFound; a wrong pin and a deactivated
// account both surface as ErrInvalidCredentials.
func (a *AuthService) Login(ctx context.Context, email, pin string) (*LoginResult, error) {
	u, err := a.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			a.log.Error().Err(err).Msg("login: user lookup failed")
		}
		return nil, ErrUserNotFound
	}

	// the pin is checked first so both rejection paths cost one bcrypt compare
	pinOK := utils.CheckPin(u.PinHash, pin)
	if !pinOK || !u.Active() {
		return nil, ErrInvalidCredentials
	}

	now := a.now().UTC().Truncate(time.Microsecond)
	if u.LastLoginAt != nil && !now.After(*u.LastLoginAt) {
		now = u.LastLoginAt.Add(time.Microsecond)
	}

	token, err := utils.SignJWT(a.secretKey, u.ID, now, a.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	if err := a.users.RecordLogin(ctx, u.ID, token, now); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}

	u.AuthToken = token
	u.LastLoginAt = &now
	u.UpdatedAt = now
	return &LoginResult{Token: token, Details: u.Details(), User: u}, nil
}

// Authenticate resolves a bearer token to its user. The token must be the
// user's current one and the account must be active.
func (a *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := utils.ParseJWT(a.secretKey, token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	u, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			a.log.Error().Err(err).Str("user_id", claims.UserID).Msg("auth: user lookup failed")
		}
		return nil, ErrUnauthorized
	}
	if !u.Active() || u.AuthToken != token {
		return nil, ErrUnauthorized
	}
	return u, nil
}
