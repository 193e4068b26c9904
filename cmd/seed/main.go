// Command seed creates the first admin account from SEED_* variables.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"userhub/internal/config"
	"userhub/internal/database"
	"userhub/internal/models"
	"userhub/internal/repository"
	"userhub/internal/repository/postgres"
	"userhub/internal/service"
	"userhub/pkg/logger"
)

func main() {
	cfg := config.Load()
	l := logger.New(cfg.Env, cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.Open(ctx, cfg)
	if err != nil {
		l.Fatal().Err(err).Msg("db connect failed")
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		l.Fatal().Err(err).Msg("db migrate failed")
	}

	svc := service.NewUserService(postgres.NewUserRepo(pool))
	u, err := svc.CreateWithPin(ctx, models.NewUser{
		FirstName: os.Getenv("SEED_FIRST_NAME"),
		LastName:  os.Getenv("SEED_LAST_NAME"),
		Email:     os.Getenv("SEED_EMAIL"),
		Phone:     os.Getenv("SEED_PHONE"),
	}, os.Getenv("SEED_PIN"))
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		l.Warn().Str("email", os.Getenv("SEED_EMAIL")).Msg("user already exists, left unchanged")
	case err != nil:
		l.Fatal().Err(err).Msg("seed failed")
	default:
		l.Info().Str("id", u.ID).Str("email", u.Email).Msg("admin user created")
	}
}
