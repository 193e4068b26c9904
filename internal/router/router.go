package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"userhub/internal/config"
	"userhub/internal/handlers"
	"userhub/internal/importer"
	"userhub/internal/middleware"
	"userhub/internal/repository"
	"userhub/internal/service"
	"userhub/internal/uploads"
)

// Deps are the shared handles built in main.
type Deps struct {
	Users repository.UserRepository
	Store uploads.Store
	Redis *redis.Client // optional; login limiter falls back to in-process counters
}

func New(log zerolog.Logger, cfg config.Config, d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.NotFound(handlers.NotFound())

	// Health
	r.Get("/healthz", handlers.Health())

	// Services + handlers
	authSvc := service.NewAuthService(d.Users, cfg.SecretKey, cfg.TokenTTL, log)
	userSvc := service.NewUserService(d.Users)
	ah := handlers.NewAuthHTTP(authSvc, log)
	uh := handlers.NewUserHTTP(userSvc, importer.New(d.Users, log), d.Store, cfg.MaxUploadBytes, log)

	loginLimit := middleware.LoginRateLimit(cfg.LoginRateLimit, cfg.LoginRateWindow)
	if d.Redis != nil {
		loginLimit = middleware.NewRedisLimiter(d.Redis, "login", cfg.LoginRateLimit, cfg.LoginRateWindow, log).
			Middleware(middleware.KeyByEmail)
	}

	r.Route("/api", func(r chi.Router) {
		r.With(loginLimit).Post("/auth/login", ah.Login())

		r.Group(func(r chi.Router) {
			r.Use(middleware.WithAuth(log, authSvc))
			r.Use(middleware.RequireAuth)
			r.Get("/users", uh.Search())
			r.Get("/users/me", uh.Me())
			r.Post("/users/bulk-import", uh.BulkImport())
		})
	})

	return r
}
