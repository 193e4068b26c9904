package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"userhub/internal/config"
	"userhub/internal/database"
	"userhub/internal/repository/postgres"
	"userhub/internal/router"
	"userhub/internal/uploads"
	"userhub/pkg/logger"

	"github.com/redis/go-redis/v9"
)

func main() {
	// config + logger
	cfg := config.Load()
	l := logger.New(cfg.Env, cfg.LogLevel, cfg.LogFormat)

	// db
	pool, err := database.Open(context.Background(), cfg)
	if err != nil {
		l.Fatal().Err(err).Msg("db connect failed")
	}
	defer pool.Close()
	if err := database.Migrate(context.Background(), pool); err != nil {
		l.Fatal().Err(err).Msg("db migrate failed")
	}

	// uploads
	var store uploads.Store
	switch cfg.UploadBackend {
	case "s3":
		store, err = uploads.NewS3Store(context.Background(), uploads.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    cfg.S3Prefix,
		})
	default:
		store, err = uploads.NewDiskStore(cfg.UploadDir)
	}
	if err != nil {
		l.Fatal().Err(err).Str("backend", cfg.UploadBackend).Msg("upload store init failed")
	}

	// redis (optional, shared login limiter)
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			l.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		defer rdb.Close()
	}

	// http
	r := router.New(l, cfg, router.Deps{
		Users: postgres.NewUserRepo(pool),
		Store: store,
		Redis: rdb,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info().Msg("shutdown complete")
}
