package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"userhub/internal/utils"

	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const maxKeyBody = 64 << 10

// KeyByEmail keys a login request by the email in its JSON body and falls
// back to the client IP when none can be read. The body is restored for the
// handler.
func KeyByEmail(r *http.Request) (string, error) {
	if r.Body != nil {
		b, err := io.ReadAll(io.LimitReader(r.Body, maxKeyBody))
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(b))
		if err == nil {
			var in struct {
				Email any `json:"email"`
			}
			if json.Unmarshal(b, &in) == nil {
				if s, ok := in.Email.(string); ok && strings.TrimSpace(s) != "" {
					return "email:" + strings.ToLower(strings.TrimSpace(s)), nil
				}
			}
		}
	}
	ip, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + ip, nil
}

func tooManyRequests(w http.ResponseWriter, _ *http.Request) {
	utils.Error(w, http.StatusTooManyRequests, utils.MsgTooManyRequests)
}

// LoginRateLimit limits requests per email with an in-process counter.
func LoginRateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(KeyByEmail),
		httprate.WithLimitHandler(tooManyRequests),
	)
}

// RedisLimiter is a fixed-window limiter shared between instances.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	log    zerolog.Logger
}

func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration, log zerolog.Logger) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, limit: limit, window: window, log: log}
}

// Allow counts one hit for key and reports whether it is within the limit.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(l.limit), nil
}

func (l *RedisLimiter) Middleware(keyFunc httprate.KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, err := keyFunc(r)
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, utils.MsgSomethingWentWrong)
				return
			}
			ok, err := l.Allow(r.Context(), key)
			if err != nil {
				l.log.Error().Err(err).Str("request_id", RequestIDFrom(r.Context())).Msg("rate limiter error")
				utils.Error(w, http.StatusInternalServerError, utils.MsgSomethingWentWrong)
				return
			}
			if !ok {
				tooManyRequests(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
