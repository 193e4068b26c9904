package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"userhub/internal/config"
	"userhub/internal/middleware"
	"userhub/internal/models"
	"userhub/internal/repository/memory"
	"userhub/internal/uploads"
	"userhub/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() config.Config {
	return config.Config{
		Origin:          "http://localhost:3000",
		SecretKey:       "secret",
		TokenTTL:        time.Hour,
		MaxUploadBytes:  1 << 20,
		LoginRateLimit:  3,
		LoginRateWindow: time.Hour,
	}
}

func newServer(t *testing.T, rdb *redis.Client) (http.Handler, *memory.UserRepo) {
	t.Helper()
	repo := memory.NewUserRepo()
	hash, err := utils.HashPinWithCost("1234", bcrypt.MinCost)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), models.NewUser{
		FirstName: "ada", LastName: "lovelace", Email: "ada@example.com", PinHash: hash,
	})
	require.NoError(t, err)

	store, err := uploads.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	return New(zerolog.Nop(), testConfig(), Deps{Users: repo, Store: store, Redis: rdb}), repo
}

func do(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := do(h, http.MethodPost, "/api/auth/login", "", `{"email":"ada@example.com","pin":"1234"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Data.Token
}

func TestHealthz(t *testing.T) {
	h, _ := newServer(t, nil)

	rec := do(h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Contains(t, rec.Body.String(), `"status":true`)
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newServer(t, nil)

	rec := do(h, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), utils.MsgNotFound)
}

func TestProtectedRoutes(t *testing.T) {
	h, repo := newServer(t, nil)

	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/api/users/me", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPost, "/api/users/bulk-import", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/api/users?page=1&size=10", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/api/users?page=1&size=10", "not-a-jwt", "").Code)

	tok := loginToken(t, h)
	rec := do(h, http.MethodGet, "/api/users?page=1&size=10", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ada@example.com"`)

	rec = do(h, http.MethodGet, "/api/users/me", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ada@example.com"`)

	// a newer login supersedes the older token
	newer := loginToken(t, h)
	require.NotEqual(t, tok, newer)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/api/users/me", tok, "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/users/me", newer, "").Code)

	u, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	repo.Deactivate(u.ID, time.Now())
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/api/users/me", newer, "").Code)
}

func TestLoginRateLimit(t *testing.T) {
	for name, rdb := range map[string]func(t *testing.T) *redis.Client{
		"memory": func(*testing.T) *redis.Client { return nil },
		"redis": func(t *testing.T) *redis.Client {
			mr := miniredis.RunT(t)
			c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = c.Close() })
			return c
		},
	} {
		t.Run(name, func(t *testing.T) {
			h, _ := newServer(t, rdb(t))
			body := `{"email":"ghost@example.com","pin":"1"}`

			for i := 0; i < 3; i++ {
				assert.Equal(t, http.StatusNotFound, do(h, http.MethodPost, "/api/auth/login", "", body).Code)
			}
			assert.Equal(t, http.StatusTooManyRequests, do(h, http.MethodPost, "/api/auth/login", "", body).Code)
			assert.Equal(t, http.StatusOK, do(h, http.MethodPost, "/api/auth/login", "",
				`{"email":"ada@example.com","pin":"1234"}`).Code)
		})
	}
}
