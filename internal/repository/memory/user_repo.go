// Package memory is an in-process UserRepository with the same filter, sort
// and uniqueness rules as the postgres one. Handlers and services are tested
// against it.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"userhub/internal/models"
	"userhub/internal/repository"

	"github.com/google/uuid"
)

type UserRepo struct {
	mu    sync.Mutex
	users []models.User
	now   func() time.Time
}

func NewUserRepo() *UserRepo { return &UserRepo{now: time.Now} }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) List(_ context.Context, f repository.UserFilter) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f = f.Normalized()
	matched := r.match(f.Q)
	sortUsers(matched, f.Sort)

	out := []models.User{}
	for i := f.Offset(); i < len(matched) && len(out) < f.Size; i++ {
		out = append(out, matched[i])
	}
	return out, nil
}

func (r *UserRepo) Count(_ context.Context, f repository.UserFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.match(f.Q)), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		u := r.users[i]
		return &u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *UserRepo) RecordLogin(_ context.Context, id, token string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return repository.ErrUserNotFound
	}
	r.users[i].AuthToken = token
	r.users[i].LastLoginAt = &at
	r.users[i].UpdatedAt = at
	return nil
}

func (r *UserRepo) Create(_ context.Context, nu models.NewUser) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(nu.Email) {
		return nil, repository.ErrDuplicateEmail
	}
	u := r.build(nu)
	r.users = append(r.users, u)
	return &u, nil
}

// BulkCreate stores every user or none of them.
func (r *UserRepo) BulkCreate(_ context.Context, users []models.NewUser) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(users))
	for _, nu := range users {
		if _, dup := seen[nu.Email]; dup || r.emailTaken(nu.Email) {
			return 0, repository.ErrDuplicateEmail
		}
		seen[nu.Email] = struct{}{}
	}
	for _, nu := range users {
		r.users = append(r.users, r.build(nu))
	}
	return len(users), nil
}

// Deactivate marks a user inactive.
func (r *UserRepo) Deactivate(id string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		r.users[i].DeactivatedAt = &at
	}
}

func (r *UserRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func (r *UserRepo) build(nu models.NewUser) models.User {
	id := nu.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := r.now().UTC()
	return models.User{
		ID: id, FirstName: nu.FirstName, LastName: nu.LastName, Email: nu.Email,
		Phone: nu.Phone, CountryCode: nu.CountryCode, Address: nu.Address, PinHash: nu.PinHash,
		CreatedAt: now, UpdatedAt: now,
	}
}

func (r *UserRepo) match(q string) []models.User {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []models.User{}
	for _, u := range r.users {
		if q == "" ||
			strings.Contains(strings.ToLower(u.FirstName), q) ||
			strings.Contains(strings.ToLower(u.LastName), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.Phone), q) {
			out = append(out, u)
		}
	}
	return out
}

func (r *UserRepo) indexOf(id string) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *UserRepo) emailTaken(email string) bool {
	for i := range r.users {
		if r.users[i].Email == email {
			return true
		}
	}
	return false
}

func sortUsers(users []models.User, key string) {
	key = strings.ToLower(strings.TrimSpace(key))
	desc := strings.HasPrefix(key, "-")
	key = strings.TrimPrefix(key, "-")

	var less func(a, b *models.User) int
	switch key {
	case "first_name":
		less = func(a, b *models.User) int { return strings.Compare(a.FirstName, b.FirstName) }
	case "last_name":
		less = func(a, b *models.User) int { return strings.Compare(a.LastName, b.LastName) }
	case "email":
		less = func(a, b *models.User) int { return strings.Compare(a.Email, b.Email) }
	case "updated_at":
		less = func(a, b *models.User) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	case "last_login_at":
		less = func(a, b *models.User) int { return compareOptTime(a.LastLoginAt, b.LastLoginAt) }
	case "created_at":
		less = func(a, b *models.User) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		less = func(a, b *models.User) int { return a.CreatedAt.Compare(b.CreatedAt) }
		desc = true
	}

	sort.SliceStable(users, func(i, j int) bool {
		c := less(&users[i], &users[j])
		if desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return users[i].ID < users[j].ID
	})
}

// compareOptTime orders nil after any time, like NULLS LAST.
func compareOptTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}
