package service

import (
	"context"
	"fmt"
	"strings"

	"userhub/internal/models"
	"userhub/internal/repository"
	"userhub/internal/utils"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

type PaginationMeta struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
}

func NewPaginationMeta(page, size, total int) PaginationMeta {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return PaginationMeta{CurrentPage: page, PageSize: size, TotalItems: total, TotalPages: pages}
}

type SearchPage struct {
	Result     []models.UserDetails `json:"result"`
	Pagination PaginationMeta       `json:"pagination_metadata"`
}

// Search returns one page plus the total count for the same filter.
func (s *UserService) Search(ctx context.Context, f repository.UserFilter) (*SearchPage, error) {
	f = f.Normalized()

	users, err := s.users.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.users.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	return &SearchPage{
		Result:     models.SerializeUsers(users),
		Pagination: NewPaginationMeta(f.Page, f.Size, total),
	}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// CreateWithPin stores a user whose pin is hashed first; used by seeding.
func (s *UserService) CreateWithPin(ctx context.Context, nu models.NewUser, pin string) (*models.User, error) {
	nu.FirstName = strings.TrimSpace(nu.FirstName)
	nu.Email = strings.TrimSpace(nu.Email)
	if nu.FirstName == "" || nu.Email == "" || strings.TrimSpace(pin) == "" {
		return nil, fmt.Errorf("first name, email and pin are required")
	}
	hash, err := utils.HashPin(pin)
	if err != nil {
		return nil, err
	}
	nu.PinHash = hash
	return s.users.Create(ctx, nu)
}
