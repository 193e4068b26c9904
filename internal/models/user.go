package models

import (
	"strings"
	"time"
	"unicode"
)

type User struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	CountryCode   string     `json:"country_code"`
	Address       string     `json:"address"`
	PinHash       string     `json:"-"`
	AuthToken     string     `json:"-"`
	LastLoginAt   *time.Time `json:"last_login_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeactivatedAt *time.Time `json:"deactivated_at"`
}

// Active reports whether the account may log in.
func (u *User) Active() bool { return u.DeactivatedAt == nil }

// DisplayName is "first last", or the title-cased first name when there is
// no last name.
func (u *User) DisplayName() string {
	if strings.TrimSpace(u.LastName) != "" {
		return u.FirstName + " " + u.LastName
	}
	return titleCase(u.FirstName)
}

// NewUser is a pending record produced by seeding or bulk import.
type NewUser struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	CountryCode string
	Address     string
	PinHash     string
}

// UserDetails is the public projection of a user.
type UserDetails struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	CountryCode   string     `json:"country_code"`
	Address       string     `json:"address"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`
}

func (u *User) Details() UserDetails {
	return UserDetails{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Name:          u.DisplayName(),
		Phone:         u.Phone,
		CountryCode:   u.CountryCode,
		Address:       u.Address,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
		LastLoginAt:   u.LastLoginAt,
		DeactivatedAt: u.DeactivatedAt,
	}
}

func SerializeUsers(users []User) []UserDetails {
	out := make([]UserDetails, 0, len(users))
	for i := range users {
		out = append(out, users[i].Details())
	}
	return out
}

// titleCase upper-cases the first letter of every word and lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := true
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			start = true
			b.WriteRune(r)
		case start:
			b.WriteRune(unicode.ToUpper(r))
			start = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
