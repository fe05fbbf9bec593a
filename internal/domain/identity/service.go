package identity

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/clinic/internal/platform/auth"
	"github.com/clinicore/clinic/internal/platform/httpx"
)

const bcryptCost = 10

type Service struct {
	users Repository
}

func NewService(users Repository) *Service {
	return &Service{users: users}
}

// Register creates a USER account. Admin accounts are provisioned directly,
// never through the public form.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if len(name) < 2 {
		return nil, fmt.Errorf("name must be at least 2 characters")
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("please enter a valid email")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         auth.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and enforces strict form separation: the admin
// login form admits only ADMIN users and the regular form only non-admins, so
// an admin account can never be used through the generic form. Every rejection
// is the same generic message.
func (s *Service) Login(ctx context.Context, email, password, formRole string) (*User, error) {
	invalid := fmt.Errorf("invalid credentials: %w", httpx.ErrNotAuthenticated)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, invalid
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, invalid
	}

	switch formRole {
	case auth.RoleAdmin:
		if user.Role != auth.RoleAdmin {
			return nil, invalid
		}
	default:
		if user.Role == auth.RoleAdmin {
			return nil, invalid
		}
	}

	return user, nil
}

// Principal builds the auth principal for a user.
func Principal(u *User) auth.Principal {
	return auth.Principal{UserID: u.ID, Role: u.Role, AccessGroupID: u.AccessGroupID}
}
