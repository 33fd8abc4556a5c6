package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/fitme-accounts/internal/domain"
)

// NewUser is the signup payload.
type NewUser struct {
	Email    string
	Name     string
	Password string
}

// AccountService handles signup, credential checks, and raw record access.
type AccountService struct {
	users  domain.UserRepository
	hasher domain.PasswordHasher
}

// NewAccountService creates a new AccountService.
func NewAccountService(users domain.UserRepository, hasher domain.PasswordHasher) *AccountService {
	return &AccountService{users: users, hasher: hasher}
}

// CreateUser registers a new account. The stored record carries only the
// password hash, never the plaintext.
func (s *AccountService) CreateUser(ctx context.Context, in NewUser) (*domain.User, error) {
	if in.Email == "" || in.Name == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: missing required fields", domain.ErrInvalidInput)
	}

	_, found, err := s.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
	}

	// Create is insert-if-absent, so a concurrent signup that slipped past
	// the lookup above still fails with ErrDuplicateEmail.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// AuthenticateUser verifies credentials and returns the stored user.
// Unknown emails yield ErrNotFound and bad passwords ErrUnauthorized;
// callers facing the public should not tell the two apart.
func (s *AccountService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}

// FindByEmail looks a user up without treating absence as an error.
func (s *AccountService) FindByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get user: %w", err)
	}
	return user, true, nil
}

// SaveUser upserts the record keyed by user.Email.
func (s *AccountService) SaveUser(ctx context.Context, user *domain.User) error {
	if user.Email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if user.PasswordHash == "" {
		return fmt.Errorf("%w: password hash is required", domain.ErrInvalidInput)
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}
