package domain

import (
	"context"
	"time"
)

// User represents a registered account. Email is the natural key.
type User struct {
	ID               int64
	Email            string
	Name             string
	PasswordHash     string
	ProfilePhotoURL  string // Retrieval path, empty until a photo upload succeeds
	ProfilePhotoName string // Original client filename of the last upload
	Goal             string
	Age              int
	Weight           int
	Height           int
	FitnessLevel     string
	WeeklyGoal       int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UserRepository defines persistence operations for users, keyed by email.
type UserRepository interface {
	// Create inserts the user only if no record with the same email exists.
	// Returns ErrDuplicateEmail otherwise.
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Upsert overwrites the record for user.Email, inserting it if absent.
	Upsert(ctx context.Context, user *User) error
}

// PasswordHasher is a one-way password transform with verification.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. A malformed hash never matches.
	Verify(plaintext, hash string) bool
}
