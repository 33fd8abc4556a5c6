package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/fitme-accounts/internal/domain"
)

const userColumns = `id, email, name, password_hash, profile_photo_url, profile_photo_name,
	goal, age, weight, height, fitness_level, weekly_goal, created_at, updated_at`

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

// Create inserts the user unless the email is taken. The conflict check and
// the insert are a single statement, so concurrent signups cannot both win.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, name, password_hash, profile_photo_url, profile_photo_name,
			goal, age, weight, height, fitness_level, weekly_goal, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(email) DO NOTHING
		 RETURNING id`,
		user.Email, user.Name, user.PasswordHash, user.ProfilePhotoURL, user.ProfilePhotoName,
		user.Goal, user.Age, user.Weight, user.Height, user.FitnessLevel, user.WeeklyGoal, now, now,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.ProfilePhotoURL, &user.ProfilePhotoName,
		&user.Goal, &user.Age, &user.Weight, &user.Height, &user.FitnessLevel, &user.WeeklyGoal,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return user, nil
}

// Upsert overwrites every mutable column of the record keyed by user.Email.
// created_at is kept from the existing row.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, name, password_hash, profile_photo_url, profile_photo_name,
			goal, age, weight, height, fitness_level, weekly_goal, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET
			name = excluded.name,
			password_hash = excluded.password_hash,
			profile_photo_url = excluded.profile_photo_url,
			profile_photo_name = excluded.profile_photo_name,
			goal = excluded.goal,
			age = excluded.age,
			weight = excluded.weight,
			height = excluded.height,
			fitness_level = excluded.fitness_level,
			weekly_goal = excluded.weekly_goal,
			updated_at = excluded.updated_at
		 RETURNING id`,
		user.Email, user.Name, user.PasswordHash, user.ProfilePhotoURL, user.ProfilePhotoName,
		user.Goal, user.Age, user.Weight, user.Height, user.FitnessLevel, user.WeeklyGoal, now, now,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	user.ID = id
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	return nil
}
