package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/fitme-accounts/internal/domain"
)

// DBTX is the subset of database/sql used by the repository.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query :=
		`INSERT INTO users (email, name, password_hash, profile_photo_url, profile_photo_name,
			goal, age, weight, height, fitness_level, weekly_goal)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Name, user.PasswordHash, user.ProfilePhotoURL, user.ProfilePhotoName,
		user.Goal, user.Age, user.Weight, user.Height, user.FitnessLevel, user.WeeklyGoal,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query :=
		`SELECT id, email, name, password_hash, profile_photo_url, profile_photo_name,
			goal, age, weight, height, fitness_level, weekly_goal, created_at, updated_at
		 FROM users
		 WHERE email = $1`

	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.ProfilePhotoURL, &user.ProfilePhotoName,
		&user.Goal, &user.Age, &user.Weight, &user.Height, &user.FitnessLevel, &user.WeeklyGoal,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	query :=
		`INSERT INTO users (email, name, password_hash, profile_photo_url, profile_photo_name,
			goal, age, weight, height, fitness_level, weekly_goal)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			password_hash = EXCLUDED.password_hash,
			profile_photo_url = EXCLUDED.profile_photo_url,
			profile_photo_name = EXCLUDED.profile_photo_name,
			goal = EXCLUDED.goal,
			age = EXCLUDED.age,
			weight = EXCLUDED.weight,
			height = EXCLUDED.height,
			fitness_level = EXCLUDED.fitness_level,
			weekly_goal = EXCLUDED.weekly_goal,
			updated_at = now()
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Name, user.PasswordHash, user.ProfilePhotoURL, user.ProfilePhotoName,
		user.Goal, user.Age, user.Weight, user.Height, user.FitnessLevel, user.WeeklyGoal,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
