package sqlite_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/msomdec/fitme-accounts/internal/domain"
	"github.com/msomdec/fitme-accounts/internal/repository/sqlite"
)

func TestUserRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		Email:        "test@example.com",
		Name:         "Test User",
		PasswordHash: "hashedpw",
	}

	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == 0 {
		t.Fatal("expected user ID to be set after create")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user1 := &domain.User{Email: "dup@example.com", Name: "User 1", PasswordHash: "hash1"}
	if err := repo.Create(ctx, user1); err != nil {
		t.Fatalf("Create user1: %v", err)
	}

	user2 := &domain.User{Email: "dup@example.com", Name: "User 2", PasswordHash: "hash2"}
	err := repo.Create(ctx, user2)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// The original record is untouched.
	found, err := repo.GetByEmail(ctx, "dup@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if found.Name != "User 1" || found.PasswordHash != "hash1" {
		t.Fatalf("expected first user to survive, got %+v", found)
	}
}

func TestUserRepository_Create_ConcurrentSameEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, &domain.User{Email: "race@example.com", Name: "Racer", PasswordHash: "h"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, domain.ErrDuplicateEmail):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("expected exactly one create to succeed, got %d", created)
	}
	if conflicts != attempts-1 {
		t.Fatalf("expected %d conflicts, got %d", attempts-1, conflicts)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		Email:        "byemail@example.com",
		Name:         "By Email",
		PasswordHash: "hash",
		Goal:         "build muscle",
		Age:          31,
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.GetByEmail(ctx, "byemail@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}

	if found.ID != user.ID {
		t.Fatalf("expected id %d, got %d", user.ID, found.ID)
	}
	if found.Name != "By Email" || found.Goal != "build muscle" || found.Age != 31 {
		t.Fatalf("unexpected user: %+v", found)
	}
	if found.ProfilePhotoURL != "" {
		t.Fatalf("expected empty photo url, got %q", found.ProfilePhotoURL)
	}
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)

	_, err := repo.GetByEmail(context.Background(), "nonexistent@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_Upsert_UpdatesExisting(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Email: "up@example.com", Name: "Before", PasswordHash: "hash"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	originalID := user.ID

	user.Name = "After"
	user.ProfilePhotoURL = "/api/user/profile/photo/abc.png"
	user.ProfilePhotoName = "me.png"
	user.Goal = "run a marathon"
	user.Age = 40
	user.Weight = 70
	user.Height = 180
	user.FitnessLevel = "advanced"
	user.WeeklyGoal = 5
	if err := repo.Upsert(ctx, user); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if user.ID != originalID {
		t.Fatalf("expected id %d to be kept, got %d", originalID, user.ID)
	}

	found, err := repo.GetByEmail(ctx, "up@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if found.Name != "After" || found.ProfilePhotoURL != "/api/user/profile/photo/abc.png" ||
		found.ProfilePhotoName != "me.png" || found.Goal != "run a marathon" || found.Age != 40 ||
		found.Weight != 70 || found.Height != 180 || found.FitnessLevel != "advanced" || found.WeeklyGoal != 5 {
		t.Fatalf("upsert did not overwrite fields: %+v", found)
	}
}

func TestUserRepository_Upsert_InsertsMissing(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Email: "fresh@example.com", Name: "Fresh", PasswordHash: "hash"}
	if err := repo.Upsert(ctx, user); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected ID to be set after upsert insert")
	}

	if _, err := repo.GetByEmail(ctx, "fresh@example.com"); err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
}
