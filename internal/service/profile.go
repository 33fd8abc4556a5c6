package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/fitme-accounts/internal/domain"
)

// PhotoUpload is an uploaded profile photo.
type PhotoUpload struct {
	Filename string // Original client filename
	Data     []byte
}

// ProfileUpdate carries the editable profile fields for one account.
type ProfileUpdate struct {
	Email        string
	Name         string
	Goal         string
	Age          int
	Weight       int
	Height       int
	FitnessLevel string
	WeeklyGoal   int
	Photo        *PhotoUpload // Optional
}

// ProfileService updates profiles and serves stored photos.
type ProfileService struct {
	users domain.UserRepository
	files domain.FileStore
}

// NewProfileService creates a new ProfileService.
func NewProfileService(users domain.UserRepository, files domain.FileStore) *ProfileService {
	return &ProfileService{users: users, files: files}
}

// UpdateProfile overwrites the profile fields of an existing account and
// stores the photo, if any. The photo is written before the record is
// persisted so the record never points at a missing file.
func (s *ProfileService) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, upd.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	user.Name = upd.Name
	user.Goal = upd.Goal
	user.Age = upd.Age
	user.Weight = upd.Weight
	user.Height = upd.Height
	user.FitnessLevel = upd.FitnessLevel
	user.WeeklyGoal = upd.WeeklyGoal

	if upd.Photo != nil && len(upd.Photo.Data) > 0 {
		key := PhotoKey(user.Email, upd.Photo.Filename)
		if err := s.files.Save(ctx, key, upd.Photo.Data); err != nil {
			return nil, fmt.Errorf("%w: save photo: %w", domain.ErrStorage, err)
		}
		user.ProfilePhotoURL = PhotoURLPrefix + key
		user.ProfilePhotoName = upd.Photo.Filename
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	return user, nil
}

// GetProfilePhoto returns the raw bytes stored under key. Keys that were not
// produced by PhotoKey are reported as not found without touching storage.
func (s *ProfileService) GetProfilePhoto(ctx context.Context, key string) ([]byte, error) {
	if !ValidPhotoKey(key) {
		return nil, domain.ErrNotFound
	}

	ok, err := s.files.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: check photo: %w", domain.ErrStorage, err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}

	data, err := s.files.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: read photo: %w", domain.ErrStorage, err)
	}
	return data, nil
}
