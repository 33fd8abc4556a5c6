package handler

import (
	"time"

	"github.com/msomdec/fitme-accounts/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash is never
// part of it.
type UserDTO struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	ProfilePhotoURL string `json:"profilePhotoUrl"`
	Goal            string `json:"goal"`
	Age             int    `json:"age"`
	Weight          int    `json:"weight"`
	Height          int    `json:"height"`
	FitnessLevel    string `json:"fitnessLevel"`
	WeeklyGoal      int    `json:"weeklyGoal"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		ProfilePhotoURL: u.ProfilePhotoURL,
		Goal:            u.Goal,
		Age:             u.Age,
		Weight:          u.Weight,
		Height:          u.Height,
		FitnessLevel:    u.FitnessLevel,
		WeeklyGoal:      u.WeeklyGoal,
		CreatedAt:       u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       u.UpdatedAt.Format(time.RFC3339),
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
