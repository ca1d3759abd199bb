package dto

import (
	"github.com/teamtrackhq/teamtrack-api/internal/authz"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           uint64            `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Role         authz.Role        `json:"role"`
	Status       models.UserStatus `json:"status"`
	AvatarURL    string            `json:"avatar_url,omitempty"`
	SupervisorID *uint64           `json:"supervisor_id"`
	ManagerID    *uint64           `json:"manager_id"`
	Supervisor   *UserSummaryDTO   `json:"supervisor,omitempty"`
	Manager      *UserSummaryDTO   `json:"manager,omitempty"`
}

// UserSummaryDTO is the short form used when embedding a user inside another
// record.
type UserSummaryDTO struct {
	ID    uint64     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  authz.Role `json:"role"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		Status:       user.Status,
		AvatarURL:    user.AvatarURL,
		SupervisorID: user.SupervisorID,
		ManagerID:    user.ManagerID,
	}
	if user.Supervisor != nil {
		summary := ToUserSummaryDTO(*user.Supervisor)
		dto.Supervisor = &summary
	}
	if user.Manager != nil {
		summary := ToUserSummaryDTO(*user.Manager)
		dto.Manager = &summary
	}
	return dto
}

// ToUserSummaryDTO converts a User model to its embedded short form
func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// ToUserDTOs converts a slice of User models
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
