package users_dto

import (
	"time"

	users_enums "teamboards-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type SignUpRequestDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"     binding:"required"`
}

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

type ChangePasswordRequestDTO struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type UpdateUserInfoRequestDTO struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type UserProfileResponseDTO struct {
	ID        uuid.UUID              `json:"id"`
	Email     string                 `json:"email"`
	Name      string                 `json:"name"`
	Status    users_enums.UserStatus `json:"status"`
	CreatedAt time.Time              `json:"createdAt"`
}
