package users_dto

import (
	"time"

	"github.com/google/uuid"
)

type GoogleSignInRequestDTO struct {
	IDToken string `json:"idToken" binding:"required"`
}

type SignInResponseDTO struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email,omitempty"`
	Token  string    `json:"token"`
}

type UserProfileResponseDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
