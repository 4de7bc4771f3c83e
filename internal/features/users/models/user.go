package users_models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"     gorm:"column:email;uniqueIndex"`
	Name      string    `json:"name"      gorm:"column:name"`
	AvatarURL string    `json:"avatarUrl" gorm:"column:avatar_url"`
	GoogleID  string    `json:"-"         gorm:"column:google_id"`
	CreatedAt time.Time `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
