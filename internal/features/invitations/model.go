package invitations

import (
	"time"

	projects_enums "tasktracker/internal/features/projects/enums"

	"github.com/google/uuid"
)

type Invitation struct {
	ID        uuid.UUID                  `json:"id"        gorm:"column:id"`
	ProjectID uuid.UUID                  `json:"projectId" gorm:"column:project_id"`
	InviterID uuid.UUID                  `json:"inviterId" gorm:"column:inviter_id"`
	Email     string                     `json:"email"     gorm:"column:email"`
	Role      projects_enums.ProjectRole `json:"role"      gorm:"column:role"`
	Token     string                     `json:"-"         gorm:"column:token;uniqueIndex"`
	Status    InvitationStatus           `json:"status"    gorm:"column:status"`
	ExpiresAt time.Time                  `json:"expiresAt" gorm:"column:expires_at"`
	CreatedAt time.Time                  `json:"createdAt" gorm:"column:created_at"`
}

func (Invitation) TableName() string {
	return "invitations"
}

func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
