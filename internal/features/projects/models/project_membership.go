package projects_models

import (
	"time"

	projects_enums "tasktracker/internal/features/projects/enums"

	"github.com/google/uuid"
)

type ProjectMembership struct {
	ID        uuid.UUID                 `json:"id"        gorm:"column:id"`
	UserID    uuid.UUID                 `json:"userId"    gorm:"column:user_id;uniqueIndex:idx_memberships_project_user"`
	ProjectID uuid.UUID                 `json:"projectId" gorm:"column:project_id;uniqueIndex:idx_memberships_project_user"`
	Role      projects_enums.ProjectRole `json:"role"      gorm:"column:role"`
	JoinedAt  time.Time                 `json:"joinedAt"  gorm:"column:joined_at"`
}

func (ProjectMembership) TableName() string {
	return "project_memberships"
}
