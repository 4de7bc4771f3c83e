package projects_models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	Name        string    `json:"name"        gorm:"column:name"`
	Description string    `json:"description" gorm:"column:description"`
	OwnerID     uuid.UUID `json:"ownerId"     gorm:"column:owner_id"`

	// Settings
	AllowMemberViewAllTasks bool `json:"allowMemberViewAllTasks" gorm:"column:allow_member_view_all_tasks"`
	EnableEmailReminders    bool `json:"enableEmailReminders"    gorm:"column:enable_email_reminders"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`

	// Used for caching non-existent projects
	IsNotExists bool `json:"isNotExists,omitempty" gorm:"-"`
}

func (Project) TableName() string {
	return "projects"
}
