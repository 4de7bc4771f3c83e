package tasks_models

import (
	"time"

	tasks_enums "tasktracker/internal/features/tasks/enums"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID                `json:"id"          gorm:"column:id"`
	Title       string                   `json:"title"       gorm:"column:title"`
	Description string                   `json:"description" gorm:"column:description"`
	Status      tasks_enums.TaskStatus   `json:"status"      gorm:"column:status"`
	Priority    tasks_enums.TaskPriority `json:"priority"    gorm:"column:priority"`
	ProjectID   uuid.UUID                `json:"projectId"   gorm:"column:project_id"`
	AssigneeID  *uuid.UUID               `json:"assigneeId"  gorm:"column:assignee_id"`
	DueAt       *time.Time               `json:"dueAt"       gorm:"column:due_at"`
	CreatedAt   time.Time                `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time                `json:"updatedAt"   gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
