package tasks_digest

import (
	"time"

	tasks_enums "tasktracker/internal/features/tasks/enums"
	"tasktracker/internal/storage"

	"github.com/google/uuid"
)

type DigestTaskRow struct {
	TaskID        uuid.UUID              `gorm:"column:task_id"`
	Title         string                 `gorm:"column:title"`
	Description   string                 `gorm:"column:description"`
	Status        tasks_enums.TaskStatus `gorm:"column:status"`
	DueAt         time.Time              `gorm:"column:due_at"`
	ProjectName   string                 `gorm:"column:project_name"`
	AssigneeID    uuid.UUID              `gorm:"column:assignee_id"`
	AssigneeEmail string                 `gorm:"column:assignee_email"`
	AssigneeName  string                 `gorm:"column:assignee_name"`
}

type DigestRepository struct{}

// GetDueTaskRows returns unfinished assigned tasks due at or before the
// cutoff, restricted to projects with email reminders enabled.
func (r *DigestRepository) GetDueTaskRows(cutoff time.Time) ([]*DigestTaskRow, error) {
	var rows []*DigestTaskRow

	err := storage.GetDb().
		Table("tasks t").
		Select("t.id as task_id, t.title, t.description, t.status, t.due_at, "+
			"p.name as project_name, u.id as assignee_id, u.email as assignee_email, u.name as assignee_name").
		Joins("JOIN projects p ON t.project_id = p.id").
		Joins("JOIN users u ON t.assignee_id = u.id").
		Where("t.status != ? AND t.assignee_id IS NOT NULL AND t.due_at IS NOT NULL AND t.due_at <= ?",
			tasks_enums.TaskStatusDone, cutoff).
		Where("p.enable_email_reminders = ?", true).
		Order("t.due_at ASC").
		Scan(&rows).Error

	return rows, err
}
