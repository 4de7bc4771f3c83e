package tasks_dto

import (
	"time"

	tasks_enums "tasktracker/internal/features/tasks/enums"
	tasks_models "tasktracker/internal/features/tasks/models"

	"github.com/google/uuid"
)

type CreateTaskRequestDTO struct {
	ProjectID   uuid.UUID                `json:"projectId"   binding:"required"`
	Title       string                   `json:"title"       binding:"required,min=1,max=255"`
	Description string                   `json:"description" binding:"max=5000"`
	Priority    tasks_enums.TaskPriority `json:"priority"`
	AssigneeID  *uuid.UUID               `json:"assigneeId"`
	DueAt       *time.Time               `json:"dueAt"`
}

// Pointer fields distinguish "not sent" from zero values, so updates are
// strictly partial. Assignee and due date use Optional because an explicit
// null is a real instruction there: it unassigns the task or clears the
// deadline.
type UpdateTaskRequestDTO struct {
	Title       *string                   `json:"title"       binding:"omitempty,min=1,max=255"`
	Description *string                   `json:"description" binding:"omitempty,max=5000"`
	Status      *tasks_enums.TaskStatus   `json:"status"`
	Priority    *tasks_enums.TaskPriority `json:"priority"`
	AssigneeID  Optional[uuid.UUID]       `json:"assigneeId"`
	DueAt       Optional[time.Time]       `json:"dueAt"`
}

func (r *UpdateTaskRequestDTO) TouchesOnlyStatus() bool {
	return r.Title == nil &&
		r.Description == nil &&
		r.Priority == nil &&
		!r.AssigneeID.Set &&
		!r.DueAt.Set
}

type UpdateTaskStatusRequestDTO struct {
	Status tasks_enums.TaskStatus `json:"status" binding:"required"`
}

type TaskResponseDTO struct {
	tasks_models.Task
	Attachments []*tasks_models.Attachment `json:"attachments"`
}

type ListTasksResponseDTO struct {
	Tasks []*tasks_models.Task `json:"tasks"`
}

type UploadAttachmentsResponseDTO struct {
	Attachments []*tasks_models.Attachment `json:"attachments"`
}
