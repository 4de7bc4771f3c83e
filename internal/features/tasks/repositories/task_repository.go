package tasks_repositories

import (
	"time"

	tasks_models "tasktracker/internal/features/tasks/models"
	"tasktracker/internal/storage"

	"github.com/google/uuid"
)

type TaskRepository struct{}

func (r *TaskRepository) CreateTask(task *tasks_models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}

	return storage.GetDb().Create(task).Error
}

func (r *TaskRepository) GetTaskByID(taskID uuid.UUID) (*tasks_models.Task, error) {
	var task tasks_models.Task

	if err := storage.GetDb().Where("id = ?", taskID).First(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *TaskRepository) UpdateTask(task *tasks_models.Task) error {
	task.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Save(task).Error
}

func (r *TaskRepository) DeleteTask(taskID uuid.UUID) error {
	return storage.GetDb().Delete(&tasks_models.Task{}, taskID).Error
}

func (r *TaskRepository) GetTasksByProjectID(projectID uuid.UUID) ([]*tasks_models.Task, error) {
	var tasks []*tasks_models.Task

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&tasks).Error

	return tasks, err
}

func (r *TaskRepository) GetTasksByProjectIDAndAssignee(
	projectID, assigneeID uuid.UUID,
) ([]*tasks_models.Task, error) {
	var tasks []*tasks_models.Task

	err := storage.GetDb().
		Where("project_id = ? AND assignee_id = ?", projectID, assigneeID).
		Order("created_at DESC").
		Find(&tasks).Error

	return tasks, err
}

// GetTasksByAssignee backs the personal dashboard, most urgent deadline
// first and undated tasks at the end.
func (r *TaskRepository) GetTasksByAssignee(assigneeID uuid.UUID) ([]*tasks_models.Task, error) {
	var tasks []*tasks_models.Task

	err := storage.GetDb().
		Where("assignee_id = ?", assigneeID).
		Order("due_at ASC NULLS LAST").
		Find(&tasks).Error

	return tasks, err
}

func (r *TaskRepository) DeleteTasksByProjectID(projectID uuid.UUID) error {
	return storage.GetDb().
		Where("project_id = ?", projectID).
		Delete(&tasks_models.Task{}).Error
}
