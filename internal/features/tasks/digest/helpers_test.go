package tasks_digest

import (
	"testing"

	tasks_enums "tasktracker/internal/features/tasks/enums"
	"tasktracker/internal/storage"

	"github.com/google/uuid"
)

func markTaskDone(t *testing.T, taskID uuid.UUID) {
	t.Helper()

	err := storage.GetDb().
		Table("tasks").
		Where("id = ?", taskID).
		Update("status", tasks_enums.TaskStatusDone).Error
	if err != nil {
		t.Fatalf("failed to mark task done: %v", err)
	}
}

func disableProjectReminders(t *testing.T, projectID uuid.UUID) {
	t.Helper()

	err := storage.GetDb().
		Table("projects").
		Where("id = ?", projectID).
		Update("enable_email_reminders", false).Error
	if err != nil {
		t.Fatalf("failed to disable project reminders: %v", err)
	}
}
