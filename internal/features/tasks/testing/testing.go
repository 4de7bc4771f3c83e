package tasks_testing

import (
	"context"
	"io"
	"sync"
	"time"

	tasks_enums "tasktracker/internal/features/tasks/enums"
	tasks_models "tasktracker/internal/features/tasks/models"
	tasks_repositories "tasktracker/internal/features/tasks/repositories"

	"github.com/google/uuid"
)

// CreateTestTask persists a task directly, bypassing permission checks.
func CreateTestTask(
	projectID uuid.UUID,
	title string,
	assigneeID *uuid.UUID,
	dueAt *time.Time,
) *tasks_models.Task {
	task := &tasks_models.Task{
		ID:         uuid.New(),
		Title:      title,
		Status:     tasks_enums.TaskStatusTodo,
		Priority:   tasks_enums.TaskPriorityMedium,
		ProjectID:  projectID,
		AssigneeID: assigneeID,
		DueAt:      dueAt,
	}

	if err := (&tasks_repositories.TaskRepository{}).CreateTask(task); err != nil {
		panic(err)
	}

	return task
}

// FakeObjectStore records uploads and deletes in memory. Install via
// AttachmentService.SetStore.
type FakeObjectStore struct {
	mu       sync.Mutex
	Uploaded map[string]int64
	Deleted  []string

	UploadErr error
	DeleteErr error
}

func NewFakeObjectStore() *FakeObjectStore {
	return &FakeObjectStore{Uploaded: make(map[string]int64)}
}

func (f *FakeObjectStore) Upload(
	_ context.Context,
	key string,
	reader io.Reader,
	size int64,
	_ string,
) (string, error) {
	if f.UploadErr != nil {
		return "", f.UploadErr
	}

	io.Copy(io.Discard, reader)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.Uploaded[key] = size

	return "https://storage.test/" + key, nil
}

func (f *FakeObjectStore) Delete(_ context.Context, key string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.Deleted = append(f.Deleted, key)

	return nil
}
