package tasks_services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	projects_services "tasktracker/internal/features/projects/services"
	tasks_cleanup "tasktracker/internal/features/tasks/cleanup"
	tasks_dto "tasktracker/internal/features/tasks/dto"
	tasks_models "tasktracker/internal/features/tasks/models"
	tasks_repositories "tasktracker/internal/features/tasks/repositories"
	users_models "tasktracker/internal/features/users/models"
	"tasktracker/internal/objectstore"

	"github.com/google/uuid"
)

const (
	MaxAttachmentsPerUpload = 5
	MaxAttachmentSizeBytes  = 5 * 1024 * 1024
)

var allowedContentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

type AttachmentService struct {
	attachmentRepository *tasks_repositories.AttachmentRepository
	taskRepository       *tasks_repositories.TaskRepository
	projectService       *projects_services.ProjectService
	cleanupService       *tasks_cleanup.AttachmentCleanupService
	store                objectstore.Store
}

// SetStore replaces the object store, used by tests to avoid real uploads.
func (s *AttachmentService) SetStore(store objectstore.Store) {
	s.store = store
}

func (s *AttachmentService) UploadAttachments(
	ctx context.Context,
	taskID uuid.UUID,
	files []*multipart.FileHeader,
	actor *users_models.User,
) (*tasks_dto.UploadAttachmentsResponseDTO, error) {
	if len(files) == 0 {
		return nil, errors.New("no files provided")
	}
	if len(files) > MaxAttachmentsPerUpload {
		return nil, fmt.Errorf("too many files, maximum is %d per upload", MaxAttachmentsPerUpload)
	}

	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, errors.New("task not found")
	}

	role, err := s.projectService.GetUserProjectRole(task.ProjectID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !CanTouchTaskFile(role, task, actor.ID) {
		return nil, errors.New("insufficient permissions to manage task files")
	}

	for _, file := range files {
		if file.Size > MaxAttachmentSizeBytes {
			return nil, fmt.Errorf("file %s exceeds the 5MB size limit", file.Filename)
		}
		if !isAllowedContentType(file.Header.Get("Content-Type")) {
			return nil, fmt.Errorf("file %s has an unsupported type", file.Filename)
		}
	}

	attachments := make([]*tasks_models.Attachment, 0, len(files))

	for _, file := range files {
		reader, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}

		storageKey := fmt.Sprintf("tasks/%s/%s%s", taskID, uuid.New(), filepath.Ext(file.Filename))

		fileURL, err := s.store.Upload(ctx, storageKey, reader, file.Size, file.Header.Get("Content-Type"))
		reader.Close()

		if err != nil {
			return nil, fmt.Errorf("failed to upload file %s: %w", file.Filename, err)
		}

		attachment := &tasks_models.Attachment{
			ID:         uuid.New(),
			TaskID:     taskID,
			FileName:   file.Filename,
			FileURL:    fileURL,
			StorageKey: storageKey,
			UploadedAt: time.Now().UTC(),
		}

		if err := s.attachmentRepository.CreateAttachment(attachment); err != nil {
			// The uploaded object is now orphaned, hand it to the cleanup queue
			s.cleanupService.EnqueueStorageKey(storageKey)
			return nil, fmt.Errorf("failed to save attachment record: %w", err)
		}

		attachments = append(attachments, attachment)
	}

	return &tasks_dto.UploadAttachmentsResponseDTO{Attachments: attachments}, nil
}

func (s *AttachmentService) DeleteAttachment(
	taskID, attachmentID uuid.UUID,
	actor *users_models.User,
) error {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return errors.New("task not found")
	}

	role, err := s.projectService.GetUserProjectRole(task.ProjectID, actor.ID)
	if err != nil {
		return err
	}
	if !CanTouchTaskFile(role, task, actor.ID) {
		return errors.New("insufficient permissions to manage task files")
	}

	attachment, err := s.attachmentRepository.GetAttachmentByID(attachmentID)
	if err != nil {
		return errors.New("attachment not found")
	}

	if attachment.TaskID != taskID {
		return errors.New("attachment does not belong to this task")
	}

	// The local record is authoritative, remote deletion happens in the
	// background and may be retried
	if err := s.attachmentRepository.DeleteAttachment(attachmentID); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	s.cleanupService.EnqueueStorageKey(attachment.StorageKey)

	return nil
}

func isAllowedContentType(contentType string) bool {
	if strings.HasPrefix(contentType, "image/") {
		return true
	}

	return allowedContentTypes[contentType]
}
