package tasks_repositories

import (
	"time"

	tasks_models "tasktracker/internal/features/tasks/models"
	"tasktracker/internal/storage"

	"github.com/google/uuid"
)

type AttachmentRepository struct{}

func (r *AttachmentRepository) CreateAttachment(attachment *tasks_models.Attachment) error {
	if attachment.ID == uuid.Nil {
		attachment.ID = uuid.New()
	}
	if attachment.UploadedAt.IsZero() {
		attachment.UploadedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(attachment).Error
}

func (r *AttachmentRepository) GetAttachmentByID(attachmentID uuid.UUID) (*tasks_models.Attachment, error) {
	var attachment tasks_models.Attachment

	if err := storage.GetDb().Where("id = ?", attachmentID).First(&attachment).Error; err != nil {
		return nil, err
	}

	return &attachment, nil
}

func (r *AttachmentRepository) GetAttachmentsByTaskID(taskID uuid.UUID) ([]*tasks_models.Attachment, error) {
	var attachments []*tasks_models.Attachment

	err := storage.GetDb().
		Where("task_id = ?", taskID).
		Order("uploaded_at ASC").
		Find(&attachments).Error

	return attachments, err
}

func (r *AttachmentRepository) GetAttachmentsByProjectID(
	projectID uuid.UUID,
) ([]*tasks_models.Attachment, error) {
	var attachments []*tasks_models.Attachment

	err := storage.GetDb().
		Table("task_attachments ta").
		Select("ta.*").
		Joins("JOIN tasks t ON ta.task_id = t.id").
		Where("t.project_id = ?", projectID).
		Scan(&attachments).Error

	return attachments, err
}

func (r *AttachmentRepository) DeleteAttachment(attachmentID uuid.UUID) error {
	return storage.GetDb().Delete(&tasks_models.Attachment{}, attachmentID).Error
}

func (r *AttachmentRepository) DeleteAttachmentsByTaskID(taskID uuid.UUID) error {
	return storage.GetDb().
		Where("task_id = ?", taskID).
		Delete(&tasks_models.Attachment{}).Error
}

func (r *AttachmentRepository) DeleteAttachmentsByProjectID(projectID uuid.UUID) error {
	return storage.GetDb().
		Where("task_id IN (?)",
			storage.GetDb().Table("tasks").Select("id").Where("project_id = ?", projectID)).
		Delete(&tasks_models.Attachment{}).Error
}
