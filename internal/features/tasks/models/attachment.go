package tasks_models

import (
	"time"

	"github.com/google/uuid"
)

type Attachment struct {
	ID       uuid.UUID `json:"id"       gorm:"column:id"`
	TaskID   uuid.UUID `json:"taskId"   gorm:"column:task_id"`
	FileName string    `json:"fileName" gorm:"column:file_name"`
	FileURL  string    `json:"fileUrl"  gorm:"column:file_url"`
	// Object key in the external store, needed for remote deletion
	StorageKey string    `json:"-"          gorm:"column:storage_key"`
	UploadedAt time.Time `json:"uploadedAt" gorm:"column:uploaded_at"`
}

func (Attachment) TableName() string {
	return "task_attachments"
}
