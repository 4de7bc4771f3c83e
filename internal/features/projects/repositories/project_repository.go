package projects_repositories

import (
	"time"

	projects_models "tasktracker/internal/features/projects/models"
	"tasktracker/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

// CreateProjectWithOwner inserts the project and its OWNER membership in one
// transaction, a project must never be observable without an owner.
func (r *ProjectRepository) CreateProjectWithOwner(
	project *projects_models.Project,
	membership *projects_models.ProjectMembership,
) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	if project.UpdatedAt.IsZero() {
		project.UpdatedAt = project.CreatedAt
	}

	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}
	if membership.JoinedAt.IsZero() {
		membership.JoinedAt = project.CreatedAt
	}
	membership.ProjectID = project.ID

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		return tx.Create(membership).Error
	})
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	if err := storage.GetDb().Where("id = ?", projectID).First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) UpdateProject(project *projects_models.Project) error {
	project.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Save(project).Error
}

func (r *ProjectRepository) DeleteProject(projectID uuid.UUID) error {
	return storage.GetDb().Delete(&projects_models.Project{}, projectID).Error
}

func (r *ProjectRepository) GetProjectsWithEmailRemindersEnabled() ([]*projects_models.Project, error) {
	var projects []*projects_models.Project

	err := storage.GetDb().
		Where("enable_email_reminders = ?", true).
		Find(&projects).Error

	return projects, err
}
