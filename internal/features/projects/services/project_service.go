package projects_services

import (
	"errors"
	"fmt"
	"time"

	projects_dto "tasktracker/internal/features/projects/dto"
	projects_enums "tasktracker/internal/features/projects/enums"
	projects_interfaces "tasktracker/internal/features/projects/interfaces"
	projects_models "tasktracker/internal/features/projects/models"
	projects_repositories "tasktracker/internal/features/projects/repositories"
	users_models "tasktracker/internal/features/users/models"
	cache_utils "tasktracker/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type ProjectService struct {
	projectRepository        *projects_repositories.ProjectRepository
	membershipRepository     *projects_repositories.MembershipRepository
	projectDeletionListeners []projects_interfaces.ProjectDeletionListener

	projectCacheUtil *cache_utils.CacheUtil[projects_models.Project]
	singleflight     singleflight.Group // Prevents thundering herd on DB calls
}

func (s *ProjectService) AddProjectDeletionListener(listener projects_interfaces.ProjectDeletionListener) {
	s.projectDeletionListeners = append(s.projectDeletionListeners, listener)
}

func (s *ProjectService) CreateProject(
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	allowMemberViewAllTasks := true
	if request.AllowMemberViewAllTasks != nil {
		allowMemberViewAllTasks = *request.AllowMemberViewAllTasks
	}

	enableEmailReminders := true
	if request.EnableEmailReminders != nil {
		enableEmailReminders = *request.EnableEmailReminders
	}

	project := &projects_models.Project{
		ID:                      uuid.New(),
		Name:                    request.Name,
		Description:             request.Description,
		OwnerID:                 creator.ID,
		AllowMemberViewAllTasks: allowMemberViewAllTasks,
		EnableEmailReminders:    enableEmailReminders,
		CreatedAt:               time.Now().UTC(),
		UpdatedAt:               time.Now().UTC(),
	}

	membership := &projects_models.ProjectMembership{
		UserID:    creator.ID,
		ProjectID: project.ID,
		Role:      projects_enums.ProjectRoleOwner,
		JoinedAt:  time.Now().UTC(),
	}

	if err := s.projectRepository.CreateProjectWithOwner(project, membership); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// Pre-warm cache with new project for immediate availability
	s.projectCacheUtil.Set(project.ID.String(), project)

	ownerRole := projects_enums.ProjectRoleOwner
	return &projects_dto.ProjectResponseDTO{
		ID:                      project.ID,
		Name:                    project.Name,
		Description:             project.Description,
		OwnerID:                 project.OwnerID,
		AllowMemberViewAllTasks: project.AllowMemberViewAllTasks,
		EnableEmailReminders:    project.EnableEmailReminders,
		CreatedAt:               project.CreatedAt,
		UpdatedAt:               project.UpdatedAt,
		UserRole:                &ownerRole,
	}, nil
}

func (s *ProjectService) GetProject(projectID uuid.UUID, user *users_models.User) (*projects_models.Project, error) {
	isCanAccess, _, err := s.CanUserAccessProject(projectID, user)

	if err != nil {
		return nil, err
	}
	if !isCanAccess {
		return nil, errors.New("insufficient permissions to view project")
	}

	return s.projectRepository.GetProjectByID(projectID)
}

func (s *ProjectService) GetUserProjects(user *users_models.User) (*projects_dto.ListProjectsResponseDTO, error) {
	projects, err := s.membershipRepository.GetProjectsWithRolesByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	return &projects_dto.ListProjectsResponseDTO{
		Projects: projects,
	}, nil
}

func (s *ProjectService) UpdateProject(
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequestDTO,
	user *users_models.User,
) (*projects_models.Project, error) {
	isOwner, err := s.IsUserProjectOwner(projectID, user.ID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, errors.New("only project owner can update project")
	}

	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if request.Name != nil {
		project.Name = *request.Name
	}
	if request.Description != nil {
		project.Description = *request.Description
	}
	if request.AllowMemberViewAllTasks != nil {
		project.AllowMemberViewAllTasks = *request.AllowMemberViewAllTasks
	}
	if request.EnableEmailReminders != nil {
		project.EnableEmailReminders = *request.EnableEmailReminders
	}

	if err := s.projectRepository.UpdateProject(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	return project, nil
}

func (s *ProjectService) DeleteProject(
	projectID uuid.UUID,
	confirmationName string,
	user *users_models.User,
) error {
	isOwner, err := s.IsUserProjectOwner(projectID, user.ID)
	if err != nil {
		return err
	}
	if !isOwner {
		return errors.New("only project owner can delete project")
	}

	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}

	if confirmationName != project.Name {
		return errors.New("project name confirmation does not match")
	}

	for _, listener := range s.projectDeletionListeners {
		if err := listener.OnBeforeProjectDeletion(projectID); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
	}

	if err := s.membershipRepository.RemoveAllProjectMembers(projectID); err != nil {
		return fmt.Errorf("failed to remove project members: %w", err)
	}

	if err := s.projectRepository.DeleteProject(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	return nil
}

func (s *ProjectService) GetUserProjectRole(
	projectID uuid.UUID,
	userID uuid.UUID,
) (*projects_enums.ProjectRole, error) {
	return s.membershipRepository.GetUserProjectRole(projectID, userID)
}

func (s *ProjectService) CanUserAccessProject(
	projectID uuid.UUID,
	user *users_models.User,
) (bool, *projects_enums.ProjectRole, error) {
	role, err := s.membershipRepository.GetUserProjectRole(projectID, user.ID)
	if err != nil {
		return false, nil, err
	}

	return role != nil, role, nil
}

func (s *ProjectService) CanUserManageProject(projectID uuid.UUID, user *users_models.User) (bool, error) {
	role, err := s.membershipRepository.GetUserProjectRole(projectID, user.ID)
	if err != nil {
		return false, err
	}

	if role == nil {
		return false, nil
	}

	return role.IsManagement(), nil
}

func (s *ProjectService) IsUserProjectOwner(projectID, userID uuid.UUID) (bool, error) {
	role, err := s.membershipRepository.GetUserProjectRole(projectID, userID)
	if err != nil {
		return false, err
	}

	return role != nil && *role == projects_enums.ProjectRoleOwner, nil
}

func (s *ProjectService) GetProjectWithCache(projectID uuid.UUID) (*projects_models.Project, error) {
	projectIDStr := projectID.String()

	// Tier 1: Check cache
	if cachedProject := s.projectCacheUtil.Get(projectIDStr); cachedProject != nil {
		if cachedProject.IsNotExists {
			return nil, errors.New("project not found")
		}

		return cachedProject, nil
	}

	// Tier 2: Database lookup with singleflight protection (prevents thundering herd)
	result, err, _ := s.singleflight.Do(projectIDStr, func() (any, error) {
		return s.projectRepository.GetProjectByID(projectID)
	})

	if err != nil {
		// Cache the invalid project to prevent future DB hits
		invalidCachedProject := &projects_models.Project{
			ID:          projectID,
			IsNotExists: true,
		}
		s.projectCacheUtil.Set(projectIDStr, invalidCachedProject)
		return nil, errors.New("project not found")
	}

	project, ok := result.(*projects_models.Project)
	if !ok {
		return nil, fmt.Errorf("failed to cast result to Project")
	}

	// Cache the valid project
	s.projectCacheUtil.Set(projectIDStr, project)

	return project, nil
}
