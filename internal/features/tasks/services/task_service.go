package tasks_services

import (
	"errors"
	"fmt"
	"time"

	projects_services "tasktracker/internal/features/projects/services"
	tasks_cleanup "tasktracker/internal/features/tasks/cleanup"
	tasks_dto "tasktracker/internal/features/tasks/dto"
	tasks_enums "tasktracker/internal/features/tasks/enums"
	tasks_models "tasktracker/internal/features/tasks/models"
	tasks_repositories "tasktracker/internal/features/tasks/repositories"
	users_models "tasktracker/internal/features/users/models"

	"github.com/google/uuid"
)

type TaskService struct {
	taskRepository       *tasks_repositories.TaskRepository
	attachmentRepository *tasks_repositories.AttachmentRepository
	projectService       *projects_services.ProjectService
	cleanupService       *tasks_cleanup.AttachmentCleanupService
}

func (s *TaskService) CreateTask(
	request *tasks_dto.CreateTaskRequestDTO,
	actor *users_models.User,
) (*tasks_models.Task, error) {
	role, err := s.projectService.GetUserProjectRole(request.ProjectID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !CanManageTasks(role) {
		return nil, errors.New("insufficient permissions to create tasks")
	}

	priority := request.Priority
	if priority == "" {
		priority = tasks_enums.TaskPriorityMedium
	}
	if !priority.IsValid() {
		return nil, errors.New("invalid task priority")
	}

	if request.AssigneeID != nil {
		if err := s.validateAssigneeIsMember(request.ProjectID, *request.AssigneeID); err != nil {
			return nil, err
		}
	}

	task := &tasks_models.Task{
		ID:          uuid.New(),
		Title:       request.Title,
		Description: request.Description,
		Status:      tasks_enums.TaskStatusTodo,
		Priority:    priority,
		ProjectID:   request.ProjectID,
		AssigneeID:  request.AssigneeID,
		DueAt:       request.DueAt,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.taskRepository.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

func (s *TaskService) GetTask(taskID uuid.UUID, actor *users_models.User) (*tasks_dto.TaskResponseDTO, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, errors.New("task not found")
	}

	role, err := s.projectService.GetUserProjectRole(task.ProjectID, actor.ID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectService.GetProjectWithCache(task.ProjectID)
	if err != nil {
		return nil, err
	}

	if !CanViewTask(role, project.AllowMemberViewAllTasks, task, actor.ID) {
		return nil, errors.New("insufficient permissions to view task")
	}

	attachments, err := s.attachmentRepository.GetAttachmentsByTaskID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attachments: %w", err)
	}

	return &tasks_dto.TaskResponseDTO{
		Task:        *task,
		Attachments: attachments,
	}, nil
}

func (s *TaskService) ListProjectTasks(
	projectID uuid.UUID,
	actor *users_models.User,
) (*tasks_dto.ListTasksResponseDTO, error) {
	role, err := s.projectService.GetUserProjectRole(projectID, actor.ID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, errors.New("insufficient permissions to view tasks")
	}

	project, err := s.projectService.GetProjectWithCache(projectID)
	if err != nil {
		return nil, err
	}

	var tasks []*tasks_models.Task

	if !role.IsManagement() && !project.AllowMemberViewAllTasks {
		tasks, err = s.taskRepository.GetTasksByProjectIDAndAssignee(projectID, actor.ID)
	} else {
		tasks, err = s.taskRepository.GetTasksByProjectID(projectID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	return &tasks_dto.ListTasksResponseDTO{Tasks: tasks}, nil
}

func (s *TaskService) GetMyAssignedTasks(actor *users_models.User) (*tasks_dto.ListTasksResponseDTO, error) {
	tasks, err := s.taskRepository.GetTasksByAssignee(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assigned tasks: %w", err)
	}

	return &tasks_dto.ListTasksResponseDTO{Tasks: tasks}, nil
}

func (s *TaskService) UpdateTask(
	taskID uuid.UUID,
	request *tasks_dto.UpdateTaskRequestDTO,
	actor *users_models.User,
) (*tasks_models.Task, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, errors.New("task not found")
	}

	role, err := s.projectService.GetUserProjectRole(task.ProjectID, actor.ID)
	if err != nil {
		return nil, err
	}

	if !CanManageTasks(role) {
		// Assignee fallback: status is the only field a bare assignee may touch
		if role == nil || !IsAssignee(task, actor.ID) {
			return nil, errors.New("insufficient permissions to update task")
		}
		if !request.TouchesOnlyStatus() {
			return nil, errors.New("assignee can only update task status")
		}
	}

	if request.Status != nil {
		if !request.Status.IsValid() {
			return nil, errors.New("invalid task status")
		}
		task.Status = *request.Status
	}

	if CanManageTasks(role) {
		if request.Title != nil {
			task.Title = *request.Title
		}
		if request.Description != nil {
			task.Description = *request.Description
		}
		if request.Priority != nil {
			if !request.Priority.IsValid() {
				return nil, errors.New("invalid task priority")
			}
			task.Priority = *request.Priority
		}
		if request.AssigneeID.Set {
			if request.AssigneeID.Valid {
				if err := s.validateAssigneeIsMember(task.ProjectID, request.AssigneeID.Value); err != nil {
					return nil, err
				}
			}
			// Explicit null unassigns the task
			task.AssigneeID = request.AssigneeID.Ptr()
		}
		if request.DueAt.Set {
			task.DueAt = request.DueAt.Ptr()
		}
	}

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

func (s *TaskService) UpdateTaskStatus(
	taskID uuid.UUID,
	request *tasks_dto.UpdateTaskStatusRequestDTO,
	actor *users_models.User,
) (*tasks_models.Task, error) {
	if !request.Status.IsValid() {
		return nil, errors.New("invalid task status")
	}

	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, errors.New("task not found")
	}

	role, err := s.projectService.GetUserProjectRole(task.ProjectID, actor.ID)
	if err != nil {
		return nil, err
	}

	if !CanManageTasks(role) && !(role != nil && IsAssignee(task, actor.ID)) {
		return nil, errors.New("insufficient permissions to update task status")
	}

	task.Status = request.Status

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return task, nil
}

func (s *TaskService) DeleteTask(taskID uuid.UUID, actor *users_models.User) error {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return errors.New("task not found")
	}

	role, err := s.projectService.GetUserProjectRole(task.ProjectID, actor.ID)
	if err != nil {
		return err
	}
	if !CanManageTasks(role) {
		return errors.New("insufficient permissions to delete task")
	}

	attachments, err := s.attachmentRepository.GetAttachmentsByTaskID(taskID)
	if err != nil {
		return fmt.Errorf("failed to get attachments: %w", err)
	}

	if err := s.attachmentRepository.DeleteAttachmentsByTaskID(taskID); err != nil {
		return fmt.Errorf("failed to delete attachments: %w", err)
	}

	if err := s.taskRepository.DeleteTask(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.enqueueAttachmentCleanup(attachments)

	return nil
}

// OnBeforeProjectDeletion cascades the project removal to its tasks and
// their attachments.
func (s *TaskService) OnBeforeProjectDeletion(projectID uuid.UUID) error {
	attachments, err := s.attachmentRepository.GetAttachmentsByProjectID(projectID)
	if err != nil {
		return fmt.Errorf("failed to get project attachments: %w", err)
	}

	if err := s.attachmentRepository.DeleteAttachmentsByProjectID(projectID); err != nil {
		return fmt.Errorf("failed to delete project attachments: %w", err)
	}

	if err := s.taskRepository.DeleteTasksByProjectID(projectID); err != nil {
		return fmt.Errorf("failed to delete project tasks: %w", err)
	}

	s.enqueueAttachmentCleanup(attachments)

	return nil
}

func (s *TaskService) enqueueAttachmentCleanup(attachments []*tasks_models.Attachment) {
	if len(attachments) == 0 {
		return
	}

	keys := make([]string, 0, len(attachments))
	for _, attachment := range attachments {
		if attachment.StorageKey != "" {
			keys = append(keys, attachment.StorageKey)
		}
	}

	s.cleanupService.EnqueueStorageKeys(keys)
}

func (s *TaskService) validateAssigneeIsMember(projectID, assigneeID uuid.UUID) error {
	assigneeRole, err := s.projectService.GetUserProjectRole(projectID, assigneeID)
	if err != nil {
		return err
	}
	if assigneeRole == nil {
		return errors.New("assignee must be a project member")
	}

	return nil
}
