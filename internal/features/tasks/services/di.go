package tasks_services

import (
	projects_services "tasktracker/internal/features/projects/services"
	tasks_cleanup "tasktracker/internal/features/tasks/cleanup"
	tasks_repositories "tasktracker/internal/features/tasks/repositories"
	"tasktracker/internal/objectstore"
)

var taskRepository = &tasks_repositories.TaskRepository{}
var attachmentRepository = &tasks_repositories.AttachmentRepository{}

var taskService = &TaskService{
	taskRepository,
	attachmentRepository,
	projects_services.GetProjectService(),
	tasks_cleanup.GetAttachmentCleanupService(),
}

var attachmentService = &AttachmentService{
	attachmentRepository: attachmentRepository,
	taskRepository:       taskRepository,
	projectService:       projects_services.GetProjectService(),
	cleanupService:       tasks_cleanup.GetAttachmentCleanupService(),
}

func GetTaskService() *TaskService {
	return taskService
}

func GetAttachmentService() *AttachmentService {
	return attachmentService
}

// SetupDependencies wires the object store and registers the project
// deletion cascade. Called once from main after config is loaded.
func SetupDependencies() {
	attachmentService.store = objectstore.GetStore()
	projects_services.GetProjectService().AddProjectDeletionListener(taskService)
}
