package tasks_controllers

import (
	tasks_services "tasktracker/internal/features/tasks/services"
)

var taskController = &TaskController{
	tasks_services.GetTaskService(),
}

var attachmentController = &AttachmentController{
	tasks_services.GetAttachmentService(),
}

func GetTaskController() *TaskController {
	return taskController
}

func GetAttachmentController() *AttachmentController {
	return attachmentController
}
