package tasks_controllers

import (
	"net/http"
	"strings"

	tasks_dto "tasktracker/internal/features/tasks/dto"
	tasks_services "tasktracker/internal/features/tasks/services"
	users_middleware "tasktracker/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskController struct {
	taskService *tasks_services.TaskService
}

// Task detail routes live under /tasks/detail/:id so the static segments
// do not collide with the /tasks/project and /tasks/assigned groups.
func (c *TaskController) RegisterRoutes(router *gin.RouterGroup) {
	taskRoutes := router.Group("/tasks")

	taskRoutes.POST("", c.CreateTask)
	taskRoutes.GET("/project/:projectId", c.ListProjectTasks)
	taskRoutes.GET("/assigned/me", c.GetMyAssignedTasks)
	taskRoutes.GET("/detail/:id", c.GetTask)
	taskRoutes.PUT("/detail/:id", c.UpdateTask)
	taskRoutes.PATCH("/detail/:id/status", c.UpdateTaskStatus)
	taskRoutes.DELETE("/detail/:id", c.DeleteTask)
}

// CreateTask
// @Summary Create a task
// @Description Create a task in a project (management roles only)
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body tasks_dto.CreateTaskRequestDTO true "Task data"
// @Success 200 {object} tasks_models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request tasks_dto.CreateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.CreateTask(&request, user)
	if err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// ListProjectTasks
// @Summary List project tasks
// @Description Get tasks of a project, members with restricted visibility see only their own
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} tasks_dto.ListTasksResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /tasks/project/{projectId} [get]
func (c *TaskController) ListProjectTasks(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	response, err := c.taskService.ListProjectTasks(projectID, user)
	if err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetMyAssignedTasks
// @Summary List own assigned tasks
// @Description Get tasks assigned to the current user across all projects
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} tasks_dto.ListTasksResponseDTO
// @Failure 401 {object} map[string]string
// @Router /tasks/assigned/me [get]
func (c *TaskController) GetMyAssignedTasks(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.taskService.GetMyAssignedTasks(user)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetTask
// @Summary Get task details
// @Description Get a task with its attachments
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} tasks_dto.TaskResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/detail/{id} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	response, err := c.taskService.GetTask(taskID, user)
	if err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateTask
// @Summary Update a task
// @Description Update task fields, management roles may change anything, the assignee only the status
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body tasks_dto.UpdateTaskRequestDTO true "Task update data"
// @Success 200 {object} tasks_models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/detail/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var request tasks_dto.UpdateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.UpdateTask(taskID, &request, user)
	if err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// UpdateTaskStatus
// @Summary Update task status
// @Description Change only the status of a task, allowed for management roles and the assignee
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body tasks_dto.UpdateTaskStatusRequestDTO true "New status"
// @Success 200 {object} tasks_models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/detail/{id}/status [patch]
func (c *TaskController) UpdateTaskStatus(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var request tasks_dto.UpdateTaskStatusRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.UpdateTaskStatus(taskID, &request, user)
	if err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// DeleteTask
// @Summary Delete a task
// @Description Delete a task and schedule removal of its attachments (management roles only)
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/detail/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	if err := c.taskService.DeleteTask(taskID, user); err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func respondTaskError(ctx *gin.Context, err error) {
	message := err.Error()

	switch {
	case strings.HasPrefix(message, "insufficient permissions") ||
		message == "assignee can only update task status":
		ctx.JSON(http.StatusForbidden, gin.H{"error": message})
	case message == "task not found" || message == "attachment not found":
		ctx.JSON(http.StatusNotFound, gin.H{"error": message})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
	}
}
