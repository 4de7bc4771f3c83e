package tasks_controllers

import (
	"net/http"

	tasks_services "tasktracker/internal/features/tasks/services"
	users_middleware "tasktracker/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AttachmentController struct {
	attachmentService *tasks_services.AttachmentService
}

func (c *AttachmentController) RegisterRoutes(router *gin.RouterGroup) {
	attachmentRoutes := router.Group("/tasks/detail")

	attachmentRoutes.POST("/:id/attachments", c.UploadAttachments)
	attachmentRoutes.DELETE("/:id/attachments/:attachmentId", c.DeleteAttachment)
}

// UploadAttachments
// @Summary Upload task attachments
// @Description Upload up to 5 files (5MB each) to a task, allowed for management roles and the assignee
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param files formData file true "Files to upload"
// @Success 200 {object} tasks_dto.UploadAttachmentsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/detail/{id}/attachments [post]
func (c *AttachmentController) UploadAttachments(ctx *gin.Context) {
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

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["files"]

	response, err := c.attachmentService.UploadAttachments(ctx.Request.Context(), taskID, files, user)
	if err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteAttachment
// @Summary Delete a task attachment
// @Description Remove an attachment record and schedule deletion of its stored file
// @Tags attachments
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param attachmentId path string true "Attachment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/detail/{id}/attachments/{attachmentId} [delete]
func (c *AttachmentController) DeleteAttachment(ctx *gin.Context) {
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

	attachmentID, err := uuid.Parse(ctx.Param("attachmentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID"})
		return
	}

	if err := c.attachmentService.DeleteAttachment(taskID, attachmentID, user); err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Attachment deleted successfully"})
}
