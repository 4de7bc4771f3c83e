package invitations

import (
	"net/http"

	users_middleware "tasktracker/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvitationController struct {
	invitationService *InvitationService
}

func (c *InvitationController) RegisterRoutes(router *gin.RouterGroup) {
	invitationRoutes := router.Group("/invitations")

	invitationRoutes.POST("", c.CreateInvitation)
	invitationRoutes.POST("/accept", c.AcceptInvitation)
	invitationRoutes.GET("/project/:projectId", c.GetProjectInvitations)
}

// CreateInvitation
// @Summary Invite a user to a project
// @Description Create an invitation for an email address, sends a redemption link
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateInvitationRequestDTO true "Invitation data"
// @Success 200 {object} CreateInvitationResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /invitations [post]
func (c *InvitationController) CreateInvitation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request CreateInvitationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.invitationService.CreateInvitation(&request, user)
	if err != nil {
		switch err.Error() {
		case "insufficient permissions to invite members":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "user is already a member of this project":
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case "too many invitations created, please try again later":
			ctx.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AcceptInvitation
// @Summary Redeem an invitation token
// @Description Join the project tied to a pending, unexpired invitation token
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AcceptInvitationRequestDTO true "Invitation token"
// @Success 200 {object} AcceptInvitationResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /invitations/accept [post]
func (c *InvitationController) AcceptInvitation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request AcceptInvitationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.invitationService.AcceptInvitation(&request, user)
	if err != nil {
		if err.Error() == "user is already a member of this project" {
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetProjectInvitations
// @Summary List project invitations
// @Description Get all invitations issued for a project (management roles only)
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} GetInvitationsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /invitations/project/{projectId} [get]
func (c *InvitationController) GetProjectInvitations(ctx *gin.Context) {
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

	response, err := c.invitationService.GetProjectInvitations(projectID, user)
	if err != nil {
		if err.Error() == "insufficient permissions to view invitations" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
