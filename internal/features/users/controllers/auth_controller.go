package users_controllers

import (
	"net/http"

	users_dto "tasktracker/internal/features/users/dto"
	users_middleware "tasktracker/internal/features/users/middleware"
	users_services "tasktracker/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type AuthController struct {
	userService   *users_services.UserService
	signinLimiter *rate.Limiter
}

func (c *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/auth/google", c.SignInWithGoogle)
}

func (c *AuthController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/auth/me", c.GetCurrentUser)
}

// SignInWithGoogle
// @Summary Sign in with a Google ID token
// @Description Exchange a verified Google ID token for an application access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.GoogleSignInRequestDTO true "Google ID token"
// @Success 200 {object} users_dto.SignInResponseDTO
// @Failure 400
// @Failure 401 {object} map[string]string
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Router /auth/google [post]
func (c *AuthController) SignInWithGoogle(ctx *gin.Context) {
	// We use rate limiter to prevent token guessing and verifier abuse
	if !c.signinLimiter.Allow() {
		ctx.JSON(
			http.StatusTooManyRequests,
			gin.H{"error": "Rate limit exceeded. Please try again later."},
		)
		return
	}

	var request users_dto.GoogleSignInRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.userService.SignInWithGoogle(&request)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetCurrentUser
// @Summary Get current user profile
// @Description Get the profile information of the currently authenticated user
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (c *AuthController) GetCurrentUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile := c.userService.GetCurrentUserProfile(user)
	ctx.JSON(http.StatusOK, profile)
}
