package projects_testing

import (
	"encoding/json"
	"fmt"
	"net/http"

	projects_dto "tasktracker/internal/features/projects/dto"
	projects_enums "tasktracker/internal/features/projects/enums"
	projects_models "tasktracker/internal/features/projects/models"
	projects_repositories "tasktracker/internal/features/projects/repositories"
	users_dto "tasktracker/internal/features/users/dto"
	users_middleware "tasktracker/internal/features/users/middleware"
	users_services "tasktracker/internal/features/users/services"
	test_utils "tasktracker/internal/util/testing"

	"github.com/gin-gonic/gin"
)

func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		if routerGroup, ok := protected.(*gin.RouterGroup); ok {
			controller.RegisterRoutes(routerGroup)
		}
	}

	return router
}

func CreateTestProject(name string, owner *users_dto.SignInResponseDTO, router *gin.Engine) *projects_models.Project {
	request := projects_dto.CreateProjectRequestDTO{Name: name}
	w := test_utils.MakeAPIRequest(router, "POST", "/api/v1/projects", "Bearer "+owner.Token, request)

	if w.Code != http.StatusOK {
		panic(fmt.Sprintf("Failed to create project. Status: %d, Body: %s", w.Code, w.Body.String()))
	}

	var response projects_dto.ProjectResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &projects_models.Project{
		ID:                      response.ID,
		Name:                    response.Name,
		Description:             response.Description,
		OwnerID:                 response.OwnerID,
		AllowMemberViewAllTasks: response.AllowMemberViewAllTasks,
		EnableEmailReminders:    response.EnableEmailReminders,
	}
}

// AddMemberToProject writes the membership directly, bypassing the
// invitation flow, for tests that only need a member in place.
func AddMemberToProject(
	project *projects_models.Project,
	member *users_dto.SignInResponseDTO,
	role projects_enums.ProjectRole,
) {
	membershipRepository := &projects_repositories.MembershipRepository{}

	err := membershipRepository.CreateMembership(&projects_models.ProjectMembership{
		UserID:    member.UserID,
		ProjectID: project.ID,
		Role:      role,
	})
	if err != nil {
		panic("Failed to add member to project: " + err.Error())
	}
}

func GetProjectMembers(
	project *projects_models.Project,
	requesterToken string,
	router *gin.Engine,
) *projects_dto.GetMembersResponseDTO {
	w := test_utils.MakeAPIRequest(
		router,
		"GET",
		"/api/v1/projects/"+project.ID.String()+"/members",
		"Bearer "+requesterToken,
		nil,
	)

	if w.Code != http.StatusOK {
		panic("Failed to get project members via API: " + w.Body.String())
	}

	var response projects_dto.GetMembersResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}
