package projects_services

import (
	"tasktracker/internal/cache"
	projects_interfaces "tasktracker/internal/features/projects/interfaces"
	projects_models "tasktracker/internal/features/projects/models"
	projects_repositories "tasktracker/internal/features/projects/repositories"
	cache_utils "tasktracker/internal/util/cache"

	"golang.org/x/sync/singleflight"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var membershipRepository = &projects_repositories.MembershipRepository{}

var projectService = &ProjectService{
	projectRepository,
	membershipRepository,
	[]projects_interfaces.ProjectDeletionListener{},
	cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache(), "tt_project:"),
	singleflight.Group{},
}

var membershipService = &MembershipService{
	membershipRepository,
	projectService,
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetMembershipService() *MembershipService {
	return membershipService
}
