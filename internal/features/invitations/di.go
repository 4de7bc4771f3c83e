package invitations

import (
	projects_services "tasktracker/internal/features/projects/services"
	users_services "tasktracker/internal/features/users/services"
	"tasktracker/internal/mail"
	"tasktracker/internal/util/rate_limit"
)

var invitationRepository = &InvitationRepository{}

var invitationService = &InvitationService{
	invitationRepository: invitationRepository,
	projectService:       projects_services.GetProjectService(),
	membershipService:    projects_services.GetMembershipService(),
	userService:          users_services.GetUserService(),
	rateLimiter:          rate_limit.NewRateLimiter(),
}

var invitationController = &InvitationController{
	invitationService: invitationService,
}

func GetInvitationService() *InvitationService {
	return invitationService
}

func GetInvitationController() *InvitationController {
	return invitationController
}

// SetupDependencies wires the mailer and registers the project deletion
// listener. Called once from main after config is loaded.
func SetupDependencies() {
	invitationService.mailer = mail.GetMailer()
	projects_services.GetProjectService().AddProjectDeletionListener(invitationService)
}
