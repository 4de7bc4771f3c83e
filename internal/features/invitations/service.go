package invitations

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"tasktracker/internal/config"
	projects_enums "tasktracker/internal/features/projects/enums"
	projects_services "tasktracker/internal/features/projects/services"
	users_models "tasktracker/internal/features/users/models"
	users_services "tasktracker/internal/features/users/services"
	"tasktracker/internal/mail"
	"tasktracker/internal/util/logger"
	"tasktracker/internal/util/rate_limit"

	"github.com/google/uuid"
)

const (
	TokenBytes         = 20
	InvitationLifetime = 24 * time.Hour

	// Per-project throttle on invitation creation
	invitationsPerSecond = 1
	invitationsBurst     = 10
)

type InvitationService struct {
	invitationRepository *InvitationRepository
	projectService       *projects_services.ProjectService
	membershipService    *projects_services.MembershipService
	userService          *users_services.UserService
	mailer               mail.Sender
	rateLimiter          *rate_limit.RateLimiter
}

// SetMailer replaces the mail sender, used by tests to record outbound
// messages instead of dialing SMTP.
func (s *InvitationService) SetMailer(mailer mail.Sender) {
	s.mailer = mailer
}

func (s *InvitationService) CreateInvitation(
	request *CreateInvitationRequestDTO,
	inviter *users_models.User,
) (*CreateInvitationResponseDTO, error) {
	if !request.Role.IsValid() || request.Role == projects_enums.ProjectRoleOwner {
		return nil, errors.New("invalid invitation role")
	}

	canManage, err := s.projectService.CanUserManageProject(request.ProjectID, inviter)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, errors.New("insufficient permissions to invite members")
	}

	limitResult, err := s.rateLimiter.CheckRateLimit(request.ProjectID, invitationsPerSecond, invitationsBurst)
	if err == nil && !limitResult.Allowed {
		return nil, errors.New("too many invitations created, please try again later")
	}

	project, err := s.projectService.GetProjectWithCache(request.ProjectID)
	if err != nil {
		return nil, err
	}

	// Emails are matched and stored case-insensitively
	email := strings.ToLower(strings.TrimSpace(request.Email))

	existingUser, err := s.userService.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		role, err := s.projectService.GetUserProjectRole(request.ProjectID, existingUser.ID)
		if err != nil {
			return nil, err
		}
		if role != nil {
			return nil, errors.New("user is already a member of this project")
		}
	}

	token, err := generateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	invitation := &Invitation{
		ID:        uuid.New(),
		ProjectID: request.ProjectID,
		InviterID: inviter.ID,
		Email:     email,
		Role:      request.Role,
		Token:     token,
		Status:    InvitationStatusPending,
		ExpiresAt: time.Now().UTC().Add(InvitationLifetime),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.invitationRepository.CreateInvitation(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	// Fire-and-forget, delivery failure never blocks invitation creation
	go s.sendInvitationEmail(invitation, project.Name, inviter.Name)

	return &CreateInvitationResponseDTO{
		ID:        invitation.ID,
		ProjectID: invitation.ProjectID,
		Email:     invitation.Email,
		Role:      invitation.Role,
		Status:    invitation.Status,
		ExpiresAt: invitation.ExpiresAt,
		CreatedAt: invitation.CreatedAt,
	}, nil
}

func (s *InvitationService) AcceptInvitation(
	request *AcceptInvitationRequestDTO,
	actingUser *users_models.User,
) (*AcceptInvitationResponseDTO, error) {
	invitation, err := s.invitationRepository.GetPendingInvitationByToken(request.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invitation: %w", err)
	}

	if invitation == nil || invitation.IsExpired(time.Now().UTC()) {
		return nil, errors.New("invalid or expired invitation token")
	}

	role, err := s.projectService.GetUserProjectRole(invitation.ProjectID, actingUser.ID)
	if err != nil {
		return nil, err
	}
	if role != nil {
		return nil, errors.New("user is already a member of this project")
	}

	if err := s.membershipService.AddMember(invitation.ProjectID, actingUser.ID, invitation.Role); err != nil {
		return nil, err
	}

	if err := s.invitationRepository.MarkAccepted(invitation.ID); err != nil {
		return nil, fmt.Errorf("failed to mark invitation accepted: %w", err)
	}

	return &AcceptInvitationResponseDTO{
		ProjectID: invitation.ProjectID,
	}, nil
}

func (s *InvitationService) GetProjectInvitations(
	projectID uuid.UUID,
	user *users_models.User,
) (*GetInvitationsResponseDTO, error) {
	canManage, err := s.projectService.CanUserManageProject(projectID, user)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, errors.New("insufficient permissions to view invitations")
	}

	invitations, err := s.invitationRepository.GetInvitationsByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitations: %w", err)
	}

	return &GetInvitationsResponseDTO{
		Invitations: invitations,
	}, nil
}

func (s *InvitationService) OnBeforeProjectDeletion(projectID uuid.UUID) error {
	return s.invitationRepository.DeleteInvitationsByProjectID(projectID)
}

func (s *InvitationService) sendInvitationEmail(invitation *Invitation, projectName, inviterName string) {
	acceptLink := fmt.Sprintf("%s/accept-invite?token=%s", config.GetEnv().ClientURL, invitation.Token)

	subject := fmt.Sprintf("You have been invited to join %s", projectName)
	body := fmt.Sprintf(
		"<p>%s invited you to join the project <b>%s</b> as %s.</p>"+
			"<p><a href=\"%s\">Accept invitation</a></p>"+
			"<p>The invitation expires in 24 hours.</p>",
		inviterName, projectName, invitation.Role, acceptLink,
	)

	if err := s.mailer.Send(invitation.Email, subject, body); err != nil {
		logger.GetLogger().Error(
			"failed to send invitation email",
			"invitationId", invitation.ID.String(),
			"error", err,
		)
	}
}

func generateSecureToken() (string, error) {
	tokenBytes := make([]byte, TokenBytes)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(tokenBytes), nil
}
