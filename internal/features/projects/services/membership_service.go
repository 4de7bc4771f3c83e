package projects_services

import (
	"errors"
	"fmt"

	projects_dto "tasktracker/internal/features/projects/dto"
	projects_enums "tasktracker/internal/features/projects/enums"
	projects_models "tasktracker/internal/features/projects/models"
	projects_repositories "tasktracker/internal/features/projects/repositories"
	users_models "tasktracker/internal/features/users/models"

	"github.com/google/uuid"
)

type MembershipService struct {
	membershipRepository *projects_repositories.MembershipRepository
	projectService       *ProjectService
}

func (s *MembershipService) GetMembers(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.GetMembersResponseDTO, error) {
	canAccess, _, err := s.projectService.CanUserAccessProject(projectID, user)

	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, errors.New("insufficient permissions to view project members")
	}

	members, err := s.membershipRepository.GetProjectMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}

	membersList := make([]projects_dto.ProjectMemberResponseDTO, len(members))
	for i, member := range members {
		membersList[i] = *member
	}

	return &projects_dto.GetMembersResponseDTO{
		Members: membersList,
	}, nil
}

func (s *MembershipService) ChangeMemberRole(
	projectID uuid.UUID,
	memberUserID uuid.UUID,
	request *projects_dto.ChangeMemberRoleRequestDTO,
	changedBy *users_models.User,
) error {
	if !request.Role.IsValid() || request.Role == projects_enums.ProjectRoleOwner {
		return errors.New("invalid role")
	}

	isOwner, err := s.projectService.IsUserProjectOwner(projectID, changedBy.ID)
	if err != nil {
		return err
	}
	if !isOwner {
		return errors.New("only project owner can change member roles")
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndProject(memberUserID, projectID)
	if err != nil {
		return errors.New("user is not a member of this project")
	}

	if existingMembership.Role == projects_enums.ProjectRoleOwner {
		return errors.New("cannot change owner role")
	}

	if err := s.membershipRepository.UpdateMemberRole(memberUserID, projectID, request.Role); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	return nil
}

func (s *MembershipService) RemoveMember(
	projectID uuid.UUID,
	memberUserID uuid.UUID,
	removedBy *users_models.User,
) error {
	isOwner, err := s.projectService.IsUserProjectOwner(projectID, removedBy.ID)
	if err != nil {
		return err
	}
	if !isOwner {
		return errors.New("only project owner can remove members")
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndProject(memberUserID, projectID)
	if err != nil {
		return errors.New("user is not a member of this project")
	}

	if existingMembership.Role == projects_enums.ProjectRoleOwner {
		return errors.New("cannot remove project owner")
	}

	if err := s.membershipRepository.RemoveMember(memberUserID, projectID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

func (s *MembershipService) LeaveProject(projectID uuid.UUID, user *users_models.User) error {
	existingMembership, err := s.membershipRepository.GetMembershipByUserAndProject(user.ID, projectID)
	if err != nil {
		return errors.New("user is not a member of this project")
	}

	if existingMembership.Role == projects_enums.ProjectRoleOwner {
		return errors.New("project owner cannot leave the project")
	}

	if err := s.membershipRepository.RemoveMember(user.ID, projectID); err != nil {
		return fmt.Errorf("failed to leave project: %w", err)
	}

	return nil
}

// AddMember appends a membership directly, used by invitation redemption.
func (s *MembershipService) AddMember(
	projectID uuid.UUID,
	userID uuid.UUID,
	role projects_enums.ProjectRole,
) error {
	existingMembership, _ := s.membershipRepository.GetMembershipByUserAndProject(userID, projectID)
	if existingMembership != nil {
		return errors.New("user is already a member of this project")
	}

	membership := &projects_models.ProjectMembership{
		UserID:    userID,
		ProjectID: projectID,
		Role:      role,
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}
