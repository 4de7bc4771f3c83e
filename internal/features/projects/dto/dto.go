package projects_dto

import (
	"time"

	projects_enums "tasktracker/internal/features/projects/enums"

	"github.com/google/uuid"
)

// Project DTOs
type CreateProjectRequestDTO struct {
	Name                    string `json:"name"                    binding:"required,min=1,max=255"`
	Description             string `json:"description"             binding:"max=2000"`
	AllowMemberViewAllTasks *bool  `json:"allowMemberViewAllTasks"`
	EnableEmailReminders    *bool  `json:"enableEmailReminders"`
}

// Pointer fields distinguish "not sent" from zero values, so updates are
// strictly partial.
type UpdateProjectRequestDTO struct {
	Name                    *string `json:"name"                    binding:"omitempty,min=1,max=255"`
	Description             *string `json:"description"             binding:"omitempty,max=2000"`
	AllowMemberViewAllTasks *bool   `json:"allowMemberViewAllTasks"`
	EnableEmailReminders    *bool   `json:"enableEmailReminders"`
}

type DeleteProjectRequestDTO struct {
	ConfirmationName string `json:"confirmationName" binding:"required"`
}

type ProjectResponseDTO struct {
	ID                      uuid.UUID `json:"id"`
	Name                    string    `json:"name"`
	Description             string    `json:"description"`
	OwnerID                 uuid.UUID `json:"ownerId"`
	AllowMemberViewAllTasks bool      `json:"allowMemberViewAllTasks"`
	EnableEmailReminders    bool      `json:"enableEmailReminders"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`

	// User's role in this project (populated when fetching for specific user)
	UserRole *projects_enums.ProjectRole `json:"userRole,omitempty"`
}

type ListProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
}

// Membership DTOs
type ChangeMemberRoleRequestDTO struct {
	Role projects_enums.ProjectRole `json:"role" binding:"required"`
}

type ProjectMemberResponseDTO struct {
	ID        uuid.UUID                 `json:"id"`
	UserID    uuid.UUID                 `json:"userId"`
	Email     string                    `json:"email"` // Populated from user join
	Name      string                    `json:"name"`
	AvatarURL string                    `json:"avatarUrl"`
	Role      projects_enums.ProjectRole `json:"role"`
	JoinedAt  time.Time                 `json:"joinedAt"`
}

type GetMembersResponseDTO struct {
	Members []ProjectMemberResponseDTO `json:"members"`
}
