package invitations

import (
	"time"

	projects_enums "tasktracker/internal/features/projects/enums"

	"github.com/google/uuid"
)

type CreateInvitationRequestDTO struct {
	ProjectID uuid.UUID                  `json:"projectId" binding:"required"`
	Email     string                     `json:"email"     binding:"required,email"`
	Role      projects_enums.ProjectRole `json:"role"      binding:"required"`
}

type CreateInvitationResponseDTO struct {
	ID        uuid.UUID                  `json:"id"`
	ProjectID uuid.UUID                  `json:"projectId"`
	Email     string                     `json:"email"`
	Role      projects_enums.ProjectRole `json:"role"`
	Status    InvitationStatus           `json:"status"`
	ExpiresAt time.Time                  `json:"expiresAt"`
	CreatedAt time.Time                  `json:"createdAt"`
}

type AcceptInvitationRequestDTO struct {
	Token string `json:"token" binding:"required"`
}

type AcceptInvitationResponseDTO struct {
	ProjectID uuid.UUID `json:"projectId"`
}

type GetInvitationsResponseDTO struct {
	Invitations []*Invitation `json:"invitations"`
}
