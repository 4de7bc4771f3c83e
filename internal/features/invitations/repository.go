package invitations

import (
	"errors"
	"time"

	"tasktracker/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationRepository struct{}

func (r *InvitationRepository) CreateInvitation(invitation *Invitation) error {
	if invitation.ID == uuid.Nil {
		invitation.ID = uuid.New()
	}

	if invitation.CreatedAt.IsZero() {
		invitation.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(invitation).Error
}

func (r *InvitationRepository) GetPendingInvitationByToken(token string) (*Invitation, error) {
	var invitation Invitation

	err := storage.GetDb().
		Where("token = ? AND status = ?", token, InvitationStatusPending).
		First(&invitation).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &invitation, nil
}

func (r *InvitationRepository) GetInvitationsByProjectID(projectID uuid.UUID) ([]*Invitation, error) {
	var invitations []*Invitation

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&invitations).Error

	return invitations, err
}

func (r *InvitationRepository) MarkAccepted(invitationID uuid.UUID) error {
	return storage.GetDb().
		Model(&Invitation{}).
		Where("id = ?", invitationID).
		Update("status", InvitationStatusAccepted).Error
}

func (r *InvitationRepository) DeleteInvitationsByProjectID(projectID uuid.UUID) error {
	return storage.GetDb().
		Where("project_id = ?", projectID).
		Delete(&Invitation{}).Error
}
