package invitations

import (
	"sync"
	"time"

	projects_enums "tasktracker/internal/features/projects/enums"

	"github.com/google/uuid"
)

// RecordingMailer captures outbound emails for assertions instead of
// dialing SMTP. Install via InvitationService.SetMailer.
type RecordingMailer struct {
	mu       sync.Mutex
	Messages []RecordedMessage
}

type RecordedMessage struct {
	To      string
	Subject string
	Body    string
}

func (m *RecordingMailer) Send(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Messages = append(m.Messages, RecordedMessage{To: to, Subject: subject, Body: htmlBody})

	return nil
}

func (m *RecordingMailer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.Messages)
}

// Snapshot copies the recorded messages so callers can inspect them
// without racing the sender goroutines.
func (m *RecordingMailer) Snapshot() []RecordedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	messages := make([]RecordedMessage, len(m.Messages))
	copy(messages, m.Messages)

	return messages
}

// CreateTestInvitation persists an invitation directly, bypassing the
// permission and rate limit checks of the service.
func CreateTestInvitation(
	projectID, inviterID uuid.UUID,
	email string,
	role projects_enums.ProjectRole,
	expiresAt time.Time,
) *Invitation {
	token, err := generateSecureToken()
	if err != nil {
		panic(err)
	}

	invitation := &Invitation{
		ID:        uuid.New(),
		ProjectID: projectID,
		InviterID: inviterID,
		Email:     email,
		Role:      role,
		Token:     token,
		Status:    InvitationStatusPending,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}

	if err := (&InvitationRepository{}).CreateInvitation(invitation); err != nil {
		panic(err)
	}

	return invitation
}
