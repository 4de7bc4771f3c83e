package invitations

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "PENDING"
	InvitationStatusAccepted InvitationStatus = "ACCEPTED"
	// Kept for API compatibility, expiry is derived from expiresAt at
	// redemption time and never written to storage.
	InvitationStatusExpired InvitationStatus = "EXPIRED"
)

func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationStatusPending, InvitationStatusAccepted, InvitationStatusExpired:
		return true
	default:
		return false
	}
}
