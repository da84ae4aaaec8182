package ports

import "github.com/weddingplan/planner-api/internal/core/domain"

// ProfileUpdate carries the self-service account fields; nil fields are kept.
type ProfileUpdate struct {
	DisplayName *string
	WeddingDate *string
}

// UserUpdate carries the admin-editable account fields.
type UserUpdate struct {
	Role        *domain.Role
	Activated   *bool
	Permissions *domain.Permissions
}

// SpeechInput describes the wedding speech the advisor should draft.
type SpeechInput struct {
	Speaker string
	Tone    string
	Notes   string
}
