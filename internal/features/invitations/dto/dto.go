package invitations_dto

import (
	"time"

	invitations_enums "teamboards-backend/internal/features/invitations/enums"
	users_enums "teamboards-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type CreateInvitationRequestDTO struct {
	Email string                    `json:"email" binding:"required,email"`
	Role  users_enums.WorkspaceRole `json:"role"  binding:"required"`
}

type InvitationResponseDTO struct {
	ID            uuid.UUID                          `json:"id"`
	WorkspaceID   uuid.UUID                          `json:"workspaceId"`
	WorkspaceName string                             `json:"workspaceName"` // Populated from workspace join
	InvitedEmail  string                             `json:"invitedEmail"`
	InvitedBy     string                             `json:"invitedBy"` // Inviter email, from user join
	Role          users_enums.WorkspaceRole          `json:"role"`
	Status        invitations_enums.InvitationStatus `json:"status"`
	CreatedAt     time.Time                          `json:"createdAt"`
}

type ListInvitationsResponseDTO struct {
	Invitations []*InvitationResponseDTO `json:"invitations"`
}
