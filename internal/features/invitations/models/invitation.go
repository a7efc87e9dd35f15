package invitations_models

import (
	"time"

	invitations_enums "teamboards-backend/internal/features/invitations/enums"
	users_enums "teamboards-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type WorkspaceInvitation struct {
	ID              uuid.UUID                          `json:"id"              gorm:"column:id"`
	WorkspaceID     uuid.UUID                          `json:"workspaceId"     gorm:"column:workspace_id"`
	InvitedEmail    string                             `json:"invitedEmail"    gorm:"column:invited_email"`
	InvitedByUserID uuid.UUID                          `json:"invitedByUserId" gorm:"column:invited_by_user_id"`
	Role            users_enums.WorkspaceRole          `json:"role"            gorm:"column:role"`
	Status          invitations_enums.InvitationStatus `json:"status"          gorm:"column:status"`
	CreatedAt       time.Time                          `json:"createdAt"       gorm:"column:created_at"`
}

func (WorkspaceInvitation) TableName() string {
	return "workspace_invitations"
}

func (i *WorkspaceInvitation) IsPending() bool {
	return i.Status == invitations_enums.InvitationStatusPending
}
