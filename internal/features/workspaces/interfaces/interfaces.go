package workspaces_interfaces

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkspaceDeletionListener runs inside the deletion transaction so
// dependent records disappear together with the workspace.
type WorkspaceDeletionListener interface {
	OnBeforeWorkspaceDeletion(tx *gorm.DB, workspaceID uuid.UUID) error
}

// MembershipRemovalListener runs inside the removal transaction when a
// member is removed from or leaves a workspace.
type MembershipRemovalListener interface {
	OnMembershipRemoved(tx *gorm.DB, workspaceID, userID uuid.UUID) error
}
