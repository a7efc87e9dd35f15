package boards_models

import (
	"time"

	"github.com/google/uuid"
)

type Board struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	WorkspaceID uuid.UUID `json:"workspaceId" gorm:"column:workspace_id"`
	Name        string    `json:"name"        gorm:"column:name"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
}

func (Board) TableName() string {
	return "boards"
}
