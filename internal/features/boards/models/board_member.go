package boards_models

import (
	"time"

	"github.com/google/uuid"
)

// BoardMember is a per-board access grant. Workspace owners can open
// any board without one.
type BoardMember struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	BoardID   uuid.UUID `json:"boardId"   gorm:"column:board_id"`
	UserID    uuid.UUID `json:"userId"    gorm:"column:user_id"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (BoardMember) TableName() string {
	return "board_members"
}
