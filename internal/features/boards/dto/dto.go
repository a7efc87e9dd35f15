package boards_dto

import (
	"time"

	boards_models "teamboards-backend/internal/features/boards/models"

	"github.com/google/uuid"
)

type CreateBoardRequestDTO struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type ListBoardsResponseDTO struct {
	Boards []*boards_models.Board `json:"boards"`
}

type GrantBoardAccessRequestDTO struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

type BoardMemberResponseDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"` // Populated from user join
	Name      string    `json:"name"`  // Populated from user join
	CreatedAt time.Time `json:"createdAt"`
}

type GetBoardMembersResponseDTO struct {
	Members []BoardMemberResponseDTO `json:"members"`
}
