package boards_repositories

import (
	"time"

	boards_models "teamboards-backend/internal/features/boards/models"
	"teamboards-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct{}

func (r *BoardRepository) CreateBoardTx(db *gorm.DB, board *boards_models.Board) error {
	if board.ID == uuid.Nil {
		board.ID = uuid.New()
	}

	if board.CreatedAt.IsZero() {
		board.CreatedAt = time.Now().UTC()
	}

	return db.Create(board).Error
}

func (r *BoardRepository) GetBoardByID(boardID uuid.UUID) (*boards_models.Board, error) {
	var board boards_models.Board

	if err := storage.GetDb().Where("id = ?", boardID).First(&board).Error; err != nil {
		return nil, err
	}

	return &board, nil
}

func (r *BoardRepository) GetWorkspaceBoards(
	workspaceID uuid.UUID,
) ([]*boards_models.Board, error) {
	var boards []*boards_models.Board

	err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&boards).Error

	return boards, err
}

func (r *BoardRepository) DeleteBoardTx(db *gorm.DB, boardID uuid.UUID) error {
	return db.Delete(&boards_models.Board{}, boardID).Error
}

func (r *BoardRepository) DeleteWorkspaceBoardsTx(db *gorm.DB, workspaceID uuid.UUID) error {
	return db.
		Where("workspace_id = ?", workspaceID).
		Delete(&boards_models.Board{}).Error
}
