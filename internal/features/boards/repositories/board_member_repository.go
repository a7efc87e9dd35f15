package boards_repositories

import (
	"errors"
	"time"

	boards_dto "teamboards-backend/internal/features/boards/dto"
	boards_models "teamboards-backend/internal/features/boards/models"
	"teamboards-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardMemberRepository struct{}

func (r *BoardMemberRepository) CreateBoardMember(member *boards_models.BoardMember) error {
	return r.CreateBoardMemberTx(storage.GetDb(), member)
}

func (r *BoardMemberRepository) CreateBoardMemberTx(
	db *gorm.DB,
	member *boards_models.BoardMember,
) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}

	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}

	return db.Create(member).Error
}

func (r *BoardMemberRepository) GetBoardMember(
	boardID, userID uuid.UUID,
) (*boards_models.BoardMember, error) {
	var member boards_models.BoardMember

	err := storage.GetDb().
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &member, nil
}

func (r *BoardMemberRepository) GetBoardMembers(
	boardID uuid.UUID,
) ([]*boards_dto.BoardMemberResponseDTO, error) {
	var members []*boards_dto.BoardMemberResponseDTO

	err := storage.GetDb().
		Table("board_members bm").
		Select("bm.id, bm.user_id, u.email, u.name, bm.created_at").
		Joins("JOIN users u ON bm.user_id = u.id").
		Where("bm.board_id = ?", boardID).
		Order("bm.created_at ASC").
		Scan(&members).Error

	return members, err
}

func (r *BoardMemberRepository) RemoveBoardMember(boardID, userID uuid.UUID) error {
	return storage.GetDb().
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&boards_models.BoardMember{}).Error
}

func (r *BoardMemberRepository) DeleteBoardMembersTx(db *gorm.DB, boardID uuid.UUID) error {
	return db.
		Where("board_id = ?", boardID).
		Delete(&boards_models.BoardMember{}).Error
}

// DeleteWorkspaceBoardMembersTx removes all grants on boards that
// belong to the workspace.
func (r *BoardMemberRepository) DeleteWorkspaceBoardMembersTx(
	db *gorm.DB,
	workspaceID uuid.UUID,
) error {
	return db.
		Where(
			"board_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Table("boards").
				Select("id").
				Where("workspace_id = ?", workspaceID),
		).
		Delete(&boards_models.BoardMember{}).Error
}

// DeleteUserWorkspaceGrantsTx removes a single user's grants on all
// boards that belong to the workspace.
func (r *BoardMemberRepository) DeleteUserWorkspaceGrantsTx(
	db *gorm.DB,
	workspaceID, userID uuid.UUID,
) error {
	return db.
		Where("user_id = ?", userID).
		Where(
			"board_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Table("boards").
				Select("id").
				Where("workspace_id = ?", workspaceID),
		).
		Delete(&boards_models.BoardMember{}).Error
}
