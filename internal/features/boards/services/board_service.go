package boards_services

import (
	"errors"
	"fmt"
	"time"

	audit_logs "teamboards-backend/internal/features/audit_logs"
	boards_dto "teamboards-backend/internal/features/boards/dto"
	boards_models "teamboards-backend/internal/features/boards/models"
	boards_repositories "teamboards-backend/internal/features/boards/repositories"
	users_models "teamboards-backend/internal/features/users/models"
	users_services "teamboards-backend/internal/features/users/services"
	workspaces_services "teamboards-backend/internal/features/workspaces/services"
	"teamboards-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardService struct {
	boardRepository       *boards_repositories.BoardRepository
	boardMemberRepository *boards_repositories.BoardMemberRepository
	workspaceService      *workspaces_services.WorkspaceService
	userService           *users_services.UserService
	auditLogService       *audit_logs.AuditLogService
}

func (s *BoardService) CreateBoard(
	workspaceID uuid.UUID,
	request *boards_dto.CreateBoardRequestDTO,
	creator *users_models.User,
) (*boards_models.Board, error) {
	canManage, err := s.workspaceService.CanUserManageWorkspace(workspaceID, creator)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, errors.New("only workspace owner can create boards")
	}

	board := &boards_models.Board{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        request.Name,
		CreatedAt:   time.Now().UTC(),
	}

	grant := &boards_models.BoardMember{
		BoardID: board.ID,
		UserID:  creator.ID,
	}

	// The creator always holds a grant on their own board.
	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.boardRepository.CreateBoardTx(tx, board); err != nil {
			return err
		}

		return s.boardMemberRepository.CreateBoardMemberTx(tx, grant)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Board created: %s", board.Name),
		&creator.ID,
		&workspaceID,
	)

	return board, nil
}

func (s *BoardService) GetWorkspaceBoards(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*boards_dto.ListBoardsResponseDTO, error) {
	canView, _, err := s.workspaceService.CanUserAccessWorkspace(workspaceID, user)
	if err != nil {
		return nil, err
	}
	if !canView {
		return nil, errors.New("insufficient permissions to view workspace boards")
	}

	boards, err := s.boardRepository.GetWorkspaceBoards(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace boards: %w", err)
	}

	return &boards_dto.ListBoardsResponseDTO{
		Boards: boards,
	}, nil
}

func (s *BoardService) GetBoard(
	boardID uuid.UUID,
	user *users_models.User,
) (*boards_models.Board, error) {
	board, err := s.getBoardByID(boardID)
	if err != nil {
		return nil, err
	}

	canView, err := s.CanUserAccessBoard(board, user)
	if err != nil {
		return nil, err
	}
	if !canView {
		return nil, errors.New("insufficient permissions to view board")
	}

	return board, nil
}

func (s *BoardService) DeleteBoard(boardID uuid.UUID, user *users_models.User) error {
	board, err := s.getBoardByID(boardID)
	if err != nil {
		return err
	}

	canManage, err := s.workspaceService.CanUserManageWorkspace(board.WorkspaceID, user)
	if err != nil {
		return err
	}
	if !canManage {
		return errors.New("only workspace owner can delete boards")
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.boardMemberRepository.DeleteBoardMembersTx(tx, boardID); err != nil {
			return err
		}

		return s.boardRepository.DeleteBoardTx(tx, boardID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Board deleted: %s", board.Name),
		&user.ID,
		&board.WorkspaceID,
	)

	return nil
}

func (s *BoardService) GetBoardMembers(
	boardID uuid.UUID,
	user *users_models.User,
) (*boards_dto.GetBoardMembersResponseDTO, error) {
	board, err := s.getBoardByID(boardID)
	if err != nil {
		return nil, err
	}

	canView, err := s.CanUserAccessBoard(board, user)
	if err != nil {
		return nil, err
	}
	if !canView {
		return nil, errors.New("insufficient permissions to view board members")
	}

	members, err := s.boardMemberRepository.GetBoardMembers(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get board members: %w", err)
	}

	membersList := make([]boards_dto.BoardMemberResponseDTO, len(members))
	for i, member := range members {
		membersList[i] = *member
	}

	return &boards_dto.GetBoardMembersResponseDTO{
		Members: membersList,
	}, nil
}

func (s *BoardService) GrantBoardAccess(
	boardID uuid.UUID,
	request *boards_dto.GrantBoardAccessRequestDTO,
	grantedBy *users_models.User,
) error {
	board, err := s.getBoardByID(boardID)
	if err != nil {
		return err
	}

	canManage, err := s.workspaceService.CanUserManageWorkspace(board.WorkspaceID, grantedBy)
	if err != nil {
		return err
	}
	if !canManage {
		return errors.New("only workspace owner can manage board access")
	}

	// Grants only make sense for users who are in the workspace.
	targetRole, err := s.workspaceService.GetUserWorkspaceRole(board.WorkspaceID, request.UserID)
	if err != nil {
		return fmt.Errorf("failed to check workspace membership: %w", err)
	}
	if targetRole == nil {
		return errors.New("user must be a workspace member to receive board access")
	}

	existingGrant, err := s.boardMemberRepository.GetBoardMember(boardID, request.UserID)
	if err != nil {
		return fmt.Errorf("failed to check board access: %w", err)
	}
	if existingGrant != nil {
		return errors.New("user already has access to this board")
	}

	grant := &boards_models.BoardMember{
		BoardID: boardID,
		UserID:  request.UserID,
	}

	if err := s.boardMemberRepository.CreateBoardMember(grant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("user already has access to this board")
		}
		return fmt.Errorf("failed to grant board access: %w", err)
	}

	targetUser, err := s.userService.GetUserByID(request.UserID)
	if err == nil {
		s.auditLogService.WriteAuditLog(
			fmt.Sprintf("Board access granted: %s to %s", board.Name, targetUser.Email),
			&grantedBy.ID,
			&board.WorkspaceID,
		)
	}

	return nil
}

// RevokeBoardAccess removes a grant. Revoking an absent grant is a
// no-op.
func (s *BoardService) RevokeBoardAccess(
	boardID uuid.UUID,
	userID uuid.UUID,
	revokedBy *users_models.User,
) error {
	board, err := s.getBoardByID(boardID)
	if err != nil {
		return err
	}

	canManage, err := s.workspaceService.CanUserManageWorkspace(board.WorkspaceID, revokedBy)
	if err != nil {
		return err
	}
	if !canManage {
		return errors.New("only workspace owner can manage board access")
	}

	if err := s.boardMemberRepository.RemoveBoardMember(boardID, userID); err != nil {
		return fmt.Errorf("failed to revoke board access: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Board access revoked: %s", board.Name),
		&revokedBy.ID,
		&board.WorkspaceID,
	)

	return nil
}

// CanUserAccessBoard reports whether the user may open the board:
// workspace owners always can, everyone else needs a grant.
func (s *BoardService) CanUserAccessBoard(
	board *boards_models.Board,
	user *users_models.User,
) (bool, error) {
	canManage, err := s.workspaceService.CanUserManageWorkspace(board.WorkspaceID, user)
	if err != nil {
		return false, err
	}
	if canManage {
		return true, nil
	}

	grant, err := s.boardMemberRepository.GetBoardMember(board.ID, user.ID)
	if err != nil {
		return false, err
	}

	return grant != nil, nil
}

// OnBeforeWorkspaceDeletion drops all boards and grants in the
// workspace inside the deletion transaction.
func (s *BoardService) OnBeforeWorkspaceDeletion(tx *gorm.DB, workspaceID uuid.UUID) error {
	if err := s.boardMemberRepository.DeleteWorkspaceBoardMembersTx(tx, workspaceID); err != nil {
		return err
	}

	return s.boardRepository.DeleteWorkspaceBoardsTx(tx, workspaceID)
}

// OnMembershipRemoved revokes the departing member's grants on all
// boards in the workspace.
func (s *BoardService) OnMembershipRemoved(tx *gorm.DB, workspaceID, userID uuid.UUID) error {
	return s.boardMemberRepository.DeleteUserWorkspaceGrantsTx(tx, workspaceID, userID)
}

func (s *BoardService) getBoardByID(boardID uuid.UUID) (*boards_models.Board, error) {
	board, err := s.boardRepository.GetBoardByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("board not found")
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	return board, nil
}
