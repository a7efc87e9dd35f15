package workspaces_services

import (
	"errors"
	"fmt"
	"time"

	audit_logs "teamboards-backend/internal/features/audit_logs"
	users_enums "teamboards-backend/internal/features/users/enums"
	users_models "teamboards-backend/internal/features/users/models"
	workspaces_dto "teamboards-backend/internal/features/workspaces/dto"
	workspaces_interfaces "teamboards-backend/internal/features/workspaces/interfaces"
	workspaces_models "teamboards-backend/internal/features/workspaces/models"
	workspaces_repositories "teamboards-backend/internal/features/workspaces/repositories"
	"teamboards-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceService struct {
	workspaceRepository        *workspaces_repositories.WorkspaceRepository
	membershipRepository       *workspaces_repositories.MembershipRepository
	auditLogService            *audit_logs.AuditLogService
	workspaceDeletionListeners []workspaces_interfaces.WorkspaceDeletionListener
}

func (s *WorkspaceService) AddWorkspaceDeletionListener(
	listener workspaces_interfaces.WorkspaceDeletionListener,
) {
	s.workspaceDeletionListeners = append(s.workspaceDeletionListeners, listener)
}

func (s *WorkspaceService) CreateWorkspace(
	request *workspaces_dto.CreateWorkspaceRequestDTO,
	creator *users_models.User,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	workspace := &workspaces_models.Workspace{
		ID:        uuid.New(),
		Name:      request.Name,
		CreatedAt: time.Now().UTC(),
	}

	membership := &workspaces_models.WorkspaceMembership{
		UserID:      creator.ID,
		WorkspaceID: workspace.ID,
		Role:        users_enums.WorkspaceRoleOwner,
	}

	// The workspace never exists without its owner membership.
	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.workspaceRepository.CreateWorkspaceTx(tx, workspace); err != nil {
			return err
		}

		return s.membershipRepository.CreateMembershipTx(tx, membership)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Workspace created: %s", workspace.Name),
		&creator.ID,
		&workspace.ID,
	)

	ownerRole := users_enums.WorkspaceRoleOwner
	return &workspaces_dto.WorkspaceResponseDTO{
		ID:        workspace.ID,
		Name:      workspace.Name,
		CreatedAt: workspace.CreatedAt,
		UserRole:  &ownerRole,
	}, nil
}

func (s *WorkspaceService) GetWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*workspaces_models.Workspace, error) {
	workspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("workspace not found")
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	canView, _, err := s.CanUserAccessWorkspace(workspaceID, user)
	if err != nil {
		return nil, err
	}
	if !canView {
		return nil, errors.New("insufficient permissions to view workspace")
	}

	return workspace, nil
}

func (s *WorkspaceService) GetUserWorkspaces(
	user *users_models.User,
) (*workspaces_dto.ListWorkspacesResponseDTO, error) {
	workspaces, err := s.membershipRepository.GetWorkspacesWithRolesByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user workspaces: %w", err)
	}

	return &workspaces_dto.ListWorkspacesResponseDTO{
		Workspaces: workspaces,
	}, nil
}

func (s *WorkspaceService) UpdateWorkspace(
	workspaceID uuid.UUID,
	updateDTO *workspaces_models.Workspace,
	user *users_models.User,
) (*workspaces_models.Workspace, error) {
	canManage, err := s.CanUserManageWorkspace(workspaceID, user)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, errors.New("only workspace owner can update workspace")
	}

	existingWorkspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("workspace not found")
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	existingWorkspace.UpdateFromDTO(updateDTO)

	if err := s.workspaceRepository.UpdateWorkspace(existingWorkspace); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Workspace updated: %s", existingWorkspace.Name),
		&user.ID,
		&workspaceID,
	)

	return existingWorkspace, nil
}

func (s *WorkspaceService) DeleteWorkspace(workspaceID uuid.UUID, user *users_models.User) error {
	workspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("workspace not found")
		}
		return fmt.Errorf("failed to get workspace: %w", err)
	}

	canManage, err := s.CanUserManageWorkspace(workspaceID, user)
	if err != nil {
		return err
	}
	if !canManage {
		return errors.New("only workspace owner can delete workspace")
	}

	// Listeners clean up dependent records in the same transaction,
	// so a failed cascade leaves the workspace untouched.
	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		for _, listener := range s.workspaceDeletionListeners {
			if err := listener.OnBeforeWorkspaceDeletion(tx, workspaceID); err != nil {
				return err
			}
		}

		return s.workspaceRepository.DeleteWorkspaceTx(tx, workspaceID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Workspace deleted: %s", workspace.Name),
		&user.ID,
		nil,
	)

	return nil
}

func (s *WorkspaceService) GetUserWorkspaceRole(
	workspaceID uuid.UUID,
	userID uuid.UUID,
) (*users_enums.WorkspaceRole, error) {
	return s.membershipRepository.GetUserWorkspaceRole(workspaceID, userID)
}

// CanUserAccessWorkspace reports whether the user holds any membership
// in the workspace, and with which role.
func (s *WorkspaceService) CanUserAccessWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
) (bool, *users_enums.WorkspaceRole, error) {
	role, err := s.membershipRepository.GetUserWorkspaceRole(workspaceID, user.ID)
	if err != nil {
		return false, nil, err
	}

	return role != nil, role, nil
}

// CanUserManageWorkspace reports whether the user is an owner of the
// workspace. Ownership derives from the membership role alone.
func (s *WorkspaceService) CanUserManageWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
) (bool, error) {
	role, err := s.membershipRepository.GetUserWorkspaceRole(workspaceID, user.ID)
	if err != nil {
		return false, err
	}

	if role == nil {
		return false, nil
	}

	return *role == users_enums.WorkspaceRoleOwner, nil
}

func (s *WorkspaceService) GetWorkspaceAuditLogs(
	workspaceID uuid.UUID,
	user *users_models.User,
	request *audit_logs.GetAuditLogsRequest,
) (*audit_logs.GetAuditLogsResponse, error) {
	canView, _, err := s.CanUserAccessWorkspace(workspaceID, user)
	if err != nil {
		return nil, err
	}
	if !canView {
		return nil, errors.New("insufficient permissions to view workspace audit logs")
	}

	return s.auditLogService.GetWorkspaceAuditLogs(workspaceID, request)
}

func (s *WorkspaceService) GetWorkspaceByID(
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	return s.workspaceRepository.GetWorkspaceByID(workspaceID)
}
