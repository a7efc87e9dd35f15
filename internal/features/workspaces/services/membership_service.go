package workspaces_services

import (
	"errors"
	"fmt"

	audit_logs "teamboards-backend/internal/features/audit_logs"
	users_enums "teamboards-backend/internal/features/users/enums"
	users_models "teamboards-backend/internal/features/users/models"
	users_services "teamboards-backend/internal/features/users/services"
	workspaces_dto "teamboards-backend/internal/features/workspaces/dto"
	workspaces_interfaces "teamboards-backend/internal/features/workspaces/interfaces"
	workspaces_models "teamboards-backend/internal/features/workspaces/models"
	workspaces_repositories "teamboards-backend/internal/features/workspaces/repositories"
	"teamboards-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipService struct {
	membershipRepository       *workspaces_repositories.MembershipRepository
	userService                *users_services.UserService
	auditLogService            *audit_logs.AuditLogService
	workspaceService           *WorkspaceService
	membershipRemovalListeners []workspaces_interfaces.MembershipRemovalListener
}

func (s *MembershipService) AddMembershipRemovalListener(
	listener workspaces_interfaces.MembershipRemovalListener,
) {
	s.membershipRemovalListeners = append(s.membershipRemovalListeners, listener)
}

func (s *MembershipService) GetMembers(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*workspaces_dto.GetMembersResponseDTO, error) {
	canView, _, err := s.workspaceService.CanUserAccessWorkspace(workspaceID, user)
	if err != nil {
		return nil, err
	}
	if !canView {
		return nil, errors.New("insufficient permissions to view workspace members")
	}

	members, err := s.membershipRepository.GetWorkspaceMembers(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace members: %w", err)
	}

	membersList := make([]workspaces_dto.WorkspaceMemberResponseDTO, len(members))
	for i, member := range members {
		membersList[i] = *member
	}

	return &workspaces_dto.GetMembersResponseDTO{
		Members: membersList,
	}, nil
}

func (s *MembershipService) AddMember(
	workspaceID uuid.UUID,
	request *workspaces_dto.AddMemberRequestDTO,
	addedBy *users_models.User,
) error {
	canManage, err := s.workspaceService.CanUserManageWorkspace(workspaceID, addedBy)
	if err != nil {
		return err
	}
	if !canManage {
		return errors.New("only workspace owner can manage members")
	}

	targetUser, err := s.userService.GetUserByEmail(request.Email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if targetUser == nil {
		return errors.New("user with this email does not exist")
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndWorkspace(
		targetUser.ID,
		workspaceID,
	)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if existingMembership != nil {
		return errors.New("user is already a member of this workspace")
	}

	membership := &workspaces_models.WorkspaceMembership{
		UserID:      targetUser.ID,
		WorkspaceID: workspaceID,
		Role:        request.Role,
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		// The unique constraint catches concurrent additions the
		// pre-check above cannot see.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("user is already a member of this workspace")
		}
		return fmt.Errorf("failed to add member: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("User added to workspace: %s as %s", targetUser.Email, request.Role),
		&addedBy.ID,
		&workspaceID,
	)

	return nil
}

func (s *MembershipService) ChangeMemberRole(
	workspaceID uuid.UUID,
	memberUserID uuid.UUID,
	request *workspaces_dto.ChangeMemberRoleRequestDTO,
	changedBy *users_models.User,
) error {
	canManage, err := s.workspaceService.CanUserManageWorkspace(workspaceID, changedBy)
	if err != nil {
		return err
	}
	if !canManage {
		return errors.New("only workspace owner can manage members")
	}

	if memberUserID == changedBy.ID {
		return errors.New("cannot change your own role")
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndWorkspace(
		memberUserID,
		workspaceID,
	)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if existingMembership == nil {
		return errors.New("user is not a member of this workspace")
	}

	if existingMembership.Role == request.Role {
		return nil
	}

	if existingMembership.Role == users_enums.WorkspaceRoleOwner {
		ownerCount, err := s.membershipRepository.CountWorkspaceOwners(workspaceID)
		if err != nil {
			return fmt.Errorf("failed to count workspace owners: %w", err)
		}
		if ownerCount <= 1 {
			return errors.New("workspace must have at least one owner")
		}
	}

	targetUser, err := s.userService.GetUserByID(memberUserID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := s.membershipRepository.UpdateMemberRole(memberUserID, workspaceID, request.Role); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf(
			"Member role changed: %s from %s to %s",
			targetUser.Email,
			existingMembership.Role,
			request.Role,
		),
		&changedBy.ID,
		&workspaceID,
	)

	return nil
}

func (s *MembershipService) RemoveMember(
	workspaceID uuid.UUID,
	memberUserID uuid.UUID,
	removedBy *users_models.User,
) error {
	canManage, err := s.workspaceService.CanUserManageWorkspace(workspaceID, removedBy)
	if err != nil {
		return err
	}
	if !canManage {
		return errors.New("only workspace owner can remove members")
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndWorkspace(
		memberUserID,
		workspaceID,
	)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if existingMembership == nil {
		return errors.New("user is not a member of this workspace")
	}

	if existingMembership.Role == users_enums.WorkspaceRoleOwner {
		return errors.New("cannot remove workspace owner, demote them first")
	}

	targetUser, err := s.userService.GetUserByID(memberUserID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := s.removeMembershipWithListeners(workspaceID, memberUserID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Member removed from workspace: %s", targetUser.Email),
		&removedBy.ID,
		&workspaceID,
	)

	return nil
}

func (s *MembershipService) LeaveWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
) error {
	existingMembership, err := s.membershipRepository.GetMembershipByUserAndWorkspace(
		user.ID,
		workspaceID,
	)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if existingMembership == nil {
		return errors.New("user is not a member of this workspace")
	}

	if existingMembership.Role == users_enums.WorkspaceRoleOwner {
		ownerCount, err := s.membershipRepository.CountWorkspaceOwners(workspaceID)
		if err != nil {
			return fmt.Errorf("failed to count workspace owners: %w", err)
		}
		if ownerCount <= 1 {
			return errors.New("workspace must have at least one owner")
		}
	}

	if err := s.removeMembershipWithListeners(workspaceID, user.ID); err != nil {
		return fmt.Errorf("failed to leave workspace: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Member left workspace: %s", user.Email),
		&user.ID,
		&workspaceID,
	)

	return nil
}

// removeMembershipWithListeners deletes the membership and lets
// listeners drop dependent records in the same transaction.
func (s *MembershipService) removeMembershipWithListeners(
	workspaceID, userID uuid.UUID,
) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		for _, listener := range s.membershipRemovalListeners {
			if err := listener.OnMembershipRemoved(tx, workspaceID, userID); err != nil {
				return err
			}
		}

		return s.membershipRepository.RemoveMemberTx(tx, userID, workspaceID)
	})
}
