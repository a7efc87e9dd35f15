package invitations_services

import (
	"errors"
	"fmt"
	"time"

	audit_logs "teamboards-backend/internal/features/audit_logs"
	invitations_dto "teamboards-backend/internal/features/invitations/dto"
	invitations_enums "teamboards-backend/internal/features/invitations/enums"
	invitations_models "teamboards-backend/internal/features/invitations/models"
	invitations_repositories "teamboards-backend/internal/features/invitations/repositories"
	users_models "teamboards-backend/internal/features/users/models"
	users_services "teamboards-backend/internal/features/users/services"
	workspaces_models "teamboards-backend/internal/features/workspaces/models"
	workspaces_repositories "teamboards-backend/internal/features/workspaces/repositories"
	workspaces_services "teamboards-backend/internal/features/workspaces/services"
	"teamboards-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationService struct {
	invitationRepository *invitations_repositories.InvitationRepository
	membershipRepository *workspaces_repositories.MembershipRepository
	workspaceService     *workspaces_services.WorkspaceService
	userService          *users_services.UserService
	auditLogService      *audit_logs.AuditLogService
}

func (s *InvitationService) CreateInvitation(
	workspaceID uuid.UUID,
	request *invitations_dto.CreateInvitationRequestDTO,
	invitedBy *users_models.User,
) (*invitations_models.WorkspaceInvitation, error) {
	canManage, err := s.workspaceService.CanUserManageWorkspace(workspaceID, invitedBy)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, errors.New("only workspace owner can invite users")
	}

	targetUser, err := s.userService.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if targetUser != nil {
		membership, err := s.membershipRepository.GetMembershipByUserAndWorkspace(
			targetUser.ID,
			workspaceID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
		if membership != nil {
			return nil, errors.New("user is already a member of this workspace")
		}
	}

	pending, err := s.invitationRepository.GetPendingInvitation(workspaceID, request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending invitations: %w", err)
	}
	if pending != nil {
		return nil, errors.New("a pending invitation already exists for this email")
	}

	// Unregistered invitees get a placeholder account so the
	// invitation is waiting for them once they sign up.
	if targetUser == nil {
		if _, err := s.userService.CreateInvitedUser(request.Email); err != nil {
			return nil, err
		}
	}

	invitation := &invitations_models.WorkspaceInvitation{
		ID:              uuid.New(),
		WorkspaceID:     workspaceID,
		InvitedEmail:    request.Email,
		InvitedByUserID: invitedBy.ID,
		Role:            request.Role,
		Status:          invitations_enums.InvitationStatusPending,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.invitationRepository.CreateInvitation(invitation); err != nil {
		// The partial unique index catches concurrent invites the
		// pre-check above cannot see.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("a pending invitation already exists for this email")
		}
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("User invited to workspace: %s as %s", request.Email, request.Role),
		&invitedBy.ID,
		&workspaceID,
	)

	return invitation, nil
}

// GetMyInvitations returns pending invitations addressed to the
// calling user's email.
func (s *InvitationService) GetMyInvitations(
	user *users_models.User,
) (*invitations_dto.ListInvitationsResponseDTO, error) {
	invitations, err := s.invitationRepository.GetPendingInvitationsByEmail(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitations: %w", err)
	}

	return &invitations_dto.ListInvitationsResponseDTO{
		Invitations: invitations,
	}, nil
}

func (s *InvitationService) GetWorkspaceInvitations(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*invitations_dto.ListInvitationsResponseDTO, error) {
	canManage, err := s.workspaceService.CanUserManageWorkspace(workspaceID, user)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, errors.New("only workspace owner can view invitations")
	}

	invitations, err := s.invitationRepository.GetWorkspaceInvitations(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace invitations: %w", err)
	}

	return &invitations_dto.ListInvitationsResponseDTO{
		Invitations: invitations,
	}, nil
}

func (s *InvitationService) AcceptInvitation(
	invitationID uuid.UUID,
	user *users_models.User,
) error {
	invitation, err := s.getAddressedInvitation(invitationID, user)
	if err != nil {
		return err
	}

	membership := &workspaces_models.WorkspaceMembership{
		UserID:      user.ID,
		WorkspaceID: invitation.WorkspaceID,
		Role:        invitation.Role,
	}

	// A failed membership insert leaves the invitation pending.
	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.invitationRepository.UpdateInvitationStatusTx(
			tx,
			invitationID,
			invitations_enums.InvitationStatusAccepted,
		); err != nil {
			return err
		}

		return s.membershipRepository.CreateMembershipTx(tx, membership)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("user is already a member of this workspace")
		}
		return fmt.Errorf("failed to accept invitation: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Invitation accepted: %s joined as %s", user.Email, invitation.Role),
		&user.ID,
		&invitation.WorkspaceID,
	)

	return nil
}

func (s *InvitationService) DeclineInvitation(
	invitationID uuid.UUID,
	user *users_models.User,
) error {
	invitation, err := s.getAddressedInvitation(invitationID, user)
	if err != nil {
		return err
	}

	if err := s.invitationRepository.UpdateInvitationStatus(
		invitationID,
		invitations_enums.InvitationStatusRejected,
	); err != nil {
		return fmt.Errorf("failed to decline invitation: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Invitation declined: %s", user.Email),
		&user.ID,
		&invitation.WorkspaceID,
	)

	return nil
}

// getAddressedInvitation loads a pending invitation and verifies it is
// addressed to the calling user.
func (s *InvitationService) getAddressedInvitation(
	invitationID uuid.UUID,
	user *users_models.User,
) (*invitations_models.WorkspaceInvitation, error) {
	invitation, err := s.invitationRepository.GetInvitationByID(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invitation not found")
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	if invitation.InvitedEmail != user.Email {
		return nil, errors.New("invitation is addressed to another user")
	}

	if !invitation.IsPending() {
		return nil, errors.New("invitation has already been resolved")
	}

	return invitation, nil
}
