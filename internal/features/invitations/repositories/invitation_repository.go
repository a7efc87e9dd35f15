package invitations_repositories

import (
	"errors"
	"time"

	invitations_dto "teamboards-backend/internal/features/invitations/dto"
	invitations_enums "teamboards-backend/internal/features/invitations/enums"
	invitations_models "teamboards-backend/internal/features/invitations/models"
	"teamboards-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationRepository struct{}

func (r *InvitationRepository) CreateInvitation(
	invitation *invitations_models.WorkspaceInvitation,
) error {
	if invitation.ID == uuid.Nil {
		invitation.ID = uuid.New()
	}

	if invitation.CreatedAt.IsZero() {
		invitation.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(invitation).Error
}

func (r *InvitationRepository) GetInvitationByID(
	invitationID uuid.UUID,
) (*invitations_models.WorkspaceInvitation, error) {
	var invitation invitations_models.WorkspaceInvitation

	if err := storage.GetDb().Where("id = ?", invitationID).First(&invitation).Error; err != nil {
		return nil, err
	}

	return &invitation, nil
}

func (r *InvitationRepository) GetPendingInvitation(
	workspaceID uuid.UUID,
	email string,
) (*invitations_models.WorkspaceInvitation, error) {
	var invitation invitations_models.WorkspaceInvitation

	err := storage.GetDb().
		Where(
			"workspace_id = ? AND invited_email = ? AND status = ?",
			workspaceID,
			email,
			invitations_enums.InvitationStatusPending,
		).
		First(&invitation).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &invitation, nil
}

func (r *InvitationRepository) GetPendingInvitationsByEmail(
	email string,
) ([]*invitations_dto.InvitationResponseDTO, error) {
	var invitations []*invitations_dto.InvitationResponseDTO

	err := storage.GetDb().
		Table("workspace_invitations wi").
		Select(
			"wi.id, wi.workspace_id, w.name as workspace_name, wi.invited_email, " +
				"u.email as invited_by, wi.role, wi.status, wi.created_at",
		).
		Joins("JOIN workspaces w ON wi.workspace_id = w.id").
		Joins("JOIN users u ON wi.invited_by_user_id = u.id").
		Where("wi.invited_email = ? AND wi.status = ?",
			email, invitations_enums.InvitationStatusPending).
		Order("wi.created_at DESC").
		Scan(&invitations).Error

	return invitations, err
}

func (r *InvitationRepository) GetWorkspaceInvitations(
	workspaceID uuid.UUID,
) ([]*invitations_dto.InvitationResponseDTO, error) {
	var invitations []*invitations_dto.InvitationResponseDTO

	err := storage.GetDb().
		Table("workspace_invitations wi").
		Select(
			"wi.id, wi.workspace_id, w.name as workspace_name, wi.invited_email, " +
				"u.email as invited_by, wi.role, wi.status, wi.created_at",
		).
		Joins("JOIN workspaces w ON wi.workspace_id = w.id").
		Joins("JOIN users u ON wi.invited_by_user_id = u.id").
		Where("wi.workspace_id = ?", workspaceID).
		Order("wi.created_at DESC").
		Scan(&invitations).Error

	return invitations, err
}

func (r *InvitationRepository) UpdateInvitationStatus(
	invitationID uuid.UUID,
	status invitations_enums.InvitationStatus,
) error {
	return r.UpdateInvitationStatusTx(storage.GetDb(), invitationID, status)
}

func (r *InvitationRepository) UpdateInvitationStatusTx(
	db *gorm.DB,
	invitationID uuid.UUID,
	status invitations_enums.InvitationStatus,
) error {
	return db.
		Model(&invitations_models.WorkspaceInvitation{}).
		Where("id = ?", invitationID).
		Update("status", status).Error
}
