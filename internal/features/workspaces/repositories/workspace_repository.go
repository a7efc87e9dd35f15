package workspaces_repositories

import (
	"time"

	workspaces_models "teamboards-backend/internal/features/workspaces/models"
	"teamboards-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepository struct{}

func (r *WorkspaceRepository) CreateWorkspace(workspace *workspaces_models.Workspace) error {
	return r.CreateWorkspaceTx(storage.GetDb(), workspace)
}

func (r *WorkspaceRepository) CreateWorkspaceTx(
	db *gorm.DB,
	workspace *workspaces_models.Workspace,
) error {
	if workspace.ID == uuid.Nil {
		workspace.ID = uuid.New()
	}

	if workspace.CreatedAt.IsZero() {
		workspace.CreatedAt = time.Now().UTC()
	}

	return db.Create(workspace).Error
}

func (r *WorkspaceRepository) GetWorkspaceByID(
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	var workspace workspaces_models.Workspace

	if err := storage.GetDb().Where("id = ?", workspaceID).First(&workspace).Error; err != nil {
		return nil, err
	}

	return &workspace, nil
}

func (r *WorkspaceRepository) UpdateWorkspace(workspace *workspaces_models.Workspace) error {
	return storage.GetDb().Save(workspace).Error
}

func (r *WorkspaceRepository) DeleteWorkspaceTx(db *gorm.DB, workspaceID uuid.UUID) error {
	return db.Delete(&workspaces_models.Workspace{}, workspaceID).Error
}
