package boards

import (
	boards_services "teamboards-backend/internal/features/boards/services"
	workspaces_services "teamboards-backend/internal/features/workspaces/services"
)

// SetupDependencies registers board cleanup listeners with the
// workspaces feature.
func SetupDependencies() {
	boardService := boards_services.GetBoardService()

	workspaces_services.GetWorkspaceService().AddWorkspaceDeletionListener(boardService)
	workspaces_services.GetMembershipService().AddMembershipRemovalListener(boardService)
}
