package boards_services

import (
	audit_logs "teamboards-backend/internal/features/audit_logs"
	boards_repositories "teamboards-backend/internal/features/boards/repositories"
	users_services "teamboards-backend/internal/features/users/services"
	workspaces_services "teamboards-backend/internal/features/workspaces/services"
)

var boardService = &BoardService{
	boards_repositories.GetBoardRepository(),
	boards_repositories.GetBoardMemberRepository(),
	workspaces_services.GetWorkspaceService(),
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
}

func GetBoardService() *BoardService {
	return boardService
}
