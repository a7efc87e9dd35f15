package workspaces_services

import (
	audit_logs "teamboards-backend/internal/features/audit_logs"
	users_services "teamboards-backend/internal/features/users/services"
	workspaces_interfaces "teamboards-backend/internal/features/workspaces/interfaces"
	workspaces_repositories "teamboards-backend/internal/features/workspaces/repositories"
)

var workspaceRepository = &workspaces_repositories.WorkspaceRepository{}
var membershipRepository = &workspaces_repositories.MembershipRepository{}

var workspaceService = &WorkspaceService{
	workspaceRepository,
	membershipRepository,
	audit_logs.GetAuditLogService(),
	[]workspaces_interfaces.WorkspaceDeletionListener{},
}

var membershipService = &MembershipService{
	membershipRepository,
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
	workspaceService,
	[]workspaces_interfaces.MembershipRemovalListener{},
}

func GetWorkspaceService() *WorkspaceService {
	return workspaceService
}

func GetMembershipService() *MembershipService {
	return membershipService
}
