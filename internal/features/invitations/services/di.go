package invitations_services

import (
	audit_logs "teamboards-backend/internal/features/audit_logs"
	invitations_repositories "teamboards-backend/internal/features/invitations/repositories"
	users_services "teamboards-backend/internal/features/users/services"
	workspaces_repositories "teamboards-backend/internal/features/workspaces/repositories"
	workspaces_services "teamboards-backend/internal/features/workspaces/services"
)

var invitationService = &InvitationService{
	invitations_repositories.GetInvitationRepository(),
	&workspaces_repositories.MembershipRepository{},
	workspaces_services.GetWorkspaceService(),
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
}

func GetInvitationService() *InvitationService {
	return invitationService
}
