package audit_logs

import (
	users_services "teamboards-backend/internal/features/users/services"
	"teamboards-backend/internal/util/logger"
)

var auditLogService = &AuditLogService{
	&AuditLogRepository{},
	logger.GetLogger(),
}

func GetAuditLogService() *AuditLogService {
	return auditLogService
}

// SetupDependencies wires the audit log writer into services that
// cannot import this package directly.
func SetupDependencies() {
	users_services.GetUserService().SetAuditLogWriter(auditLogService)
}
