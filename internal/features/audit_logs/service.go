package audit_logs

import (
	"fmt"
	"log/slog"
	"time"

	"teamboards-backend/internal/config"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const (
	defaultLogsLimit = 100
	maxLogsLimit     = 500
)

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
	logger             *slog.Logger
}

// WriteAuditLog records an audit entry. Failures are logged and
// swallowed so audit writes never fail the triggering operation.
func (s *AuditLogService) WriteAuditLog(message string, userID, workspaceID *uuid.UUID) {
	log := &AuditLog{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Message:     message,
	}

	if err := s.auditLogRepository.CreateAuditLog(log); err != nil {
		s.logger.Error("failed to write audit log", "message", message, "error", err)
	}
}

func (s *AuditLogService) GetWorkspaceAuditLogs(
	workspaceID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	limit := request.Limit
	if limit <= 0 {
		limit = defaultLogsLimit
	}
	if limit > maxLogsLimit {
		limit = maxLogsLimit
	}

	offset := request.Offset
	if offset < 0 {
		offset = 0
	}

	logs, total, err := s.auditLogRepository.GetWorkspaceAuditLogs(
		workspaceID,
		limit,
		offset,
		request.BeforeDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit logs: %w", err)
	}

	return &GetAuditLogsResponse{
		AuditLogs: logs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

// RemoveExpiredAuditLogs deletes logs older than the configured
// retention period.
func (s *AuditLogService) RemoveExpiredAuditLogs() {
	retentionDays := config.GetEnv().AuditLogRetentionDays
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	removed, err := s.auditLogRepository.DeleteAuditLogsBefore(cutoff)
	if err != nil {
		s.logger.Error("failed to remove expired audit logs", "error", err)
		return
	}

	if removed > 0 {
		s.logger.Info("removed expired audit logs", "count", removed, "cutoff", cutoff)
	}
}

// StartRetentionScheduler sweeps expired logs once a day.
func (s *AuditLogService) StartRetentionScheduler() *cron.Cron {
	scheduler := cron.New()

	if _, err := scheduler.AddFunc("@daily", s.RemoveExpiredAuditLogs); err != nil {
		s.logger.Error("failed to schedule audit log retention sweep", "error", err)
		return scheduler
	}

	scheduler.Start()

	return scheduler
}
