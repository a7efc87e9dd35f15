package audit_logs

import (
	"time"

	"teamboards-backend/internal/storage"

	"github.com/google/uuid"
)

type AuditLogRepository struct{}

func (r *AuditLogRepository) CreateAuditLog(log *AuditLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(log).Error
}

func (r *AuditLogRepository) GetWorkspaceAuditLogs(
	workspaceID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, int64, error) {
	countQuery := storage.GetDb().
		Table("audit_logs al").
		Where("al.workspace_id = ?", workspaceID)

	if beforeDate != nil {
		countQuery = countQuery.Where("al.created_at < ?", *beforeDate)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := storage.GetDb().
		Table("audit_logs al").
		Where("al.workspace_id = ?", workspaceID)

	if beforeDate != nil {
		query = query.Where("al.created_at < ?", *beforeDate)
	}

	var logs []*AuditLogDTO
	err := query.
		Select(
			"al.id, al.user_id, al.workspace_id, al.message, al.created_at, " +
				"u.email as user_email, u.name as user_name, w.name as workspace_name",
		).
		Joins("LEFT JOIN users u ON al.user_id = u.id").
		Joins("LEFT JOIN workspaces w ON al.workspace_id = w.id").
		Order("al.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&logs).Error

	return logs, total, err
}

func (r *AuditLogRepository) DeleteAuditLogsBefore(cutoff time.Time) (int64, error) {
	result := storage.GetDb().
		Where("created_at < ?", cutoff).
		Delete(&AuditLog{})

	return result.RowsAffected, result.Error
}
