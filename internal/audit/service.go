package audit

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/jkorir/maziwa/pkg/apperr"
)

// AlertSink fans suspicious-activity alerts out to administrators
type AlertSink interface {
	NotifyAdmins(ctx context.Context, activityType, message string, actorID *int64, subjectID *int64)
}

// Service is the append-only audit sink. Every write is fire-and-forget:
// a failed audit insert must never fail the operation being audited.
type Service struct {
	repo   *Repository
	alerts AlertSink
	log    *zap.Logger
}

// NewService creates a new audit service
func NewService(repo *Repository, alerts AlertSink, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, alerts: alerts, log: log}
}

// Append records one state change against a table row
func (s *Service) Append(ctx context.Context, tableName string, recordID *int64, operation string, actorID int64, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Warn("failed to marshal audit payload",
			zap.String("table", tableName),
			zap.String("operation", operation),
			zap.Error(err))
		return
	}

	if err := s.repo.Insert(ctx, tableName, recordID, operation, actorID, data); err != nil {
		s.log.Warn("failed to write audit entry",
			zap.String("table", tableName),
			zap.String("operation", operation),
			zap.Error(err))
	}
}

// LogSuspiciousActivity records a fraud signal and alerts administrators.
// Advisory checks feed through here; none of them fail the caller.
func (s *Service) LogSuspiciousActivity(ctx context.Context, activityType string, details map[string]interface{}, actorID int64, subjectID *int64) {
	payload := map[string]interface{}{
		"activity_type": activityType,
		"details":       details,
	}
	s.Append(ctx, TableSuspiciousActivities, subjectID, OpSuspiciousActivity, actorID, payload)

	if s.alerts != nil {
		message := "Suspicious activity detected: " + activityType
		s.alerts.NotifyAdmins(ctx, activityType, message, &actorID, subjectID)
	}
}

// GetTrail returns the audit trail for one record, oldest first
func (s *Service) GetTrail(ctx context.Context, tableName string, recordID int64) ([]*Entry, error) {
	entries, err := s.repo.ListByRecord(ctx, tableName, recordID)
	if err != nil {
		return nil, apperr.Database("failed to get audit trail", err)
	}
	return entries, nil
}

// RecentSuspiciousActivities returns the latest fraud signals for dashboards
func (s *Service) RecentSuspiciousActivities(ctx context.Context, limit int) ([]*Entry, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	entries, err := s.repo.ListByTable(ctx, TableSuspiciousActivities, limit)
	if err != nil {
		return nil, apperr.Database("failed to list suspicious activities", err)
	}
	return entries, nil
}
