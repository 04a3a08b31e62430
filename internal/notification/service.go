package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jkorir/maziwa/pkg/apperr"
)

// Common errors
var (
	ErrNotificationNotFound = apperr.NotFound("notification not found")
	ErrNotRecipient         = apperr.Validation("not the recipient of this notification")
)

// AdminSource lists the staff members that receive security alerts
type AdminSource interface {
	ListAdminIDs(ctx context.Context) ([]int64, error)
}

// Service handles notification business logic
type Service struct {
	repo   *Repository
	admins AdminSource
	log    *zap.Logger
}

// NewService creates a new notification service
func NewService(repo *Repository, admins AdminSource, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, admins: admins, log: log}
}

// Create creates a new notification
func (s *Service) Create(ctx context.Context, recipientID int64, title, message, category string, entityType *string, entityID *int64) (*Notification, error) {
	n, err := s.repo.Create(ctx, recipientID, title, message, category, entityType, entityID)
	if err != nil {
		return nil, apperr.Database("failed to create notification", err)
	}
	return n, nil
}

// NotifyAdmins fans a message out to every active administrator.
// Best-effort: delivery failures are logged as warnings, never returned.
func (s *Service) NotifyAdmins(ctx context.Context, activityType, message string, actorID *int64, subjectID *int64) {
	adminIDs, err := s.admins.ListAdminIDs(ctx)
	if err != nil {
		s.log.Warn("failed to list admins for alert fan-out",
			zap.String("activity_type", activityType),
			zap.Error(err))
		return
	}

	title := fmt.Sprintf("Security alert: %s", activityType)
	entityType := "collection"
	for _, adminID := range adminIDs {
		if _, err := s.repo.Create(ctx, adminID, title, message, "security", &entityType, subjectID); err != nil {
			s.log.Warn("failed to deliver admin alert",
				zap.Int64("admin_id", adminID),
				zap.String("activity_type", activityType),
				zap.Error(err))
		}
	}
}

// NotifyPaymentProcessed tells a collector their payment went out
func (s *Service) NotifyPaymentProcessed(ctx context.Context, collectorID int64, amount float64, paymentID int64) {
	message := fmt.Sprintf("Your payment of KES %.2f has been processed", amount)
	entityType := "payment"
	if _, err := s.repo.Create(ctx, collectorID, "Payment processed", message, "payment", &entityType, &paymentID); err != nil {
		s.log.Warn("failed to deliver payment notification",
			zap.Int64("collector_id", collectorID),
			zap.Error(err))
	}
}

// ListByRecipientID retrieves notifications for a staff member
func (s *Service) ListByRecipientID(ctx context.Context, recipientID int64, page, perPage int, unreadOnly bool) ([]*Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	notifications, total, err := s.repo.ListByRecipientID(ctx, recipientID, perPage, offset, unreadOnly)
	if err != nil {
		return nil, 0, apperr.Database("failed to list notifications", err)
	}
	return notifications, total, nil
}

// MarkAsRead marks a notification as read
func (s *Service) MarkAsRead(ctx context.Context, id, recipientID int64) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperr.Database("failed to get notification", err)
	}
	if n == nil {
		return ErrNotificationNotFound
	}
	if n.RecipientID != recipientID {
		return ErrNotRecipient
	}

	if err := s.repo.MarkAsRead(ctx, id); err != nil {
		return apperr.Database("failed to mark notification as read", err)
	}
	return nil
}

// MarkAllAsRead marks all notifications as read for a staff member
func (s *Service) MarkAllAsRead(ctx context.Context, recipientID int64) error {
	if err := s.repo.MarkAllAsRead(ctx, recipientID); err != nil {
		return apperr.Database("failed to mark notifications as read", err)
	}
	return nil
}

// GetUnreadCount returns the count of unread notifications
func (s *Service) GetUnreadCount(ctx context.Context, recipientID int64) (int, error) {
	count, err := s.repo.GetUnreadCount(ctx, recipientID)
	if err != nil {
		return 0, apperr.Database("failed to count unread notifications", err)
	}
	return count, nil
}
