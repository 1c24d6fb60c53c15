package notification

import (
	"context"
	"log/slog"

	"github.com/workline-hr/hrops-backend/internal/domain/notification"
)

const defaultListLimit = 50

type service struct {
	notification.NotificationRepository
}

func NewService(repository notification.NotificationRepository) notification.Service {
	return &service{NotificationRepository: repository}
}

// Queue implements notification.Service. Delivery failures are logged and
// swallowed so the triggering operation never fails on a notification.
func (s *service) Queue(ctx context.Context, n notification.Notification) {
	if _, err := s.NotificationRepository.Create(ctx, n); err != nil {
		slog.Error("failed to queue notification",
			"recipient_id", n.RecipientID,
			"type", n.Type,
			"error", err,
		)
	}
}

// ListForRecipient implements notification.Service.
func (s *service) ListForRecipient(ctx context.Context, recipientID string, limit int) ([]notification.Notification, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return s.NotificationRepository.ListByRecipient(ctx, recipientID, limit)
}

// MarkRead implements notification.Service.
func (s *service) MarkRead(ctx context.Context, id, recipientID string) error {
	return s.NotificationRepository.MarkRead(ctx, id, recipientID)
}
