package notification

import "context"

type NotificationRepository interface {
	Create(ctx context.Context, n Notification) (Notification, error)

	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]Notification, error)

	MarkRead(ctx context.Context, id, recipientID string) error
}
