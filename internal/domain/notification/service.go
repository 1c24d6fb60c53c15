package notification

import "context"

// Service is the in-app notification surface consumed by other services.
// Queue is fire-and-forget; a failed delivery is logged, never propagated to
// the operation that triggered it.
type Service interface {
	Queue(ctx context.Context, n Notification)

	ListForRecipient(ctx context.Context, recipientID string, limit int) ([]Notification, error)

	MarkRead(ctx context.Context, id, recipientID string) error
}
