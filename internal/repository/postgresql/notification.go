package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workline-hr/hrops-backend/internal/domain/notification"
	"github.com/workline-hr/hrops-backend/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

// Create implements notification.NotificationRepository.
func (n *notificationRepositoryImpl) Create(ctx context.Context, notif notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, n.db)

	data, err := json.Marshal(notif.Data)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to marshal notification data: %w", err)
	}

	query := `
		INSERT INTO notifications (id, recipient_id, notification_type, title, message, data)
		VALUES (uuidv7(), $1, $2, $3, $4, $5)
		RETURNING id, recipient_id, notification_type, title, message, data, is_read, created_at
	`

	var created notification.Notification
	var rawData []byte
	err = q.QueryRow(ctx, query,
		notif.RecipientID, notif.Type, notif.Title, notif.Message, data,
	).Scan(
		&created.ID, &created.RecipientID, &created.Type, &created.Title,
		&created.Message, &rawData, &created.IsRead, &created.CreatedAt,
	)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	if len(rawData) > 0 {
		if err := json.Unmarshal(rawData, &created.Data); err != nil {
			return notification.Notification{}, fmt.Errorf("failed to unmarshal notification data: %w", err)
		}
	}

	return created, nil
}

// ListByRecipient implements notification.NotificationRepository.
func (n *notificationRepositoryImpl) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, n.db)

	query := `
		SELECT id, recipient_id, notification_type, title, message, data, is_read, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, recipientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var notif notification.Notification
		var rawData []byte
		err := rows.Scan(
			&notif.ID, &notif.RecipientID, &notif.Type, &notif.Title,
			&notif.Message, &rawData, &notif.IsRead, &notif.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if len(rawData) > 0 {
			if err := json.Unmarshal(rawData, &notif.Data); err != nil {
				return nil, fmt.Errorf("failed to unmarshal notification data: %w", err)
			}
		}
		notifications = append(notifications, notif)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkRead implements notification.NotificationRepository.
func (n *notificationRepositoryImpl) MarkRead(ctx context.Context, id, recipientID string) error {
	q := GetQuerier(ctx, n.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND recipient_id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, recipientID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notification.ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification %s read: %w", id, err)
	}

	return nil
}
