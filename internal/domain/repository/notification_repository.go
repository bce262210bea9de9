package repository

import (
	"context"

	"findmymechanic-service/internal/domain/entity"
)

// NotificationRepository defines the storage contract for the per-user
// notification feed. Notifications are append-only apart from the read flag.
type NotificationRepository interface {
	// Insert stores a new notification, generating an ID when empty.
	Insert(ctx context.Context, notification *entity.Notification) error

	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error)

	// MarkRead sets the read flag on a notification owned by userID.
	// Returns apperrors.ErrNotFound when the notification does not exist
	// or belongs to another user.
	MarkRead(ctx context.Context, id, userID string) error
}
