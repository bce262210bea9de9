package repository

import (
	"context"
	"time"

	"findmymechanic-service/internal/domain/entity"
)

// BookingRepository defines the storage contract for booking records.
// Bookings are append-then-decide: there is no delete.
type BookingRepository interface {
	// Insert stores a new booking, generating an ID when empty.
	Insert(ctx context.Context, booking *entity.Booking) error

	// FindByID returns the booking or apperrors.ErrNotFound.
	FindByID(ctx context.Context, id string) (*entity.Booking, error)

	// FindByIdempotencyKey returns the booking created under the given key,
	// or apperrors.ErrNotFound when no such booking exists.
	FindByIdempotencyKey(ctx context.Context, key string) (*entity.Booking, error)

	// DecideIfPending atomically moves the booking to the given terminal
	// status, but only if its current status is Pending (compare-and-swap).
	// Returns apperrors.ErrConflict when the booking exists but is no longer
	// Pending, apperrors.ErrNotFound when it does not exist. On success the
	// returned booking reflects the applied transition.
	DecideIfPending(ctx context.Context, id, status string, decidedAt time.Time) (*entity.Booking, error)

	// ListByUser returns every booking created by the user, unordered.
	ListByUser(ctx context.Context, userID string) ([]*entity.Booking, error)

	// ListByMechanic returns every booking addressed to the mechanic, unordered.
	ListByMechanic(ctx context.Context, mechanicID string) ([]*entity.Booking, error)
}
