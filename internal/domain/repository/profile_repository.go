package repository

import (
	"context"

	"findmymechanic-service/internal/domain/entity"
)

// ProfileRepository defines the storage contract for profile records.
type ProfileRepository interface {
	// Insert stores a new profile. When the ID is empty an identifier is
	// generated and written back to the entity.
	Insert(ctx context.Context, profile *entity.Profile) error

	// FindByID returns the profile or apperrors.ErrNotFound.
	FindByID(ctx context.Context, id string) (*entity.Profile, error)

	// Update merges the non-nil fields of upd into the stored record and
	// returns the updated profile. ID and Role are never touched.
	Update(ctx context.Context, id string, upd entity.ProfileUpdate) (*entity.Profile, error)

	// ListMechanics returns a snapshot of all mechanic profiles, in stable
	// iteration order for a fixed snapshot.
	ListMechanics(ctx context.Context) ([]*entity.Profile, error)

	// SetAvailability toggles a mechanic's availability. Returns true when
	// the stored value actually changed (false makes the call a no-op).
	SetAvailability(ctx context.Context, mechanicID string, available bool) (bool, error)
}
