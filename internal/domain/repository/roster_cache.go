package repository

import (
	"context"
	"time"

	"findmymechanic-service/internal/domain/entity"
)

// RosterCache caches the available-mechanic roster between match queries.
// A cache is best effort: misses and errors fall through to the profile
// repository, and writers invalidate rather than update.
type RosterCache interface {
	// GetRoster returns the cached roster and true on a hit.
	GetRoster(ctx context.Context) ([]*entity.Profile, bool)

	// SetRoster stores the roster with the given TTL.
	SetRoster(ctx context.Context, roster []*entity.Profile, ttl time.Duration)

	// Invalidate drops the cached roster.
	Invalidate(ctx context.Context)
}
