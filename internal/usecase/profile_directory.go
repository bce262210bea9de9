package usecase

import (
	"context"
	"strings"
	"time"

	"findmymechanic-service/internal/domain/apperrors"
	"findmymechanic-service/internal/domain/entity"
	"findmymechanic-service/internal/domain/repository"
	"findmymechanic-service/pkg/logger"
)

// ProfileDirectory owns user and mechanic profile records.
type ProfileDirectory struct {
	profileRepo repository.ProfileRepository
	rosterCache repository.RosterCache
	logger      logger.Logger
}

// NewProfileDirectory creates a new profile directory. rosterCache may be
// nil when no cache is configured.
func NewProfileDirectory(
	profileRepo repository.ProfileRepository,
	rosterCache repository.RosterCache,
	logger logger.Logger,
) *ProfileDirectory {
	return &ProfileDirectory{
		profileRepo: profileRepo,
		rosterCache: rosterCache,
		logger:      logger,
	}
}

// CreateProfile validates and stores a new profile. The ID may be supplied
// by the identity collaborator; when empty the repository generates one.
func (pd *ProfileDirectory) CreateProfile(ctx context.Context, profile *entity.Profile) (*entity.Profile, error) {
	if profile.Role != entity.RoleUser && profile.Role != entity.RoleMechanic {
		return nil, apperrors.Validationf("role must be %q or %q", entity.RoleUser, entity.RoleMechanic)
	}
	if strings.TrimSpace(profile.DisplayName) == "" ||
		strings.TrimSpace(profile.Email) == "" ||
		strings.TrimSpace(profile.Phone) == "" {
		return nil, apperrors.Validationf("displayName, email and phone are required")
	}

	if profile.Role == entity.RoleMechanic {
		// Mechanics register as available, matching the sign-up flow.
		profile.Available = true
	} else {
		profile.Skills = nil
		profile.VehicleType = ""
		profile.Available = false
		profile.Rating = nil
	}

	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if err := pd.profileRepo.Insert(ctx, profile); err != nil {
		return nil, err
	}

	pd.invalidateRoster(ctx, profile.Role)
	pd.logger.Info("Profile created", "id", profile.ID, "role", profile.Role)
	return profile, nil
}

// GetProfile returns the profile for id.
func (pd *ProfileDirectory) GetProfile(ctx context.Context, id string) (*entity.Profile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validationf("profile id is required")
	}
	return pd.profileRepo.FindByID(ctx, id)
}

// UpdateProfile merges the supplied fields into an existing profile.
// Changing id or role is rejected.
func (pd *ProfileDirectory) UpdateProfile(ctx context.Context, id string, upd entity.ProfileUpdate) (*entity.Profile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validationf("profile id is required")
	}
	if upd.TouchesIdentity() {
		return nil, apperrors.Validationf("id and role are immutable")
	}
	if upd.IsEmpty() {
		return nil, apperrors.Validationf("no updatable fields supplied")
	}

	updated, err := pd.profileRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	pd.invalidateRoster(ctx, updated.Role)
	pd.logger.Info("Profile updated", "id", id)
	return updated, nil
}

// ListMechanics returns a snapshot of mechanic profiles satisfying
// predicate. A nil predicate keeps every mechanic. Repeated calls restart
// the iteration against a fresh snapshot.
func (pd *ProfileDirectory) ListMechanics(ctx context.Context, predicate func(*entity.Profile) bool) ([]*entity.Profile, error) {
	mechanics, err := pd.profileRepo.ListMechanics(ctx)
	if err != nil {
		return nil, err
	}
	if predicate == nil {
		return mechanics, nil
	}

	filtered := make([]*entity.Profile, 0, len(mechanics))
	for _, m := range mechanics {
		if predicate(m) {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

// SetAvailability toggles a mechanic's availability flag. Setting the value
// it already has is a no-op.
func (pd *ProfileDirectory) SetAvailability(ctx context.Context, mechanicID string, available bool) error {
	if strings.TrimSpace(mechanicID) == "" {
		return apperrors.Validationf("mechanic id is required")
	}

	changed, err := pd.profileRepo.SetAvailability(ctx, mechanicID, available)
	if err != nil {
		return err
	}
	if changed {
		pd.invalidateRoster(ctx, entity.RoleMechanic)
		pd.logger.Info("Mechanic availability changed", "id", mechanicID, "available", available)
	}
	return nil
}

func (pd *ProfileDirectory) invalidateRoster(ctx context.Context, role string) {
	if pd.rosterCache == nil || role != entity.RoleMechanic {
		return
	}
	pd.rosterCache.Invalidate(ctx)
}
