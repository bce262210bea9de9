package usecase

import (
	"context"
	"errors"
	"testing"

	"findmymechanic-service/internal/domain/apperrors"
	"findmymechanic-service/internal/domain/entity"
	"findmymechanic-service/pkg/logger"
)

func strPtr(s string) *string { return &s }

func TestCreateProfile(t *testing.T) {
	repo := newMemProfileRepo()
	pd := NewProfileDirectory(repo, nil, logger.NewNop())
	ctx := context.Background()

	created, err := pd.CreateProfile(ctx, &entity.Profile{
		DisplayName: "Mo",
		Role:        entity.RoleMechanic,
		Email:       "mo@example.com",
		Phone:       "555-0100",
		Location:    "Downtown",
		Skills:      []string{"brakes"},
	})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !created.Available {
		t.Fatalf("expected mechanic to register available")
	}

	// A user profile never carries mechanic fields.
	u, err := pd.CreateProfile(ctx, &entity.Profile{
		DisplayName: "Uma",
		Role:        entity.RoleUser,
		Email:       "uma@example.com",
		Phone:       "555-0101",
		Skills:      []string{"smuggled"},
		Available:   true,
	})
	if err != nil {
		t.Fatalf("create user profile: %v", err)
	}
	if u.Skills != nil || u.Available {
		t.Fatalf("user profile kept mechanic fields: %+v", u)
	}
}

func TestCreateProfileValidation(t *testing.T) {
	repo := newMemProfileRepo()
	pd := NewProfileDirectory(repo, nil, logger.NewNop())
	ctx := context.Background()

	if _, err := pd.CreateProfile(ctx, &entity.Profile{Role: "admin", DisplayName: "X", Email: "x@example.com", Phone: "1"}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for bad role, got %v", err)
	}
	if _, err := pd.CreateProfile(ctx, &entity.Profile{Role: entity.RoleUser, DisplayName: " ", Email: "x@example.com", Phone: "1"}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestGetProfile(t *testing.T) {
	repo := newMemProfileRepo()
	pd := NewProfileDirectory(repo, nil, logger.NewNop())
	ctx := context.Background()

	if err := repo.Insert(ctx, user("U1", "Uma")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := pd.GetProfile(ctx, "U1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.DisplayName != "Uma" {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if _, err := pd.GetProfile(ctx, "nobody"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	repo := newMemProfileRepo()
	pd := NewProfileDirectory(repo, nil, logger.NewNop())
	ctx := context.Background()
	if err := repo.Insert(ctx, mechanic("M1", "Mo", "Downtown", []string{"oil"}, nil, true)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated, err := pd.UpdateProfile(ctx, "M1", entity.ProfileUpdate{Location: strPtr("Uptown")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Location != "Uptown" {
		t.Fatalf("location not merged: %+v", updated)
	}
	if updated.DisplayName != "Mo" || len(updated.Skills) != 1 {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}

	if _, err := pd.UpdateProfile(ctx, "M1", entity.ProfileUpdate{ID: strPtr("M9")}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error changing id, got %v", err)
	}
	if _, err := pd.UpdateProfile(ctx, "M1", entity.ProfileUpdate{Role: strPtr(entity.RoleUser)}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error changing role, got %v", err)
	}
	if _, err := pd.UpdateProfile(ctx, "ghost", entity.ProfileUpdate{Location: strPtr("Nowhere")}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := pd.UpdateProfile(ctx, "M1", entity.ProfileUpdate{}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for empty update, got %v", err)
	}
}

func TestListMechanicsPredicate(t *testing.T) {
	repo := newMemProfileRepo()
	pd := NewProfileDirectory(repo, nil, logger.NewNop())
	ctx := context.Background()
	seedRoster(t, repo)
	if err := repo.Insert(ctx, user("U1", "Uma")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	all, err := pd.ListMechanics(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assertIDs(t, all, "M1", "M2", "M3")

	available, err := pd.ListMechanics(ctx, func(p *entity.Profile) bool { return p.Available })
	if err != nil {
		t.Fatalf("list available: %v", err)
	}
	assertIDs(t, available, "M1", "M2")

	// Restartable: a second call yields the same snapshot.
	again, err := pd.ListMechanics(ctx, func(p *entity.Profile) bool { return p.Available })
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	assertIDs(t, again, "M1", "M2")
}

func TestSetAvailability(t *testing.T) {
	repo := newMemProfileRepo()
	cache := &memRosterCache{}
	pd := NewProfileDirectory(repo, cache, logger.NewNop())
	ctx := context.Background()
	seedRoster(t, repo)

	if err := pd.SetAvailability(ctx, "M1", false); err != nil {
		t.Fatalf("set availability: %v", err)
	}
	if cache.invalidations != 1 {
		t.Fatalf("expected cache invalidation, got %d", cache.invalidations)
	}

	// Idempotent: setting the same value again does not invalidate.
	if err := pd.SetAvailability(ctx, "M1", false); err != nil {
		t.Fatalf("repeat set availability: %v", err)
	}
	if cache.invalidations != 1 {
		t.Fatalf("no-op toggle invalidated the cache")
	}

	if err := pd.SetAvailability(ctx, "U1", true); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for non-mechanic, got %v", err)
	}
}
