package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"findmymechanic-service/internal/domain/apperrors"
	"findmymechanic-service/internal/domain/entity"
	"findmymechanic-service/internal/domain/repository"
	"findmymechanic-service/pkg/logger"
	"findmymechanic-service/pkg/metrics"
	"findmymechanic-service/pkg/utils"
	"findmymechanic-service/templates"
)

// CreateBookingInput carries the fields of a booking request. The
// idempotency key is optional; creation with a key already used returns the
// booking created under it instead of a duplicate.
type CreateBookingInput struct {
	UserID         string `json:"userId"`
	MechanicID     string `json:"mechanicId"`
	ServiceType    string `json:"serviceType"`
	ScheduledDate  string `json:"scheduledDate"`
	ScheduledTime  string `json:"scheduledTime"`
	Location       string `json:"location"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// BookingLifecycle owns booking records, drives their single Pending to
// Accepted/Rejected transition and emits the resulting notifications.
type BookingLifecycle struct {
	bookingRepo      repository.BookingRepository
	notificationRepo repository.NotificationRepository
	profileRepo      repository.ProfileRepository
	metrics          *metrics.Metrics
	logger           logger.Logger
}

// NewBookingLifecycle creates a booking lifecycle. m may be nil.
func NewBookingLifecycle(
	bookingRepo repository.BookingRepository,
	notificationRepo repository.NotificationRepository,
	profileRepo repository.ProfileRepository,
	m *metrics.Metrics,
	logger logger.Logger,
) *BookingLifecycle {
	return &BookingLifecycle{
		bookingRepo:      bookingRepo,
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
		metrics:          m,
		logger:           logger,
	}
}

// CreateBooking validates the request against the profile directory and
// stores a new Pending booking. Multiple pending bookings between the same
// user/mechanic pair are allowed.
func (bl *BookingLifecycle) CreateBooking(ctx context.Context, input CreateBookingInput) (*entity.Booking, error) {
	for field, value := range map[string]string{
		"userId":        input.UserID,
		"mechanicId":    input.MechanicID,
		"serviceType":   input.ServiceType,
		"scheduledDate": input.ScheduledDate,
		"scheduledTime": input.ScheduledTime,
		"location":      input.Location,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, apperrors.Validationf("%s is required", field)
		}
	}

	if input.IdempotencyKey != "" {
		existing, err := bl.bookingRepo.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err == nil {
			bl.logger.Info("Booking re-request matched idempotency key", "bookingId", existing.ID)
			return existing, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	if err := bl.requireRole(ctx, input.UserID, entity.RoleUser); err != nil {
		return nil, err
	}
	if err := bl.requireRole(ctx, input.MechanicID, entity.RoleMechanic); err != nil {
		return nil, err
	}

	key := input.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	booking := &entity.Booking{
		UserID:         input.UserID,
		MechanicID:     input.MechanicID,
		ServiceType:    strings.TrimSpace(input.ServiceType),
		ScheduledDate:  strings.TrimSpace(input.ScheduledDate),
		ScheduledTime:  strings.TrimSpace(input.ScheduledTime),
		Location:       strings.TrimSpace(input.Location),
		Status:         entity.StatusPending,
		IdempotencyKey: key,
		CreatedAt:      time.Now().UTC(),
	}

	if err := bl.bookingRepo.Insert(ctx, booking); err != nil {
		// Two racing requests with the same key: the loser returns the
		// winner's booking.
		if errors.Is(err, apperrors.ErrConflict) && input.IdempotencyKey != "" {
			return bl.bookingRepo.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		}
		return nil, err
	}

	if bl.metrics != nil {
		bl.metrics.BookingsCreated.Inc()
	}
	bl.logger.Info("Booking created", "bookingId", booking.ID, "userId", booking.UserID, "mechanicId", booking.MechanicID)
	return booking, nil
}

// Decide applies a mechanic's accept/reject verdict to a pending booking.
// The status swap is a compare-and-swap on Pending, so of two racing
// decisions exactly one wins and the other fails with a conflict. Exactly
// one notification is written for the booking's user per applied decision.
func (bl *BookingLifecycle) Decide(ctx context.Context, bookingID, actorMechanicID string, decision entity.Decision) (*entity.Booking, error) {
	if strings.TrimSpace(bookingID) == "" || strings.TrimSpace(actorMechanicID) == "" {
		return nil, apperrors.Validationf("booking id and mechanic id are required")
	}
	if !decision.Valid() {
		return nil, apperrors.Validationf("decision must be %q or %q", entity.DecisionAccept, entity.DecisionReject)
	}

	booking, err := bl.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.MechanicID != actorMechanicID {
		return nil, apperrors.Authorizationf("booking %s does not belong to mechanic %s", bookingID, actorMechanicID)
	}
	if booking.Decided() {
		return nil, apperrors.Conflictf("booking %s already %s", bookingID, booking.Status)
	}

	updated, err := bl.bookingRepo.DecideIfPending(ctx, bookingID, decision.Status(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	notification := &entity.Notification{
		UserID:    updated.UserID,
		BookingID: updated.ID,
		Message:   templates.BookingDecisionMessage(updated.Status, updated.ScheduledDate, updated.ScheduledTime),
		CreatedAt: time.Now().UTC(),
	}
	if err := bl.notificationRepo.Insert(ctx, notification); err != nil {
		// The transition is already applied; surface the failure so the
		// caller knows the user was not notified.
		bl.logger.Error("Failed to write decision notification", "bookingId", updated.ID, "error", err)
		return nil, err
	}

	if bl.metrics != nil {
		bl.metrics.BookingDecisions.WithLabelValues(string(decision)).Inc()
		bl.metrics.NotificationsEmitted.Inc()
	}
	bl.logger.Info("Booking decided", "bookingId", updated.ID, "status", updated.Status, "mechanicId", actorMechanicID)
	return updated, nil
}

// ListForUser returns the user's bookings ordered by schedule, soonest
// first. Bookings with an unparsable schedule sort last in stable order.
func (bl *BookingLifecycle) ListForUser(ctx context.Context, userID string) ([]*entity.Booking, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.Validationf("user id is required")
	}
	bookings, err := bl.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	utils.SortBookingsBySchedule(bookings)
	return bookings, nil
}

// ListForMechanic returns the mechanic's bookings ordered like ListForUser.
func (bl *BookingLifecycle) ListForMechanic(ctx context.Context, mechanicID string) ([]*entity.Booking, error) {
	if strings.TrimSpace(mechanicID) == "" {
		return nil, apperrors.Validationf("mechanic id is required")
	}
	bookings, err := bl.bookingRepo.ListByMechanic(ctx, mechanicID)
	if err != nil {
		return nil, err
	}
	utils.SortBookingsBySchedule(bookings)
	return bookings, nil
}

// ListNotifications returns the user's notification feed, newest first.
func (bl *BookingLifecycle) ListNotifications(ctx context.Context, userID string) ([]*entity.Notification, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.Validationf("user id is required")
	}
	return bl.notificationRepo.ListByUser(ctx, userID)
}

// MarkNotificationRead marks one of the user's notifications as read.
func (bl *BookingLifecycle) MarkNotificationRead(ctx context.Context, id, userID string) error {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(userID) == "" {
		return apperrors.Validationf("notification id and user id are required")
	}
	return bl.notificationRepo.MarkRead(ctx, id, userID)
}

func (bl *BookingLifecycle) requireRole(ctx context.Context, id, role string) error {
	profile, err := bl.profileRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if profile.Role != role {
		return apperrors.Validationf("profile %s is not a %s", id, role)
	}
	return nil
}
