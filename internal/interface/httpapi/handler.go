// Package httpapi exposes the core operations to the mobile client as a
// JSON request/response contract. All routes except health and metrics are
// scoped to the authenticated actor.
package httpapi

import (
	"encoding/json"
	"net/http"

	"findmymechanic-service/internal/domain/apperrors"
	"findmymechanic-service/internal/domain/entity"
	"findmymechanic-service/internal/domain/repository"
	"findmymechanic-service/internal/infrastructure/identity"
	"findmymechanic-service/internal/usecase"
	"findmymechanic-service/pkg/logger"
)

// Handler wires the usecases to HTTP routes.
type Handler struct {
	profiles *usecase.ProfileDirectory
	matching *usecase.MatchingEngine
	bookings *usecase.BookingLifecycle
	catalog  repository.ServiceCatalogRepository
	verifier identity.Verifier
	logger   logger.Logger
}

// NewHandler creates the HTTP handler. catalog may be nil when no reference
// database is configured.
func NewHandler(
	profiles *usecase.ProfileDirectory,
	matching *usecase.MatchingEngine,
	bookings *usecase.BookingLifecycle,
	catalog repository.ServiceCatalogRepository,
	verifier identity.Verifier,
	logger logger.Logger,
) *Handler {
	return &Handler{
		profiles: profiles,
		matching: matching,
		bookings: bookings,
		catalog:  catalog,
		verifier: verifier,
		logger:   logger,
	}
}

// Register attaches all API routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/profiles", h.withActor(h.createProfile))
	mux.HandleFunc("GET /api/profiles/{id}", h.withActor(h.getProfile))
	mux.HandleFunc("PATCH /api/profiles/{id}", h.withActor(h.updateProfile))

	mux.HandleFunc("GET /api/mechanics", h.withActor(h.findMechanics))
	mux.HandleFunc("PUT /api/mechanics/{id}/availability", h.withActor(h.setAvailability))
	mux.HandleFunc("GET /api/service-types", h.withActor(h.listServiceTypes))

	mux.HandleFunc("POST /api/bookings", h.withActor(h.createBooking))
	mux.HandleFunc("POST /api/bookings/{id}/decision", h.withActor(h.decideBooking))
	mux.HandleFunc("GET /api/bookings", h.withActor(h.listBookings))

	mux.HandleFunc("GET /api/notifications", h.withActor(h.listNotifications))
	mux.HandleFunc("POST /api/notifications/{id}/read", h.withActor(h.markNotificationRead))
}

// createProfile registers the actor's own profile. The profile id is the
// identity collaborator's account id, never client supplied.
func (h *Handler) createProfile(w http.ResponseWriter, r *http.Request, actorID string) {
	var profile entity.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, apperrors.Validationf("invalid request body: %v", err))
		return
	}
	profile.ID = actorID

	created, err := h.profiles.CreateProfile(r.Context(), &profile)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request, _ string) {
	profile, err := h.profiles.GetProfile(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request, actorID string) {
	id := r.PathValue("id")
	if id != actorID {
		writeError(w, apperrors.Authorizationf("cannot update another actor's profile"))
		return
	}

	var upd entity.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, apperrors.Validationf("invalid request body: %v", err))
		return
	}

	updated, err := h.profiles.UpdateProfile(r.Context(), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) findMechanics(w http.ResponseWriter, r *http.Request, _ string) {
	q := r.URL.Query()
	criteria := usecase.Criteria{
		Location:    q.Get("location"),
		VehicleType: q.Get("vehicleType"),
		ServiceTag:  q.Get("serviceTag"),
	}

	mechanics, err := h.matching.FindMechanics(r.Context(), criteria)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mechanics)
}

func (h *Handler) setAvailability(w http.ResponseWriter, r *http.Request, actorID string) {
	id := r.PathValue("id")
	if id != actorID {
		writeError(w, apperrors.Authorizationf("cannot change another mechanic's availability"))
		return
	}

	var body struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperrors.Validationf("invalid request body: %v", err))
		return
	}

	if err := h.profiles.SetAvailability(r.Context(), id, body.Available); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) listServiceTypes(w http.ResponseWriter, r *http.Request, _ string) {
	if h.catalog == nil {
		writeJSON(w, http.StatusOK, []*entity.ServiceType{})
		return
	}
	types, err := h.catalog.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

// createBooking creates a booking on behalf of the actor; the userId is
// always the authenticated caller.
func (h *Handler) createBooking(w http.ResponseWriter, r *http.Request, actorID string) {
	var input usecase.CreateBookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, apperrors.Validationf("invalid request body: %v", err))
		return
	}
	input.UserID = actorID
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		input.IdempotencyKey = key
	}

	booking, err := h.bookings.CreateBooking(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *Handler) decideBooking(w http.ResponseWriter, r *http.Request, actorID string) {
	var body struct {
		Decision entity.Decision `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperrors.Validationf("invalid request body: %v", err))
		return
	}

	booking, err := h.bookings.Decide(r.Context(), r.PathValue("id"), actorID, body.Decision)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// listBookings returns the actor's bookings; ?as=mechanic switches from the
// requester view to the mechanic's work queue.
func (h *Handler) listBookings(w http.ResponseWriter, r *http.Request, actorID string) {
	var (
		bookings []*entity.Booking
		err      error
	)
	if r.URL.Query().Get("as") == "mechanic" {
		bookings, err = h.bookings.ListForMechanic(r.Context(), actorID)
	} else {
		bookings, err = h.bookings.ListForUser(r.Context(), actorID)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request, actorID string) {
	notifications, err := h.bookings.ListNotifications(r.Context(), actorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request, actorID string) {
	if err := h.bookings.MarkNotificationRead(r.Context(), r.PathValue("id"), actorID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
