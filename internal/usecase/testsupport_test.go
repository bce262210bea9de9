package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"findmymechanic-service/internal/domain/apperrors"
	"findmymechanic-service/internal/domain/entity"
)

// In-memory repository fakes mirroring the Mongo implementations' contract,
// including the compare-and-swap semantics of DecideIfPending.

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile
	nextID   int
	failWith error
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[string]*entity.Profile{}}
}

func (m *memProfileRepo) Insert(_ context.Context, p *entity.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if p.ID == "" {
		m.nextID++
		p.ID = fmt.Sprintf("p-%03d", m.nextID)
	}
	cp := *p
	m.profiles[p.ID] = &cp
	return nil
}

func (m *memProfileRepo) FindByID(_ context.Context, id string) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	p, ok := m.profiles[id]
	if !ok {
		return nil, apperrors.NotFoundf("profile %s", id)
	}
	cp := *p
	return &cp, nil
}

func (m *memProfileRepo) Update(_ context.Context, id string, upd entity.ProfileUpdate) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, apperrors.NotFoundf("profile %s", id)
	}
	if upd.DisplayName != nil {
		p.DisplayName = *upd.DisplayName
	}
	if upd.Email != nil {
		p.Email = *upd.Email
	}
	if upd.Phone != nil {
		p.Phone = *upd.Phone
	}
	if upd.Location != nil {
		p.Location = *upd.Location
	}
	if upd.Skills != nil {
		p.Skills = *upd.Skills
	}
	if upd.VehicleType != nil {
		p.VehicleType = *upd.VehicleType
	}
	if upd.Rating != nil {
		p.Rating = upd.Rating
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (m *memProfileRepo) ListMechanics(_ context.Context) ([]*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []*entity.Profile
	for _, p := range m.profiles {
		if p.Role == entity.RoleMechanic {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProfileRepo) SetAvailability(_ context.Context, mechanicID string, available bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[mechanicID]
	if !ok || p.Role != entity.RoleMechanic {
		return false, apperrors.NotFoundf("mechanic %s", mechanicID)
	}
	if p.Available == available {
		return false, nil
	}
	p.Available = available
	return true, nil
}

type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*entity.Booking
	byKey    map[string]string
	nextID   int
	failWith error
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: map[string]*entity.Booking{}, byKey: map[string]string{}}
}

func (m *memBookingRepo) Insert(_ context.Context, b *entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if b.IdempotencyKey != "" {
		if _, exists := m.byKey[b.IdempotencyKey]; exists {
			return apperrors.Conflictf("idempotency key %s already used", b.IdempotencyKey)
		}
	}
	if b.ID == "" {
		m.nextID++
		b.ID = fmt.Sprintf("b-%03d", m.nextID)
	}
	cp := *b
	m.bookings[b.ID] = &cp
	if b.IdempotencyKey != "" {
		m.byKey[b.IdempotencyKey] = b.ID
	}
	return nil
}

func (m *memBookingRepo) FindByID(_ context.Context, id string) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, apperrors.NotFoundf("booking %s", id)
	}
	cp := *b
	return &cp, nil
}

func (m *memBookingRepo) FindByIdempotencyKey(_ context.Context, key string) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byKey[key]
	if !ok {
		return nil, apperrors.NotFoundf("booking with key %s", key)
	}
	cp := *m.bookings[id]
	return &cp, nil
}

func (m *memBookingRepo) DecideIfPending(_ context.Context, id, status string, decidedAt time.Time) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	b, ok := m.bookings[id]
	if !ok {
		return nil, apperrors.NotFoundf("booking %s", id)
	}
	if b.Status != entity.StatusPending {
		return nil, apperrors.Conflictf("booking %s already %s", id, b.Status)
	}
	b.Status = status
	b.DecidedAt = &decidedAt
	cp := *b
	return &cp, nil
}

func (m *memBookingRepo) ListByUser(_ context.Context, userID string) ([]*entity.Booking, error) {
	return m.list(func(b *entity.Booking) bool { return b.UserID == userID })
}

func (m *memBookingRepo) ListByMechanic(_ context.Context, mechanicID string) ([]*entity.Booking, error) {
	return m.list(func(b *entity.Booking) bool { return b.MechanicID == mechanicID })
}

func (m *memBookingRepo) list(keep func(*entity.Booking) bool) ([]*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []*entity.Booking
	for _, b := range m.bookings {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memNotificationRepo struct {
	mu            sync.Mutex
	notifications []*entity.Notification
	nextID        int
	failWith      error
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{}
}

func (m *memNotificationRepo) Insert(_ context.Context, n *entity.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if n.ID == "" {
		m.nextID++
		n.ID = fmt.Sprintf("n-%03d", m.nextID)
	}
	cp := *n
	m.notifications = append(m.notifications, &cp)
	return nil
}

func (m *memNotificationRepo) ListByUser(_ context.Context, userID string) ([]*entity.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return apperrors.NotFoundf("notification %s", id)
}

type memRosterCache struct {
	mu     sync.Mutex
	roster []*entity.Profile
	set    bool

	hits, misses, invalidations int
}

func (c *memRosterCache) GetRoster(_ context.Context) ([]*entity.Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.set {
		c.misses++
		return nil, false
	}
	c.hits++
	return c.roster, true
}

func (c *memRosterCache) SetRoster(_ context.Context, roster []*entity.Profile, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roster = roster
	c.set = true
}

func (c *memRosterCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roster = nil
	c.set = false
	c.invalidations++
}

type memCatalog struct {
	byCode map[string]*entity.ServiceType
}

func (c *memCatalog) GetByCode(_ context.Context, code string) (*entity.ServiceType, error) {
	if st, ok := c.byCode[code]; ok {
		return st, nil
	}
	return nil, apperrors.NotFoundf("service type %s", code)
}

func (c *memCatalog) List(_ context.Context) ([]*entity.ServiceType, error) {
	var out []*entity.ServiceType
	for _, st := range c.byCode {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func ratingPtr(v float64) *float64 { return &v }

func mechanic(id, name, location string, skills []string, rating *float64, available bool) *entity.Profile {
	return &entity.Profile{
		ID:          id,
		DisplayName: name,
		Role:        entity.RoleMechanic,
		Email:       id + "@example.com",
		Phone:       "555-0100",
		Location:    location,
		Skills:      skills,
		Available:   available,
		Rating:      rating,
	}
}

func user(id, name string) *entity.Profile {
	return &entity.Profile{
		ID:          id,
		DisplayName: name,
		Role:        entity.RoleUser,
		Email:       id + "@example.com",
		Phone:       "555-0101",
	}
}
