package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"findmymechanic-service/internal/domain/entity"
	"findmymechanic-service/internal/domain/repository"
	"findmymechanic-service/pkg/logger"
	"findmymechanic-service/pkg/metrics"
)

// Criteria is the set of optional filters a user searches mechanics with.
// Blank fields do not constrain the result.
type Criteria struct {
	Location    string `json:"location,omitempty"`
	VehicleType string `json:"vehicleType,omitempty"`
	ServiceTag  string `json:"serviceTag,omitempty"`
}

// IsEmpty reports whether no filter is set at all.
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Location) == "" &&
		strings.TrimSpace(c.VehicleType) == "" &&
		strings.TrimSpace(c.ServiceTag) == ""
}

// MatchingEngine ranks the available mechanic roster against a user's
// search criteria.
type MatchingEngine struct {
	profileRepo repository.ProfileRepository
	rosterCache repository.RosterCache
	catalog     repository.ServiceCatalogRepository
	metrics     *metrics.Metrics
	logger      logger.Logger

	// fallbackAll preserves the client's show-everyone-on-no-match policy:
	// when every available mechanic scores zero, the whole roster is
	// returned instead of an empty result.
	fallbackAll bool
	cacheTTL    time.Duration
}

// NewMatchingEngine creates a matching engine. rosterCache, catalog and m
// may be nil when the corresponding collaborator is not configured.
func NewMatchingEngine(
	profileRepo repository.ProfileRepository,
	rosterCache repository.RosterCache,
	catalog repository.ServiceCatalogRepository,
	m *metrics.Metrics,
	logger logger.Logger,
	fallbackAll bool,
	cacheTTL time.Duration,
) *MatchingEngine {
	return &MatchingEngine{
		profileRepo: profileRepo,
		rosterCache: rosterCache,
		catalog:     catalog,
		metrics:     m,
		logger:      logger,
		fallbackAll: fallbackAll,
		cacheTTL:    cacheTTL,
	}
}

type scoredMechanic struct {
	profile *entity.Profile
	score   int
}

// FindMechanics returns the available mechanics ranked against criteria.
// Score is the count of matching criteria fields; zero-score mechanics are
// kept only when otherwise nothing would be returned (and fallback is on).
// Ties break by rating descending, then id ascending.
func (me *MatchingEngine) FindMechanics(ctx context.Context, criteria Criteria) ([]*entity.Profile, error) {
	start := time.Now()
	if me.metrics != nil {
		me.metrics.MatchQueries.Inc()
	}

	roster, err := me.availableRoster(ctx)
	if err != nil {
		return nil, err
	}

	serviceTag := me.canonicalServiceTag(ctx, criteria.ServiceTag)

	scored := make([]scoredMechanic, 0, len(roster))
	for _, m := range roster {
		scored = append(scored, scoredMechanic{profile: m, score: score(m, criteria.Location, criteria.VehicleType, serviceTag)})
	}

	matched := make([]scoredMechanic, 0, len(scored))
	for _, sm := range scored {
		if sm.score > 0 {
			matched = append(matched, sm)
		}
	}

	// With no criteria every mechanic scores zero; the full roster is the
	// correct answer there, not a fallback.
	if len(matched) == 0 && (criteria.IsEmpty() || me.fallbackAll) {
		matched = scored
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].score != matched[j].score {
			return matched[i].score > matched[j].score
		}
		ri, rj := ratingOf(matched[i].profile), ratingOf(matched[j].profile)
		if ri != rj {
			return ri > rj
		}
		return matched[i].profile.ID < matched[j].profile.ID
	})

	result := make([]*entity.Profile, len(matched))
	for i, sm := range matched {
		result[i] = sm.profile
	}

	if me.metrics != nil {
		me.metrics.MatchDuration.Observe(time.Since(start).Seconds())
	}
	me.logger.Debug("Match query served", "roster", len(roster), "returned", len(result))
	return result, nil
}

// availableRoster returns the available mechanics, from cache when possible.
func (me *MatchingEngine) availableRoster(ctx context.Context) ([]*entity.Profile, error) {
	if me.rosterCache != nil {
		if roster, ok := me.rosterCache.GetRoster(ctx); ok {
			return roster, nil
		}
	}

	mechanics, err := me.profileRepo.ListMechanics(ctx)
	if err != nil {
		return nil, err
	}

	roster := make([]*entity.Profile, 0, len(mechanics))
	for _, m := range mechanics {
		if m.Available {
			roster = append(roster, m)
		}
	}

	if me.rosterCache != nil {
		me.rosterCache.SetRoster(ctx, roster, me.cacheTTL)
	}
	return roster, nil
}

// canonicalServiceTag maps a free-text tag onto its catalog name when the
// catalog knows it, so "oil" matches mechanics tagged "Oil".
func (me *MatchingEngine) canonicalServiceTag(ctx context.Context, tag string) string {
	tag = strings.TrimSpace(tag)
	if me.catalog == nil || tag == "" {
		return tag
	}
	st, err := me.catalog.GetByCode(ctx, tag)
	if err != nil {
		return tag
	}
	return st.Name
}

func score(m *entity.Profile, location, vehicleType, serviceTag string) int {
	s := 0
	if location = strings.TrimSpace(location); location != "" {
		if strings.Contains(strings.ToLower(m.Location), strings.ToLower(location)) {
			s++
		}
	}
	if vehicleType = strings.TrimSpace(vehicleType); vehicleType != "" {
		if m.VehicleType != "" && strings.EqualFold(m.VehicleType, vehicleType) {
			s++
		}
	}
	if serviceTag = strings.TrimSpace(serviceTag); serviceTag != "" {
		lower := strings.ToLower(serviceTag)
		for _, skill := range m.Skills {
			if strings.Contains(strings.ToLower(skill), lower) {
				s++
				break
			}
		}
	}
	return s
}

func ratingOf(m *entity.Profile) float64 {
	if m.Rating == nil {
		return -1
	}
	return *m.Rating
}
