package deals

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"hhdeals/internal/category"
	"hhdeals/internal/core"
	"hhdeals/internal/geo"
	"hhdeals/internal/happyhour"
	"hhdeals/internal/preferences"
	"hhdeals/internal/recommend"

	"go.uber.org/zap"
)

const MaxRecommendLimit = 100

var ErrInvalidDeal = errors.New("invalid deal")

type Service struct {
	repo           Repository
	establishments core.EstablishmentReader
	prefs          *preferences.Store
	defaultLimit   int
	logger         *zap.Logger
	now            func() time.Time
}

func NewService(
	repo Repository,
	establishments core.EstablishmentReader,
	prefs *preferences.Store,
	loc *time.Location,
	defaultLimit int,
	logger *zap.Logger,
) *Service {
	if loc == nil {
		loc = time.Local
	}
	if defaultLimit <= 0 {
		defaultLimit = recommend.DefaultLimit
	}
	return &Service{
		repo:           repo,
		establishments: establishments,
		prefs:          prefs,
		defaultLimit:   defaultLimit,
		logger:         logger,
		now:            func() time.Time { return time.Now().In(loc) },
	}
}

// --------------------------------------------------
// List deals
// --------------------------------------------------
func (s *Service) List(ctx context.Context, f Filter) ([]View, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	ests, err := s.establishmentIndex(ctx)
	if err != nil {
		return nil, err
	}

	var prefs *preferences.Preferences
	if f.ClientID != "" {
		prefs = s.prefs.Load(ctx, f.ClientID)
	}

	now := s.now()
	views := make([]View, 0, len(all))
	for _, d := range all {
		v := s.view(*d, ests, f.Position, prefs, now)
		if f.ActiveOnly && !v.IsActive {
			continue
		}
		if f.Category != "" && v.Category != f.Category {
			continue
		}
		views = append(views, v)
	}

	if f.Position != nil {
		sortByDistance(views)
	}
	return views, nil
}

// ListActive is List limited to deals running right now.
func (s *Service) ListActive(ctx context.Context, pos *core.Position) ([]View, error) {
	return s.List(ctx, Filter{ActiveOnly: true, Position: pos})
}

func (s *Service) Get(ctx context.Context, id int, pos *core.Position, clientID string) (*View, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ests := map[int]core.Establishment{}
	e, err := s.establishments.GetByID(ctx, d.EstablishmentID)
	if err == nil {
		ests[e.ID] = *e
	} else {
		s.logger.Warn("deal without establishment",
			zap.Int("deal_id", d.ID),
			zap.Int("establishment_id", d.EstablishmentID),
			zap.Error(err),
		)
	}

	var prefs *preferences.Preferences
	if clientID != "" {
		prefs = s.prefs.Load(ctx, clientID)
	}

	v := s.view(*d, ests, pos, prefs, s.now())
	return &v, nil
}

// --------------------------------------------------
// Recommendations
// --------------------------------------------------
func (s *Service) Recommended(ctx context.Context, clientID string, pos *core.Position, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > MaxRecommendLimit {
		limit = MaxRecommendLimit
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	ests, err := s.establishmentIndex(ctx)
	if err != nil {
		return nil, err
	}

	deals := make([]core.Deal, 0, len(all))
	for _, d := range all {
		deals = append(deals, *d)
	}

	prefs := s.prefs.Load(ctx, clientID)
	now := s.now()
	isActive := func(d core.Deal) bool { return happyhour.IsActive(d.Schedule(), now) }

	ranked := recommend.RankDeals(deals, ests, pos, isActive, nil, prefs, limit)

	out := make([]Recommendation, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, Recommendation{
			View:  s.view(r.Deal, ests, pos, prefs, now),
			Score: r.Score,
		})
	}
	return out, nil
}

// RecordView counts a detail view of the deal for the client.
func (s *Service) RecordView(ctx context.Context, clientID string, id int) (*preferences.Preferences, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.prefs.RecordDealView(ctx, clientID, id), nil
}

// --------------------------------------------------
// ADMIN: create / delete
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, in CreateInput) (*core.Deal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidDeal)
	}
	if strings.TrimSpace(in.ValidDays) == "" {
		return nil, fmt.Errorf("%w: valid_days is required", ErrInvalidDeal)
	}
	if _, err := happyhour.ParseTimeOfDay(in.HHStartTime); err != nil {
		return nil, fmt.Errorf("%w: hh_start_time: %v", ErrInvalidDeal, err)
	}
	if _, err := happyhour.ParseTimeOfDay(in.HHEndTime); err != nil {
		return nil, fmt.Errorf("%w: hh_end_time: %v", ErrInvalidDeal, err)
	}
	if in.StandardPrice < 0 || in.HappyHourPrice < 0 {
		return nil, fmt.Errorf("%w: prices must not be negative", ErrInvalidDeal)
	}
	if _, err := s.establishments.GetByID(ctx, in.EstablishmentID); err != nil {
		return nil, fmt.Errorf("%w: unknown establishment %d", ErrInvalidDeal, in.EstablishmentID)
	}

	deal := &core.Deal{
		EstablishmentID: in.EstablishmentID,
		Title:           title,
		Description:     in.Description,
		AlcoholCategory: strings.TrimSpace(in.AlcoholCategory),
		ValidDays:       strings.TrimSpace(in.ValidDays),
		HHStartTime:     strings.TrimSpace(in.HHStartTime),
		HHEndTime:       strings.TrimSpace(in.HHEndTime),
		StandardPrice:   in.StandardPrice,
		HappyHourPrice:  in.HappyHourPrice,
	}
	if err := s.repo.Create(ctx, deal); err != nil {
		return nil, err
	}

	s.logger.Info("deal created",
		zap.Int("deal_id", deal.ID),
		zap.Int("establishment_id", deal.EstablishmentID),
	)
	return deal, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deal deleted", zap.Int("deal_id", id))
	return nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------
func (s *Service) establishmentIndex(ctx context.Context) (map[int]core.Establishment, error) {
	list, err := s.establishments.List(ctx)
	if err != nil {
		s.logger.Error("failed to load establishments", zap.Error(err))
		return nil, err
	}

	index := make(map[int]core.Establishment, len(list))
	for _, e := range list {
		index[e.ID] = *e
	}
	return index, nil
}

func (s *Service) view(
	d core.Deal,
	ests map[int]core.Establishment,
	pos *core.Position,
	prefs *preferences.Preferences,
	now time.Time,
) View {
	c := category.Parse(d.AlcoholCategory)
	v := View{
		Deal:            d,
		Category:        c,
		CategoryDisplay: category.DisplayFor(c),
		Saved:           prefs.IsSaved(d.ID),
	}

	active, err := happyhour.Evaluate(d.Schedule(), now)
	if err != nil {
		s.logger.Warn("unparseable happy-hour window",
			zap.Int("deal_id", d.ID),
			zap.String("start", d.HHStartTime),
			zap.String("end", d.HHEndTime),
			zap.Error(err),
		)
	}
	v.IsActive = active
	if !active {
		if next, ok := happyhour.NextStart(d.Schedule(), now); ok {
			v.NextStart = &next
		}
	}

	if e, ok := ests[d.EstablishmentID]; ok {
		v.EstablishmentName = e.Name
		if pos != nil {
			if km, ok := geo.DistanceToEstablishment(*pos, e); ok {
				v.DistanceKm = &km
				v.Distance = geo.FormatDistance(km)
			}
		}
	}
	return v
}

// sortByDistance puts the nearest first and unknown distances last.
func sortByDistance(views []View) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].DistanceKm, views[j].DistanceKm
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}
