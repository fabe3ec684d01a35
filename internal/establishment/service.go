package establishment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"hhdeals/internal/core"
	"hhdeals/internal/geo"
	"hhdeals/internal/happyhour"
	"hhdeals/internal/preferences"

	"go.uber.org/zap"
)

var ErrInvalidEstablishment = errors.New("invalid establishment")

type Service struct {
	repo   Repository
	deals  core.DealReader
	prefs  *preferences.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(
	repo Repository,
	deals core.DealReader,
	prefs *preferences.Store,
	loc *time.Location,
	logger *zap.Logger,
) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:   repo,
		deals:  deals,
		prefs:  prefs,
		logger: logger,
		now:    func() time.Time { return time.Now().In(loc) },
	}
}

// --------------------------------------------------
// List establishments with today's happy-hour status
// --------------------------------------------------
func (s *Service) List(ctx context.Context, pos *core.Position) ([]View, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]View, 0, len(items))
	for _, e := range items {
		deals, err := s.dealsOf(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, s.view(*e, deals, pos, now))
	}

	if pos != nil {
		sortByDistance(views)
	}
	return views, nil
}

// --------------------------------------------------
// Get one establishment with its deals
// --------------------------------------------------
func (s *Service) Get(ctx context.Context, id int, pos *core.Position) (*Detail, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	deals, err := s.dealsOf(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	detail := &Detail{
		View:  s.view(*e, deals, pos, now),
		Deals: make([]TaggedDeal, 0, len(deals)),
	}
	for _, d := range deals {
		detail.Deals = append(detail.Deals, TaggedDeal{
			Deal:     d,
			IsActive: happyhour.IsActive(d.Schedule(), now),
		})
	}
	return detail, nil
}

// RecordVisit counts a visit to the establishment page for the client.
func (s *Service) RecordVisit(ctx context.Context, clientID string, id int) (*preferences.Preferences, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.prefs.RecordLocationVisit(ctx, clientID, id), nil
}

// --------------------------------------------------
// ADMIN: create / delete
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, in CreateInput) (*core.Establishment, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidEstablishment)
	}
	if !geo.ValidPosition(core.Position{Lat: in.Latitude, Lng: in.Longitude}) {
		return nil, fmt.Errorf("%w: latitude/longitude out of range", ErrInvalidEstablishment)
	}

	e := &core.Establishment{
		Name:         name,
		Address:      strings.TrimSpace(in.Address),
		Neighborhood: strings.TrimSpace(in.Neighborhood),
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		ImageURL:     in.ImageURL,
		Website:      in.Website,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("establishment created", zap.Int("establishment_id", e.ID), zap.String("name", e.Name))
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("establishment deleted", zap.Int("establishment_id", id))
	return nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------
func (s *Service) dealsOf(ctx context.Context, id int) ([]core.Deal, error) {
	ptrs, err := s.deals.ListByEstablishment(ctx, id)
	if err != nil {
		s.logger.Error("failed to load deals",
			zap.Int("establishment_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	out := make([]core.Deal, 0, len(ptrs))
	for _, d := range ptrs {
		out = append(out, *d)
	}
	return out, nil
}

func (s *Service) view(e core.Establishment, deals []core.Deal, pos *core.Position, now time.Time) View {
	v := View{
		Establishment: e,
		Status:        happyhour.Summarize(core.Schedules(deals), now),
	}
	if pos != nil {
		if km, ok := geo.DistanceToEstablishment(*pos, e); ok {
			v.DistanceKm = &km
			v.Distance = geo.FormatDistance(km)
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
