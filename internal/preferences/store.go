package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"hhdeals/internal/category"

	"go.uber.org/zap"
)

// StorageKey is the fixed document name; each client gets its own suffix.
const StorageKey = "userPreferences"

func Key(clientID string) string {
	if clientID == "" {
		return StorageKey
	}
	return StorageKey + ":" + clientID
}

// Store is the only way preferences are read or changed. Every mutation is a
// load-modify-save against the backend under one lock.
type Store struct {
	backend Backend
	logger  *zap.Logger
	now     func() time.Time
	mu      sync.Mutex
}

func NewStore(backend Backend, logger *zap.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
}

// Load never fails: a missing or unreadable document yields defaults.
func (s *Store) Load(ctx context.Context, clientID string) *Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, clientID)
}

func (s *Store) loadLocked(ctx context.Context, clientID string) *Preferences {
	data, err := s.backend.Load(ctx, Key(clientID))
	if errors.Is(err, ErrNotFound) {
		return Default()
	}
	if err != nil {
		s.logger.Warn("failed to load preferences, using defaults",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
		return Default()
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("corrupt preferences document, using defaults",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
		return Default()
	}
	p.normalize()
	return &p
}

// Write failures are logged and dropped; the caller still gets the updated
// value and nothing is retried.
func (s *Store) saveLocked(ctx context.Context, clientID string, p *Preferences) {
	p.UpdatedAt = s.now()
	data, err := json.Marshal(p)
	if err != nil {
		s.logger.Error("failed to encode preferences",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
		return
	}
	if err := s.backend.Save(ctx, Key(clientID), data); err != nil {
		s.logger.Error("failed to save preferences",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
	}
}

func (s *Store) update(ctx context.Context, clientID string, fn func(p *Preferences)) *Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.loadLocked(ctx, clientID)
	fn(p)
	s.saveLocked(ctx, clientID, p)
	return p.clone()
}

func (s *Store) RecordDealView(ctx context.Context, clientID string, dealID int) *Preferences {
	return s.update(ctx, clientID, func(p *Preferences) {
		p.ViewHistory[dealID]++
	})
}

func (s *Store) RecordLocationVisit(ctx context.Context, clientID string, establishmentID int) *Preferences {
	return s.update(ctx, clientID, func(p *Preferences) {
		p.VisitHistory[establishmentID]++
	})
}

// UpdateCategoryPreference moves a category score by one, clamped to [1,10].
func (s *Store) UpdateCategoryPreference(ctx context.Context, clientID string, c category.Category, increase bool) *Preferences {
	return s.update(ctx, clientID, func(p *Preferences) {
		p.Categories[c] = adjust(p.CategoryScore(c), increase)
	})
}

// UpdatePricePreference moves a price-bucket score by one, clamped to [1,10].
func (s *Store) UpdatePricePreference(ctx context.Context, clientID string, r PriceRange, increase bool) *Preferences {
	return s.update(ctx, clientID, func(p *Preferences) {
		p.PriceRanges[r] = adjust(p.PriceRangeScore(r), increase)
	})
}

func (s *Store) SaveDeal(ctx context.Context, clientID string, dealID int) *Preferences {
	return s.update(ctx, clientID, func(p *Preferences) {
		if !p.IsSaved(dealID) {
			p.SavedDeals = append(p.SavedDeals, dealID)
		}
	})
}

func (s *Store) UnsaveDeal(ctx context.Context, clientID string, dealID int) *Preferences {
	return s.update(ctx, clientID, func(p *Preferences) {
		kept := p.SavedDeals[:0]
		for _, id := range p.SavedDeals {
			if id != dealID {
				kept = append(kept, id)
			}
		}
		p.SavedDeals = kept
	})
}

// Reset drops the stored document so the next Load returns defaults.
func (s *Store) Reset(ctx context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, Key(clientID)); err != nil {
		s.logger.Error("failed to reset preferences",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
