package deals

import (
	"context"
	"sort"
	"sync"
	"time"

	"hhdeals/internal/core"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	items  map[int]core.Deal
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items:  make(map[int]core.Deal),
		nextID: 1,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, deal *core.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	deal.ID = r.nextID
	r.nextID++
	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = time.Now()
	}
	r.items[deal.ID] = *deal
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int) (*core.Deal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*core.Deal, error) {
	return r.filter(func(core.Deal) bool { return true }), nil
}

func (r *InMemoryRepository) ListByEstablishment(ctx context.Context, establishmentID int) ([]*core.Deal, error) {
	return r.filter(func(d core.Deal) bool { return d.EstablishmentID == establishmentID }), nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *InMemoryRepository) filter(keep func(core.Deal) bool) []*core.Deal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*core.Deal, 0, len(r.items))
	for _, d := range r.items {
		if keep(d) {
			d := d
			out = append(out, &d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
