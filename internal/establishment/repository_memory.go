package establishment

import (
	"context"
	"sort"
	"sync"
	"time"

	"hhdeals/internal/core"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	items  map[int]core.Establishment
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items:  make(map[int]core.Establishment),
		nextID: 1,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, e *core.Establishment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.nextID
	r.nextID++
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.items[e.ID] = *e
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int) (*core.Establishment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*core.Establishment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*core.Establishment, 0, len(r.items))
	for _, e := range r.items {
		e := e
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
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
