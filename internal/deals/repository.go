package deals

import (
	"context"
	"errors"

	"hhdeals/internal/core"
)

var ErrNotFound = errors.New("deal not found")

// Repository also satisfies core.DealReader.
type Repository interface {
	Create(ctx context.Context, deal *core.Deal) error
	GetByID(ctx context.Context, id int) (*core.Deal, error)
	List(ctx context.Context) ([]*core.Deal, error)
	ListByEstablishment(ctx context.Context, establishmentID int) ([]*core.Deal, error)
	Delete(ctx context.Context, id int) error
}
