package establishment

import (
	"context"
	"errors"

	"hhdeals/internal/core"
)

var ErrNotFound = errors.New("establishment not found")

// Repository also satisfies core.EstablishmentReader.
type Repository interface {
	Create(ctx context.Context, e *core.Establishment) error
	GetByID(ctx context.Context, id int) (*core.Establishment, error)
	List(ctx context.Context) ([]*core.Establishment, error)
	Delete(ctx context.Context, id int) error
}
