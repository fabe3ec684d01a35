package core

import "context"

// EstablishmentReader is the read side the deals service needs from the
// establishment feature.
type EstablishmentReader interface {
	GetByID(ctx context.Context, id int) (*Establishment, error)
	List(ctx context.Context) ([]*Establishment, error)
}

// DealReader is the read side the establishment service needs from the
// deals feature.
type DealReader interface {
	ListByEstablishment(ctx context.Context, establishmentID int) ([]*Deal, error)
}
