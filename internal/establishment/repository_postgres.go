package establishment

import (
	"context"
	"errors"
	"fmt"

	"hhdeals/internal/core"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectEstablishment = `
	SELECT
		id,
		name,
		address,
		neighborhood,
		latitude,
		longitude,
		image_url,
		website,
		created_at
	FROM establishments
`

func scanEstablishment(row pgx.Row) (*core.Establishment, error) {
	var e core.Establishment
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Address,
		&e.Neighborhood,
		&e.Latitude,
		&e.Longitude,
		&e.ImageURL,
		&e.Website,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// --------------------------------------------------
// Create a new establishment
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, e *core.Establishment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO establishments (
			name,
			address,
			neighborhood,
			latitude,
			longitude,
			image_url,
			website
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`,
		e.Name,
		e.Address,
		e.Neighborhood,
		e.Latitude,
		e.Longitude,
		e.ImageURL,
		e.Website,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create establishment: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*core.Establishment, error) {
	e, err := scanEstablishment(r.db.QueryRow(ctx, selectEstablishment+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get establishment %d: %w", id, err)
	}
	return e, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*core.Establishment, error) {
	rows, err := r.db.Query(ctx, selectEstablishment+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list establishments: %w", err)
	}
	defer rows.Close()

	var out []*core.Establishment
	for rows.Next() {
		e, err := scanEstablishment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan establishment: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes the establishment; its deals go with it (ON DELETE CASCADE).
func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM establishments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete establishment %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
