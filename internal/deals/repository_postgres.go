package deals

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

const selectDeal = `
	SELECT
		id,
		establishment_id,
		title,
		description,
		alcohol_category,
		valid_days,
		hh_start_time,
		hh_end_time,
		standard_price,
		happy_hour_price,
		created_at
	FROM deals
`

func scanDeal(row pgx.Row) (*core.Deal, error) {
	var d core.Deal
	if err := row.Scan(
		&d.ID,
		&d.EstablishmentID,
		&d.Title,
		&d.Description,
		&d.AlcoholCategory,
		&d.ValidDays,
		&d.HHStartTime,
		&d.HHEndTime,
		&d.StandardPrice,
		&d.HappyHourPrice,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func collectDeals(rows pgx.Rows) ([]*core.Deal, error) {
	defer rows.Close()

	var deals []*core.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

// --------------------------------------------------
// Create Deal
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, deal *core.Deal) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO deals (
			establishment_id,
			title,
			description,
			alcohol_category,
			valid_days,
			hh_start_time,
			hh_end_time,
			standard_price,
			happy_hour_price
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at
	`,
		deal.EstablishmentID,
		deal.Title,
		deal.Description,
		deal.AlcoholCategory,
		deal.ValidDays,
		deal.HHStartTime,
		deal.HHEndTime,
		deal.StandardPrice,
		deal.HappyHourPrice,
	).Scan(&deal.ID, &deal.CreatedAt)
	if err != nil {
		return fmt.Errorf("create deal: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*core.Deal, error) {
	d, err := scanDeal(r.db.QueryRow(ctx, selectDeal+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get deal %d: %w", id, err)
	}
	return d, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*core.Deal, error) {
	rows, err := r.db.Query(ctx, selectDeal+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	return collectDeals(rows)
}

// --------------------------------------------------
// List Deals by Establishment
// --------------------------------------------------
func (r *PostgresRepository) ListByEstablishment(ctx context.Context, establishmentID int) ([]*core.Deal, error) {
	rows, err := r.db.Query(ctx, selectDeal+` WHERE establishment_id = $1 ORDER BY id`, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("list deals of establishment %d: %w", establishmentID, err)
	}
	return collectDeals(rows)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete deal %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
