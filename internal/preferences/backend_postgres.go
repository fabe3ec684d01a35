package preferences

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBackend stores documents in the user_preferences table.
type PostgresBackend struct {
	db *pgxpool.Pool
}

func NewPostgresBackend(db *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{db: db}
}

func (b *PostgresBackend) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := b.db.QueryRow(ctx, `
		SELECT data
		FROM user_preferences
		WHERE pref_key = $1
	`, key).Scan(&data)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *PostgresBackend) Save(ctx context.Context, key string, data []byte) error {
	_, err := b.db.Exec(ctx, `
		INSERT INTO user_preferences (pref_key, data)
		VALUES ($1, $2)
		ON CONFLICT (pref_key)
		DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = now()
	`, key, data)
	return err
}

func (b *PostgresBackend) Delete(ctx context.Context, key string) error {
	_, err := b.db.Exec(ctx, `DELETE FROM user_preferences WHERE pref_key = $1`, key)
	return err
}
