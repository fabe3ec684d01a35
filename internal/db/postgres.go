package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func ConnectPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	logger.Info("connected to PostgreSQL",
		zap.String("host", config.ConnConfig.Host),
		zap.String("database", config.ConnConfig.Database),
	)

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	logger.Info("schema initialized")
	return pool, nil
}

// schema is applied in order on every start; each statement is idempotent.
var schema = []string{
	// -------------------------------
	// USERS (admin accounts)
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'ADMIN',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	// -------------------------------
	// ESTABLISHMENTS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS establishments (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		address VARCHAR(500) NOT NULL DEFAULT '',
		neighborhood VARCHAR(255) NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		image_url VARCHAR(500) NULL,
		website VARCHAR(500) NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	// -------------------------------
	// DEALS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS deals (
		id SERIAL PRIMARY KEY,
		establishment_id INTEGER NOT NULL REFERENCES establishments(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		description TEXT NULL,
		alcohol_category VARCHAR(100) NOT NULL DEFAULT '',
		valid_days VARCHAR(100) NOT NULL,
		hh_start_time VARCHAR(10) NOT NULL,
		hh_end_time VARCHAR(10) NOT NULL,
		standard_price NUMERIC(10,2) NOT NULL DEFAULT 0,
		happy_hour_price NUMERIC(10,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS deals_establishment_id_idx ON deals (establishment_id)`,

	// -------------------------------
	// USER PREFERENCES
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS user_preferences (
		pref_key VARCHAR(255) PRIMARY KEY,
		data JSONB NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
